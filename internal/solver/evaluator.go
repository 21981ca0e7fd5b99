package solver

import (
	"fmt"
	"math/bits"

	"github.com/go-ricrob/keypadsolver/internal/cost"
	"github.com/go-ricrob/keypadsolver/internal/keypad"
	"github.com/go-ricrob/keypadsolver/internal/packed"
	"github.com/go-ricrob/keypadsolver/internal/partmap"
	"go.uber.org/zap"
)

const numPart = 16

const numKey = keypad.NumNumericKeys

// Evaluator computes the shortest press count for numeric codes. It is safe for concurrent use.
type Evaluator struct {
	log     *zap.Logger
	numeric keypad.Keypad[keypad.NumericKey]
	engine  *cost.Engine
	routes  [numKey][numKey][][]keypad.DirectionalKey
	memo    *partmap.Map[packed.Move, uint64] // numeric move costs
}

// NewEvaluator returns an evaluator typing on the numeric keypad kp, with directional moves priced by engine.
// A nil logger disables logging.
func NewEvaluator(kp keypad.Keypad[keypad.NumericKey], engine *cost.Engine, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	ev := &Evaluator{
		log:     logger,
		numeric: kp,
		engine:  engine,
		memo:    partmap.New[packed.Move, uint64](numPart),
	}
	for _, from := range kp.Keys() {
		for _, to := range kp.Keys() {
			routes := keypad.Routes(kp, from, to)
			if len(routes) == 0 {
				panic(fmt.Sprintf("should never happen: no route %c -> %c", from.Rune(), to.Rune()))
			}
			ev.routes[from][to] = routes
		}
	}
	return ev
}

// move returns the press count to move the numeric cursor from one key to another and activate it,
// with depth robot-operated directional keypads in between.
func (ev *Evaluator) move(depth int, from, to keypad.NumericKey) (uint64, error) {
	key := packed.Pack(depth, uint8(from), uint8(to))
	if c, ok := ev.memo.Load(key); ok {
		return c, nil
	}

	var c uint64
	if depth == 0 {
		c = uint64(ev.numeric.Position(from).Manhattan(ev.numeric.Position(to))) + 1
	} else {
		var err error
		found := false
		for _, route := range ev.routes[from][to] {
			rc, rerr := ev.engine.SequenceCost(depth-1, route)
			if rerr != nil {
				err = rerr
				continue
			}
			if !found || rc < c {
				c, found = rc, true
			}
		}
		if !found {
			return 0, err
		}
	}
	c, _ = ev.memo.LoadOrStore(key, c)
	return c, nil
}

// Length returns the shortest number of presses to type code with depth robot-operated
// directional keypads between the human and the numeric keypad.
func (ev *Evaluator) Length(code keypad.Code, depth int) (uint64, error) {
	if depth < 0 {
		return 0, fmt.Errorf("%w: %d", cost.ErrNegativeDepth, depth)
	}
	if depth > packed.MaxDepth {
		return 0, fmt.Errorf("depth %d: %w", depth, cost.ErrOverflow)
	}

	var total, carry uint64
	cur := keypad.NumActivate
	for _, k := range code {
		c, err := ev.move(depth, cur, k)
		if err != nil {
			return 0, fmt.Errorf("code %s: %w", code, err)
		}
		total, carry = bits.Add64(total, c, 0)
		if carry != 0 {
			return 0, fmt.Errorf("code %s: %w", code, cost.ErrOverflow)
		}
		cur = k
	}
	return total, nil
}

// NumMemo returns the number of memoized numeric moves.
func (ev *Evaluator) NumMemo() int { return ev.memo.Size() }

// Complexity returns the numeric value of code multiplied by length.
func Complexity(code keypad.Code, length uint64) (uint64, error) {
	v, err := code.Value()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", cost.ErrOverflow, err)
	}
	hi, lo := bits.Mul64(v, length)
	if hi != 0 {
		return 0, fmt.Errorf("code %s: complexity: %w", code, cost.ErrOverflow)
	}
	return lo, nil
}
