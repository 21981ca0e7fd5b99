// Package cost computes how many physical presses it takes to move and activate the cursor of a
// directional keypad that sits behind layers of robot-operated directional keypads.
//
// The cost of one move depends only on the depth and the two keys involved, so the engine fills one
// table per depth bottom-up: depth 0 is the Manhattan distance plus the activation, depth d is
// the cheapest route whose presses are priced with the depth d-1 table.
package cost

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/go-ricrob/keypadsolver/internal/keypad"
	"github.com/go-ricrob/keypadsolver/internal/spinlock"
	"go.uber.org/zap"
)

// Engine errors.
var (
	ErrOverflow      = errors.New("press count overflows uint64")
	ErrNegativeDepth = errors.New("negative depth")
)

const numKey = keypad.NumDirectionalKeys

type table [numKey][numKey]uint64

// sequence returns the price of typing presses with the cursor starting at Activate.
func (t *table) sequence(presses []keypad.DirectionalKey) (uint64, bool) {
	var sum, carry uint64
	cur := keypad.Activate
	for _, press := range presses {
		sum, carry = bits.Add64(sum, t[cur][press], 0)
		if carry != 0 {
			return 0, false
		}
		cur = press
	}
	return sum, true
}

// Engine is a memoized press count calculator. It is safe for concurrent use.
type Engine struct {
	log    *zap.Logger
	routes [numKey][numKey][][]keypad.DirectionalKey

	mu       spinlock.Mutex
	tables   []*table // tables[d] holds the costs at depth d
	overflow int      // first depth that does not fit, -1 if not reached yet
}

// New returns an engine over the directional keypad kp. A nil logger disables logging.
func New(kp keypad.Keypad[keypad.DirectionalKey], logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{log: logger, overflow: -1}

	base := new(table)
	for _, from := range kp.Keys() {
		for _, to := range kp.Keys() {
			routes := keypad.Routes(kp, from, to)
			if len(routes) == 0 {
				panic(fmt.Sprintf("should never happen: no route %c -> %c", from.Rune(), to.Rune()))
			}
			e.routes[from][to] = routes
			base[from][to] = uint64(kp.Position(from).Manhattan(kp.Position(to))) + 1
		}
	}
	e.tables = []*table{base}
	return e
}

// next derives the table one depth above prev.
func (e *Engine) next(prev *table) (*table, bool) {
	t := new(table)
	for from := range e.routes {
		for to, routes := range e.routes[from] {
			found := false
			for _, route := range routes {
				c, ok := prev.sequence(route)
				if ok && (!found || c < t[from][to]) {
					t[from][to], found = c, true
				}
			}
			if !found {
				return nil, false
			}
		}
	}
	return t, true
}

// table returns the table at depth, computing missing depths. e.mu must be held.
func (e *Engine) table(depth int) (*table, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDepth, depth)
	}
	if e.overflow >= 0 && depth >= e.overflow {
		return nil, fmt.Errorf("depth %d: %w", depth, ErrOverflow)
	}
	for len(e.tables) <= depth {
		t, ok := e.next(e.tables[len(e.tables)-1])
		if !ok {
			e.overflow = len(e.tables)
			e.log.Debug("cost table overflow", zap.Int("depth", e.overflow))
			return nil, fmt.Errorf("depth %d: %w", depth, ErrOverflow)
		}
		e.tables = append(e.tables, t)
	}
	return e.tables[depth], nil
}

// Cost returns the number of physical presses needed so that, through depth layers of indirection,
// the cursor moves from one directional key to another and activates it.
func (e *Engine) Cost(depth int, from, to keypad.DirectionalKey) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, err := e.table(depth)
	if err != nil {
		return 0, err
	}
	return t[from][to], nil
}

// SequenceCost returns the number of physical presses needed to type presses at depth,
// with the cursor starting at Activate and carried from press to press.
func (e *Engine) SequenceCost(depth int, presses []keypad.DirectionalKey) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, err := e.table(depth)
	if err != nil {
		return 0, err
	}
	sum, ok := t.sequence(presses)
	if !ok {
		return 0, fmt.Errorf("depth %d: sequence of %d presses: %w", depth, len(presses), ErrOverflow)
	}
	return sum, nil
}

// Routes returns the candidate press sequences for a move on the directional keypad.
// The result must not be modified.
func (e *Engine) Routes(from, to keypad.DirectionalKey) [][]keypad.DirectionalKey {
	return e.routes[from][to]
}

// Depth returns the deepest depth computed so far.
func (e *Engine) Depth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tables) - 1
}
