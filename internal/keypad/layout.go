package keypad

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// GapRune marks the gap cell in layout text.
const GapRune = '#'

// Layout errors.
var (
	ErrInvalidKey   = errors.New("invalid key")
	ErrDimensions   = errors.New("rows of unequal width")
	ErrGap          = errors.New("layout needs exactly one gap")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrMissingKey   = errors.New("missing key")
)

const (
	numericText = `789
456
123
#0A`

	directionalText = `#^A
<v>`
)

// Numeric and Directional are the two keypads of the door.
var (
	Numeric     = MustParse(numericText, ParseNumericKey, NumNumericKeys)
	Directional = MustParse(directionalText, ParseDirectionalKey, NumDirectionalKeys)
)

// Keypad is the capability shared by both layouts.
type Keypad[K Key] interface {
	Keys() []K
	Position(k K) Position
	Neighbor(k K, d Direction) (K, bool)
}

var (
	_ Keypad[NumericKey]     = (*Layout[NumericKey])(nil)
	_ Keypad[DirectionalKey] = (*Layout[DirectionalKey])(nil)
)

// Position is a grid coordinate. Row grows downward, Col rightward.
type Position struct {
	Row, Col int
}

func abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Manhattan returns the row plus column distance between p and q.
func (p Position) Manhattan(q Position) int { return abs(p.Row-q.Row) + abs(p.Col-q.Col) }

func (p Position) step(d Direction) Position {
	dRow, dCol := d.delta()
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

type cell[K Key] struct {
	key K
	ok  bool // false for the gap
}

// Layout is an immutable keypad grid.
type Layout[K Key] struct {
	grid [][]cell[K]
	pos  []Position // indexed by key
	keys []K
}

// Parse builds a layout from text: one line per row, one rune per key and GapRune for the gap.
// numKeys is the size of the key set; every key 0..numKeys-1 must appear exactly once.
func Parse[K Key](text string, parseKey func(r rune) (K, bool), numKeys int) (*Layout[K], error) {
	l := &Layout[K]{pos: make([]Position, numKeys)}
	seen := make([]bool, numKeys)
	numGap := 0

	lines := strings.Split(strings.TrimSpace(text), "\n")
	for row, line := range lines {
		line = strings.TrimSpace(line)
		runes := []rune(line)
		if row > 0 && len(runes) != len(l.grid[0]) {
			return nil, &ParseError{Line: row + 1, Text: line, Err: ErrDimensions}
		}
		cells := make([]cell[K], len(runes))
		for col, r := range runes {
			if r == GapRune {
				numGap++
				continue
			}
			k, ok := parseKey(r)
			if !ok || int(k) >= numKeys {
				return nil, &ParseError{Line: row + 1, Col: col + 1, Text: line, Err: ErrInvalidKey}
			}
			if seen[k] {
				return nil, &ParseError{Line: row + 1, Col: col + 1, Text: line, Err: ErrDuplicateKey}
			}
			seen[k] = true
			cells[col] = cell[K]{key: k, ok: true}
			l.pos[k] = Position{Row: row, Col: col}
			l.keys = append(l.keys, k)
		}
		l.grid = append(l.grid, cells)
	}

	if numGap != 1 {
		return nil, &ParseError{Err: fmt.Errorf("%w: found %d", ErrGap, numGap)}
	}
	for i, ok := range seen {
		if !ok {
			return nil, &ParseError{Err: fmt.Errorf("%w: %c", ErrMissingKey, K(i).Rune())}
		}
	}
	slices.Sort(l.keys)
	return l, nil
}

// MustParse is like Parse but panics on error. It is used for the built-in layouts.
func MustParse[K Key](text string, parseKey func(r rune) (K, bool), numKeys int) *Layout[K] {
	l, err := Parse(text, parseKey, numKeys)
	if err != nil {
		panic(fmt.Sprintf("keypad: invalid layout: %v", err))
	}
	return l
}

// Keys returns all keys of the layout in ascending order.
func (l *Layout[K]) Keys() []K { return slices.Clone(l.keys) }

// Position returns the grid position of k.
func (l *Layout[K]) Position(k K) Position { return l.pos[k] }

// at returns the key at p. It returns false outside the grid and on the gap.
func (l *Layout[K]) at(p Position) (K, bool) {
	if p.Row < 0 || p.Row >= len(l.grid) || p.Col < 0 || p.Col >= len(l.grid[p.Row]) {
		var zero K
		return zero, false
	}
	c := l.grid[p.Row][p.Col]
	return c.key, c.ok
}

// Neighbor returns the key one step from k in direction d.
func (l *Layout[K]) Neighbor(k K, d Direction) (K, bool) { return l.at(l.pos[k].step(d)) }

// Manhattan returns the grid distance between a and b.
func (l *Layout[K]) Manhattan(a, b K) int { return l.pos[a].Manhattan(l.pos[b]) }

func (l *Layout[K]) String() string {
	var b strings.Builder
	for i, row := range l.grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			if c.ok {
				b.WriteRune(c.key.Rune())
			} else {
				b.WriteRune(GapRune)
			}
		}
	}
	return b.String()
}
