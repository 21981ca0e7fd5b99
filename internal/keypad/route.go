package keypad

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// ErrIllegalMove is returned when a replayed press steers a cursor off the grid or onto the gap.
var ErrIllegalMove = errors.New("illegal move")

// Routes returns the press sequences, each ending with Activate, that move the cursor of kp
// from one key to another along a shortest path without touching the gap.
// Horizontal-first comes before vertical-first; a straight move yields a single route.
// A nil result means kp has no such route.
func Routes[K Key](kp Keypad[K], from, to K) [][]DirectionalKey {
	p, q := kp.Position(from), kp.Position(to)

	horizontal, vertical := Right, Down
	if q.Col < p.Col {
		horizontal = Left
	}
	if q.Row < p.Row {
		vertical = Up
	}
	numHorizontal, numVertical := abs(q.Col-p.Col), abs(q.Row-p.Row)

	var routes [][]DirectionalKey
	add := func(first Direction, numFirst int, second Direction, numSecond int) {
		presses := make([]DirectionalKey, 0, numFirst+numSecond+1)
		cur := from
		walk := func(d Direction, n int) bool {
			for i := 0; i < n; i++ {
				next, ok := kp.Neighbor(cur, d)
				if !ok {
					return false
				}
				cur = next
				presses = append(presses, d.Key())
			}
			return true
		}
		if !walk(first, numFirst) || !walk(second, numSecond) {
			return
		}
		presses = append(presses, Activate)
		for _, r := range routes {
			if slices.Equal(r, presses) {
				return
			}
		}
		routes = append(routes, presses)
	}
	add(horizontal, numHorizontal, vertical, numVertical)
	add(vertical, numVertical, horizontal, numHorizontal)
	return routes
}

// Simulate replays presses against kp with the cursor starting at start.
// It returns the keys activated in order and the final cursor key.
func Simulate[K Key](kp Keypad[K], start K, presses []DirectionalKey) ([]K, K, error) {
	var activated []K
	cur := start
	for i, press := range presses {
		d, ok := press.Direction()
		if !ok {
			activated = append(activated, cur)
			continue
		}
		next, ok := kp.Neighbor(cur, d)
		if !ok {
			return activated, cur, fmt.Errorf("press %d: %c from %c: %w", i, press.Rune(), cur.Rune(), ErrIllegalMove)
		}
		cur = next
	}
	return activated, cur, nil
}
