// Package keypad describes the numeric and directional keypads and the cursor moves on them.
package keypad

// Direction is a single cursor step on a keypad grid.
type Direction uint8

// Directions.
const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all cursor steps.
var Directions = [...]Direction{Up, Down, Left, Right}

func (d Direction) delta() (dRow, dCol int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	panic("invalid direction")
}

// Key returns the directional key a robot arm presses to step into direction d.
func (d Direction) Key() DirectionalKey {
	switch d {
	case Up:
		return KeyUp
	case Down:
		return KeyDown
	case Left:
		return KeyLeft
	case Right:
		return KeyRight
	}
	panic("invalid direction")
}

func (d Direction) String() string { return string(d.Key().Rune()) }

// NumericKey is a key of the numeric keypad.
type NumericKey uint8

// Numeric keys. The digit keys have the value of their digit.
const (
	Digit0 NumericKey = iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	NumActivate

	// NumNumericKeys is the number of numeric keys.
	NumNumericKeys = int(NumActivate) + 1
)

// IsDigit reports whether k is one of the digit keys.
func (k NumericKey) IsDigit() bool { return k <= Digit9 }

// Rune returns the label of k.
func (k NumericKey) Rune() rune {
	if k.IsDigit() {
		return '0' + rune(k)
	}
	return 'A'
}

func (k NumericKey) String() string { return string(k.Rune()) }

// ParseNumericKey returns the numeric key labeled r.
func ParseNumericKey(r rune) (NumericKey, bool) {
	switch {
	case r >= '0' && r <= '9':
		return NumericKey(r - '0'), true
	case r == 'A':
		return NumActivate, true
	}
	return 0, false
}

// DirectionalKey is a key of the directional keypad.
type DirectionalKey uint8

// Directional keys.
const (
	Activate DirectionalKey = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// NumDirectionalKeys is the number of directional keys.
	NumDirectionalKeys = int(KeyRight) + 1
)

var directionalRunes = [NumDirectionalKeys]rune{
	Activate: 'A',
	KeyUp:    '^',
	KeyDown:  'v',
	KeyLeft:  '<',
	KeyRight: '>',
}

// Rune returns the label of k.
func (k DirectionalKey) Rune() rune { return directionalRunes[k] }

func (k DirectionalKey) String() string { return string(k.Rune()) }

// Direction returns the step a press of k causes one layer further in.
// It returns false for Activate.
func (k DirectionalKey) Direction() (Direction, bool) {
	switch k {
	case KeyUp:
		return Up, true
	case KeyDown:
		return Down, true
	case KeyLeft:
		return Left, true
	case KeyRight:
		return Right, true
	}
	return 0, false
}

// ParseDirectionalKey returns the directional key labeled r.
func ParseDirectionalKey(r rune) (DirectionalKey, bool) {
	for k, kr := range directionalRunes {
		if kr == r {
			return DirectionalKey(k), true
		}
	}
	return 0, false
}

// Key defines NumericKey and DirectionalKey constraints as keypad keys.
type Key interface {
	NumericKey | DirectionalKey
	Rune() rune
}
