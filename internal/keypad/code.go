package keypad

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"strings"
)

// Code errors.
var (
	ErrEmptyCode     = errors.New("empty code")
	ErrValueOverflow = errors.New("code value overflows uint64")
)

// ParseError reports malformed layout or code text.
type ParseError struct {
	Line int // 1-based, 0 if unknown
	Col  int // 1-based, 0 if unknown
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	if e.Col > 0 {
		fmt.Fprintf(&b, "column %d: ", e.Col)
	}
	if e.Text != "" {
		fmt.Fprintf(&b, "%q: ", e.Text)
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Code is a sequence of numeric keys to be typed on the door.
type Code []NumericKey

// ParseCode parses a code over the alphabet 0-9 and A.
func ParseCode(s string) (Code, error) {
	if s == "" {
		return nil, &ParseError{Err: ErrEmptyCode}
	}
	code := make(Code, 0, len(s))
	for i, r := range []rune(s) {
		k, ok := ParseNumericKey(r)
		if !ok {
			return nil, &ParseError{Col: i + 1, Text: s, Err: fmt.Errorf("%w %q", ErrInvalidKey, r)}
		}
		code = append(code, k)
	}
	return code, nil
}

func (c Code) String() string {
	var b strings.Builder
	for _, k := range c {
		b.WriteRune(k.Rune())
	}
	return b.String()
}

// Value returns the decimal number formed by the digit keys of c.
func (c Code) Value() (uint64, error) {
	var v, hi, carry uint64
	for _, k := range c {
		if !k.IsDigit() {
			continue
		}
		hi, v = bits.Mul64(v, 10)
		if hi != 0 {
			return 0, fmt.Errorf("code %s: %w", c, ErrValueOverflow)
		}
		v, carry = bits.Add64(v, uint64(k), 0)
		if carry != 0 {
			return 0, fmt.Errorf("code %s: %w", c, ErrValueOverflow)
		}
	}
	return v, nil
}

// ReadCodes reads one code per line from r. Blank lines are skipped.
func ReadCodes(r io.Reader) ([]Code, error) {
	var codes []Code
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		code, err := ParseCode(text)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Line = line
			}
			return nil, err
		}
		codes = append(codes, code)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return codes, nil
}
