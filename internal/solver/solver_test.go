package solver

import (
	"math"
	"testing"

	"github.com/go-ricrob/keypadsolver/internal/cost"
	"github.com/go-ricrob/keypadsolver/internal/keypad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var samples = []string{"029A", "980A", "179A", "456A", "379A"}

func parseCodes(t *testing.T, lines ...string) []keypad.Code {
	t.Helper()
	codes := make([]keypad.Code, len(lines))
	for i, line := range lines {
		code, err := keypad.ParseCode(line)
		require.NoError(t, err)
		codes[i] = code
	}
	return codes
}

func newEvaluator() *Evaluator {
	return NewEvaluator(keypad.Numeric, cost.New(keypad.Directional, nil), nil)
}

func TestLength(t *testing.T) {
	ev := newEvaluator()
	code := parseCodes(t, "029A")[0]

	tests := []struct {
		depth int
		want  uint64
	}{
		{0, 12},
		{1, 28},
		{2, 68},
	}

	for _, test := range tests {
		length, err := ev.Length(code, test.depth)
		require.NoError(t, err)
		assert.Equal(t, test.want, length, "depth %d", test.depth)
	}

	complexity, err := Complexity(code, 68)
	require.NoError(t, err)
	assert.Equal(t, uint64(1972), complexity)
}

func TestRun(t *testing.T) {
	tests := []struct {
		depth  int
		sum    uint64
		length []uint64
	}{
		{2, 126384, []uint64{68, 60, 68, 64, 64}},
		{3, 310188, nil},
		{25, 154115708116294, nil},
	}

	for _, test := range tests {
		for _, numWorker := range []int{1, 3, 0} {
			report, err := New(newEvaluator(), test.depth, numWorker).Run(parseCodes(t, samples...))
			require.NoError(t, err)
			assert.Equal(t, test.depth, report.Depth)
			assert.Equal(t, test.sum, report.Sum, "depth %d workers %d", test.depth, numWorker)
			require.Len(t, report.Results, len(samples))
			for i, r := range report.Results {
				assert.Equal(t, samples[i], r.Code.String())
				v, err := r.Code.Value()
				require.NoError(t, err)
				assert.Equal(t, v*r.Length, r.Complexity)
				if test.length != nil {
					assert.Equal(t, test.length[i], r.Length)
				}
			}
		}
	}
}

func TestRunSharedEvaluator(t *testing.T) {
	ev := newEvaluator()
	codes := parseCodes(t, samples...)
	for depth := 0; depth <= 25; depth++ {
		first, err := New(ev, depth, 4).Run(codes)
		require.NoError(t, err)
		again, err := New(ev, depth, 2).Run(codes)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Greater(t, ev.NumMemo(), 0)
}

func TestRunEmpty(t *testing.T) {
	report, err := New(newEvaluator(), 2, 4).Run(nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Equal(t, uint64(0), report.Sum)
}

func TestRunErrors(t *testing.T) {
	codes := parseCodes(t, samples...)

	_, err := New(newEvaluator(), 200, 2).Run(codes)
	assert.ErrorIs(t, err, cost.ErrOverflow)

	_, err = New(newEvaluator(), -1, 2).Run(codes)
	assert.ErrorIs(t, err, cost.ErrNegativeDepth)

	_, err = New(newEvaluator(), 2, 2).Run(parseCodes(t, "9999999999999999999A"))
	assert.ErrorIs(t, err, cost.ErrOverflow)

	// 2^64+1 does not fit the code value
	_, err = New(newEvaluator(), 0, 1).Run(parseCodes(t, "18446744073709551617A"))
	assert.ErrorIs(t, err, cost.ErrOverflow)
	assert.ErrorIs(t, err, keypad.ErrValueOverflow)
}

// numericExpansions calls fn with every press sequence that types code on the numeric keypad.
func numericExpansions(code keypad.Code, fn func([]keypad.DirectionalKey)) {
	var rec func(i int, cur keypad.NumericKey, acc []keypad.DirectionalKey)
	rec = func(i int, cur keypad.NumericKey, acc []keypad.DirectionalKey) {
		if i == len(code) {
			fn(acc)
			return
		}
		for _, route := range keypad.Routes[keypad.NumericKey](keypad.Numeric, cur, code[i]) {
			rec(i+1, code[i], append(append([]keypad.DirectionalKey(nil), acc...), route...))
		}
	}
	rec(0, keypad.NumActivate, nil)
}

func directionalExpansions(presses []keypad.DirectionalKey, fn func([]keypad.DirectionalKey)) {
	var rec func(i int, cur keypad.DirectionalKey, acc []keypad.DirectionalKey)
	rec = func(i int, cur keypad.DirectionalKey, acc []keypad.DirectionalKey) {
		if i == len(presses) {
			fn(acc)
			return
		}
		for _, route := range keypad.Routes[keypad.DirectionalKey](keypad.Directional, cur, presses[i]) {
			rec(i+1, presses[i], append(append([]keypad.DirectionalKey(nil), acc...), route...))
		}
	}
	rec(0, keypad.Activate, nil)
}

// bruteLength builds concrete press sequences layer by layer and returns the shortest.
func bruteLength(code keypad.Code, depth int) uint64 {
	var layer func(levels int, presses []keypad.DirectionalKey) int
	layer = func(levels int, presses []keypad.DirectionalKey) int {
		if levels == 0 {
			return len(presses)
		}
		best := math.MaxInt
		directionalExpansions(presses, func(x []keypad.DirectionalKey) {
			best = min(best, layer(levels-1, x))
		})
		return best
	}

	best := math.MaxInt
	numericExpansions(code, func(x []keypad.DirectionalKey) {
		best = min(best, layer(depth, x))
	})
	return uint64(best)
}

func TestLengthMatchesBruteForce(t *testing.T) {
	maxDepth := 2
	if testing.Short() {
		maxDepth = 1
	}

	ev := newEvaluator()
	for _, code := range parseCodes(t, append(samples, "0A", "7A", "A", "159A", "3790A")...) {
		for depth := 0; depth <= maxDepth; depth++ {
			length, err := ev.Length(code, depth)
			require.NoError(t, err)
			assert.Equal(t, bruteLength(code, depth), length, "code %s depth %d", code, depth)
		}
	}
}

func TestLengthRealizable(t *testing.T) {
	ev := newEvaluator()
	for _, code := range parseCodes(t, samples...) {
		length, err := ev.Length(code, 0)
		require.NoError(t, err)
		numericExpansions(code, func(x []keypad.DirectionalKey) {
			assert.Len(t, x, int(length))
			activated, _, err := keypad.Simulate[keypad.NumericKey](keypad.Numeric, keypad.NumActivate, x)
			require.NoError(t, err)
			assert.Equal(t, code, keypad.Code(activated))
		})
	}
}

func TestRunLogsTotals(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	ev := NewEvaluator(keypad.Numeric, cost.New(keypad.Directional, logger), logger)

	_, err := New(ev, 2, 2).Run(parseCodes(t, samples...))
	require.NoError(t, err)

	entries := logs.FilterMessage("codes evaluated").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, uint64(126384), fields["sum"])
	assert.Equal(t, int64(1), fields["tableDepth"]) // depth 2 prices numeric moves with engine depth 1
	assert.Equal(t, int64(5), fields["codes"])
}
