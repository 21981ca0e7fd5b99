// Package solver evaluates door codes typed through layers of robot-operated directional keypads.
package solver

import (
	"fmt"
	"math/bits"
	"runtime"
	"sync"

	"github.com/go-ricrob/keypadsolver/internal/cost"
	"github.com/go-ricrob/keypadsolver/internal/keypad"
	"go.uber.org/zap"
)

const numCh = 100

// Result is the outcome for one code.
type Result struct {
	Code       keypad.Code
	Length     uint64 // shortest press count
	Complexity uint64
}

// Report is the outcome for all codes of a run.
type Report struct {
	Depth   int
	Results []Result // in input order
	Sum     uint64   // sum of complexities
}

// Runner evaluates independent codes.
type Runner interface {
	Run(codes []keypad.Code) (*Report, error)
}

var _ Runner = (*solver)(nil)

type solver struct {
	ev        *Evaluator
	depth     int
	numWorker int
}

// New returns a runner evaluating codes at depth with numWorker workers.
// numWorker <= 0 uses one worker per CPU.
func New(ev *Evaluator, depth, numWorker int) Runner {
	if numWorker <= 0 {
		numWorker = runtime.NumCPU()
	}
	return &solver{ev: ev, depth: depth, numWorker: numWorker}
}

type job struct {
	idx  int
	code keypad.Code
}

func (s *solver) worker(results []Result, errs []error, wg *sync.WaitGroup, jobCh <-chan job) {
	defer wg.Done()

	for j := range jobCh {
		length, err := s.ev.Length(j.code, s.depth)
		if err == nil {
			var complexity uint64
			complexity, err = Complexity(j.code, length)
			results[j.idx] = Result{Code: j.code, Length: length, Complexity: complexity}
		}
		if err != nil {
			errs[j.idx] = err
			continue
		}
		s.ev.log.Debug("code evaluated",
			zap.Stringer("code", j.code),
			zap.Int("depth", s.depth),
			zap.Uint64("length", length),
			zap.Uint64("complexity", results[j.idx].Complexity),
		)
	}
}

// Run evaluates all codes. Results keep the order of codes; the first failing code aborts the report.
func (s *solver) Run(codes []keypad.Code) (*Report, error) {
	results := make([]Result, len(codes))
	errs := make([]error, len(codes))

	numWorker := min(s.numWorker, max(len(codes), 1))
	jobCh := make(chan job, numCh)
	wg := new(sync.WaitGroup)
	wg.Add(numWorker)
	for i := 0; i < numWorker; i++ {
		go s.worker(results, errs, wg, jobCh)
	}
	for idx, code := range codes {
		jobCh <- job{idx: idx, code: code}
	}
	close(jobCh)
	wg.Wait()

	report := &Report{Depth: s.depth, Results: results}
	var carry uint64
	for i, r := range results {
		if errs[i] != nil {
			return nil, errs[i]
		}
		report.Sum, carry = bits.Add64(report.Sum, r.Complexity, 0)
		if carry != 0 {
			return nil, fmt.Errorf("sum of complexities: %w", cost.ErrOverflow)
		}
	}

	s.ev.log.Info("codes evaluated",
		zap.Int("codes", len(codes)),
		zap.Int("depth", s.depth),
		zap.Int("workers", numWorker),
		zap.Int("memo", s.ev.NumMemo()),
		zap.Int("tableDepth", s.ev.engine.Depth()),
		zap.Uint64("sum", report.Sum),
	)
	return report, nil
}
