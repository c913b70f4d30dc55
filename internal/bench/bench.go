// Package bench measures the sparse set containers against Go maps and slices under the access
// patterns they are meant for: insertion, removal from the middle, random access, membership tests
// and iteration.
package bench

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/rotisserie/eris"
)

type Options struct {
	Sizes     []int      // Number of values in the store for each run
	Rounds    int        // Repetitions per workload, subject and size
	Workloads []Workload // Workloads to run, all if empty
	Subjects  []Subject  // Subjects to measure, all if empty
	Seed      uint64     // Seed for the key orders drawn by the workloads
	Validate  bool       // Check container invariants after every round
}

// Result is the averaged measurement of one workload on one subject at one size.
type Result struct {
	Workload Workload      `json:"workload"`
	Subject  Subject       `json:"subject"`
	Size     int           `json:"size"`
	Rounds   int           `json:"rounds"`
	Ops      int           `json:"ops"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	PerOp    time.Duration `json:"per_op_ns"`
	Checksum uint64        `json:"checksum"` // Sum over rounds of what the timed loops read
}

// validate checks that the options describe a runnable benchmark.
func (opt *Options) validate() error {
	if len(opt.Sizes) == 0 {
		return eris.New("at least one size is required")
	}
	for _, size := range opt.Sizes {
		if size <= 0 {
			return eris.Errorf("sizes must be positive, got %d", size)
		}
	}
	if opt.Rounds <= 0 {
		return eris.Errorf("rounds must be positive, got %d", opt.Rounds)
	}
	for _, w := range opt.Workloads {
		if _, ok := workloads[w]; !ok {
			return eris.Errorf("unknown workload %q", w)
		}
	}
	for _, s := range opt.Subjects {
		if _, err := ParseSubject(string(s)); err != nil {
			return err
		}
	}
	return nil
}

// Run runs every selected workload against every selected subject and size. report, if not nil, is
// called with each result as soon as it is measured. Cancelling ctx stops the run between rounds.
func Run(ctx context.Context, opts Options, report func(Result)) ([]Result, error) {
	if err := opts.validate(); err != nil {
		return nil, eris.Wrap(err, "invalid benchmark options")
	}

	selectedWorkloads := opts.Workloads
	if len(selectedWorkloads) == 0 {
		selectedWorkloads = AllWorkloads
	}
	selectedSubjects := opts.Subjects
	if len(selectedSubjects) == 0 {
		selectedSubjects = AllSubjects
	}

	prng := rand.New(rand.NewPCG(opts.Seed, opts.Seed)) //nolint:gosec // key orders don't need crypto

	var results []Result
	for _, workload := range selectedWorkloads {
		for _, subject := range selectedSubjects {
			for _, size := range opts.Sizes {
				result, err := runOne(ctx, workload, subject, size, opts, prng)
				if err != nil {
					return results, eris.Wrapf(err, "%s/%s/%d", workload, subject, size)
				}
				results = append(results, result)
				if report != nil {
					report(result)
				}
			}
		}
	}
	return results, nil
}

// runOne repeats a workload for the configured number of rounds and averages the measurements.
func runOne(
	ctx context.Context, workload Workload, subject Subject, size int, opts Options, prng *rand.Rand,
) (Result, error) {
	run := workloads[workload]
	newSubjectStore := func() (store, error) {
		return newStore(subject, size)
	}

	result := Result{Workload: workload, Subject: subject, Size: size, Rounds: opts.Rounds}
	for round := range opts.Rounds {
		if err := ctx.Err(); err != nil {
			return result, eris.Wrap(err, "benchmark cancelled")
		}

		s, m, err := run(newSubjectStore, size, prng)
		if err != nil {
			return result, eris.Wrapf(err, "round %d failed", round)
		}
		if opts.Validate {
			if err := s.validate(); err != nil {
				return result, eris.Wrapf(err, "round %d left the container inconsistent", round)
			}
		}

		result.Ops += m.ops
		result.Elapsed += m.elapsed
		result.Checksum += m.checksum
	}

	if result.Ops > 0 {
		result.PerOp = result.Elapsed / time.Duration(result.Ops)
	}
	return result, nil
}
