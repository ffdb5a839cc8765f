// Package scheduler executes test units sequentially or on a bounded worker
// pool and delivers every outcome, in a printable order, to a single reporter.
package scheduler

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/AndreyAkinshin/mimic/internal/args"
	"github.com/AndreyAkinshin/mimic/internal/filter"
	"github.com/AndreyAkinshin/mimic/internal/model"
	"github.com/AndreyAkinshin/mimic/internal/output"
)

var out = output.New()

const (
	// EnvTestThreads overrides the default worker count.
	EnvTestThreads = "MIMIC_TEST_THREADS"

	// EnvRustTestThreads is honored for drop-in compatibility with libtest.
	EnvRustTestThreads = "RUST_TEST_THREADS"

	// minWorkers ensures at least one worker, even if runtime.NumCPU()
	// returns 0 in restricted environments.
	minWorkers = 1

	// maxWorkers caps the worker count taken from the environment.
	maxWorkers = 256
)

// Unit is a test or benchmark handed to the scheduler. Run is consumed
// exactly once; the scheduler clears it when the unit is dispatched.
type Unit struct {
	Info model.Info
	Run  func() model.Outcome
}

// Reporter receives per-unit notifications. Calls are never concurrent:
// TestStarted is always followed by TestFinished for the same unit before
// the next unit is started.
type Reporter interface {
	TestStarted(info model.Info)
	TestFinished(info model.Info, outcome model.Outcome)
}

// Result is the aggregate produced by a run.
type Result struct {
	Conclusion model.Conclusion
	// Failures lists failed units in the order their outcomes were reported.
	Failures []model.Failure
}

// Run executes all units and reports each outcome exactly once.
//
// With a single worker, units run on the calling goroutine in input order and
// each unit's line is started before it runs. Otherwise, non-ignored units run
// on a pool of worker goroutines and the calling goroutine is the only
// consumer of their completions; a unit's line is printed as a whole when its
// completion is dequeued, so lines of different units never interleave.
//
// The sequential path is chosen from the resolved worker count, not only from
// an explicit --test-threads 1. A thread count of 1 taken from the environment
// (see Workers) or a single-CPU host selects it too.
func Run(units []Unit, a *args.Arguments, rep Reporter) Result {
	c := &collector{}

	workers := Workers(a.TestThreads)
	if workers == 1 {
		runSequential(units, a, rep, c)
	} else {
		runConcurrent(units, a, workers, rep, c)
	}

	return c.result()
}

// runSequential executes units one at a time in order.
func runSequential(units []Unit, a *args.Arguments, rep Reporter, c *collector) {
	for i := range units {
		u := take(&units[i])

		rep.TestStarted(u.Info)
		var outcome model.Outcome
		if filter.IsIgnored(a, u.Info) {
			outcome = model.Ignored()
		} else {
			outcome = invoke(u)
		}
		rep.TestFinished(u.Info, outcome)
		c.record(u.Info, outcome)
	}
}

// completion carries one finished unit from a producer to the consumer.
type completion struct {
	info    model.Info
	outcome model.Outcome
}

// runConcurrent executes units on a fixed pool of workers.
//
// Workers pull jobs from an unbuffered channel and send completions to a
// channel buffered for every unit, so producers never block on the consumer.
// Ignored units are resolved by the dispatcher without occupying a worker.
func runConcurrent(units []Unit, a *args.Arguments, workers int, rep Reporter, c *collector) {
	if len(units) == 0 {
		return
	}

	completions := make(chan completion, len(units))
	jobs := make(chan Unit)

	var wg sync.WaitGroup
	for range min(workers, len(units)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				completions <- completion{info: u.Info, outcome: invoke(u)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range units {
			u := take(&units[i])
			if filter.IsIgnored(a, u.Info) {
				completions <- completion{info: u.Info, outcome: model.Ignored()}
				continue
			}
			jobs <- u
		}
	}()

	for range len(units) {
		done := <-completions
		rep.TestStarted(done.info)
		rep.TestFinished(done.info, done.outcome)
		c.record(done.info, done.outcome)
	}

	wg.Wait()
}

// take moves the unit out of the slice, leaving no runner behind.
func take(slot *Unit) Unit {
	u := *slot
	if u.Run == nil {
		panic(fmt.Sprintf("scheduler: unit %q has no runner or was already dispatched", u.Info.Name))
	}
	slot.Run = nil
	return u
}

// invoke runs a unit's closure. A panic is converted into a failed outcome
// so that one unit cannot affect the outcome of another or crash the consumer.
func invoke(u Unit) (outcome model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = model.Failed(fmt.Sprintf("test panicked: %v", r))
		}
	}()

	outcome = u.Run()
	if outcome.Kind == model.OutcomeMeasured && !u.Info.Bench {
		return model.Failed("a test that is not a benchmark produced a measurement")
	}
	return outcome
}

// collector owns the aggregate state. Only the goroutine that reports
// outcomes touches it, so it needs no locking.
type collector struct {
	conclusion model.Conclusion
	failures   []model.Failure
}

func (c *collector) record(info model.Info, outcome model.Outcome) {
	switch outcome.Kind {
	case model.OutcomePassed:
		c.conclusion.NumPassed++
	case model.OutcomeFailed:
		c.conclusion.NumFailed++
		c.failures = append(c.failures, model.Failure{Info: info, Message: outcome.Message})
	case model.OutcomeIgnored:
		c.conclusion.NumIgnored++
	case model.OutcomeMeasured:
		c.conclusion.NumPassed++
		c.conclusion.NumBenches++
	}
}

func (c *collector) result() Result {
	return Result{Conclusion: c.conclusion, Failures: c.failures}
}

// defaultWorkerCount returns the default number of workers based on CPU count.
func defaultWorkerCount() int {
	return max(minWorkers, runtime.NumCPU())
}

// Workers returns the number of workers to use. An explicit request wins;
// otherwise MIMIC_TEST_THREADS, then RUST_TEST_THREADS, then the CPU count.
// Invalid environment values log a warning and fall back to the default.
func Workers(requested int) int {
	if requested > 0 {
		return requested
	}

	for _, name := range []string{EnvTestThreads, EnvRustTestThreads} {
		env := os.Getenv(name)
		if env == "" {
			continue
		}

		n, err := strconv.Atoi(env)
		if err != nil {
			out.WarningSimple("invalid %s value %q (not a number), using default", name, env)
			return defaultWorkerCount()
		}
		if n < minWorkers || n > maxWorkers {
			out.WarningSimple("%s=%d out of range [%d-%d], using default", name, n, minWorkers, maxWorkers)
			return defaultWorkerCount()
		}
		return n
	}

	return defaultWorkerCount()
}
