package mimic

import (
	"errors"
	"fmt"

	"github.com/AndreyAkinshin/mimic/internal/model"
	"github.com/AndreyAkinshin/mimic/internal/scheduler"
)

// Measurement is the output of a benchmark, in nanoseconds.
type Measurement = model.Measurement

// Failed is an error signalling a test or benchmark failure. Returning any
// other error from a runner also fails the test, with the error text as
// the failure message.
type Failed struct {
	msg *string
}

// Fail returns a failure carrying msg.
func Fail(msg string) *Failed {
	return &Failed{msg: &msg}
}

// Failf returns a failure with a formatted message.
func Failf(format string, args ...interface{}) *Failed {
	return Fail(fmt.Sprintf(format, args...))
}

// FailWithoutMessage returns a failure that prints no message.
func FailWithoutMessage() *Failed {
	return &Failed{}
}

// Message returns the failure message, if any.
func (f *Failed) Message() (string, bool) {
	if f.msg == nil {
		return "", false
	}
	return *f.msg, true
}

func (f *Failed) Error() string {
	if f.msg == nil {
		return "test failed"
	}
	return *f.msg
}

// Test is a single test or benchmark. The runner is called at most once,
// by the worker that executes the test.
type Test struct {
	info   model.Info
	runner func() model.Outcome
}

// NewTest creates a (non-benchmark) test. A nil error from fn passes the test.
func NewTest(name string, fn func() error) Test {
	return Test{
		info: model.Info{Name: name},
		runner: func() model.Outcome {
			if err := fn(); err != nil {
				return failedOutcome(err)
			}
			return model.Passed()
		},
	}
}

// NewBench creates a benchmark. The measurement returned by fn is printed
// unless fn returns an error.
func NewBench(name string, fn func() (Measurement, error)) Test {
	return Test{
		info: model.Info{Name: name, Bench: true},
		runner: func() model.Outcome {
			m, err := fn()
			if err != nil {
				return failedOutcome(err)
			}
			return model.Measured(m)
		},
	}
}

// WithKind sets the kind of the test. A non-empty kind is printed in
// brackets before the name, e.g. "test [kind] name".
func (t Test) WithKind(kind string) Test {
	t.info.Kind = kind
	return t
}

// WithIgnored marks the test as ignored. Ignored tests are not executed
// unless --ignored is given.
func (t Test) WithIgnored(ignored bool) Test {
	t.info.Ignored = ignored
	return t
}

// Name returns the test name.
func (t Test) Name() string { return t.info.Name }

// Kind returns the test kind, empty if none.
func (t Test) Kind() string { return t.info.Kind }

// IsIgnored reports whether the test is marked ignored.
func (t Test) IsIgnored() bool { return t.info.Ignored }

// IsBench reports whether the test is a benchmark.
func (t Test) IsBench() bool { return t.info.Bench }

func (t Test) String() string {
	return fmt.Sprintf("Test{name: %q, kind: %q, ignored: %t, bench: %t}",
		t.info.Name, t.info.Kind, t.info.Ignored, t.info.Bench)
}

// unit converts t for the scheduler. A zero Test has no runner and reports
// a failure instead of running.
func (t Test) unit() scheduler.Unit {
	run := t.runner
	if run == nil {
		run = func() model.Outcome { return model.Failed("test has no runner; build it with NewTest or NewBench") }
	}
	return scheduler.Unit{Info: t.info, Run: run}
}

func failedOutcome(err error) model.Outcome {
	var f *Failed
	if errors.As(err, &f) {
		if msg, ok := f.Message(); ok {
			return model.Failed(msg)
		}
		return model.FailedWithoutMessage()
	}
	return model.Failed(err.Error())
}
