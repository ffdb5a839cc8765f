// Package model provides shared data types used across multiple internal packages.
// This package exists to break import cycles between the scheduler, the output
// printer and the public mimic API, which all need the same definitions.
package model

// Info is the immutable metadata of a single test or benchmark.
type Info struct {
	Name    string // Printed and used for filtering
	Kind    string // Optional category, printed as "[kind] " when non-empty
	Ignored bool   // Not executed unless ignored tests were requested
	Bench   bool   // Benchmarks produce measurements instead of a plain pass
}

// DisplayName returns the name prefixed with the bracketed kind, if any.
func (i Info) DisplayName() string {
	if i.Kind == "" {
		return i.Name
	}
	return "[" + i.Kind + "] " + i.Name
}

// Measurement is the output of a benchmark.
type Measurement struct {
	Avg      uint64 // Average time in ns
	Variance uint64 // Variance in ns
}

// OutcomeKind classifies the result of running a unit.
type OutcomeKind int

const (
	OutcomePassed OutcomeKind = iota
	OutcomeFailed
	OutcomeIgnored
	OutcomeMeasured
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeMeasured:
		return "measured"
	default:
		return "unknown"
	}
}

// Outcome is the result of performing a test or benchmark.
// Message is only meaningful for OutcomeFailed and may be nil.
// Measurement is only meaningful for OutcomeMeasured.
type Outcome struct {
	Kind        OutcomeKind
	Message     *string
	Measurement Measurement
}

// Passed returns a passing outcome.
func Passed() Outcome {
	return Outcome{Kind: OutcomePassed}
}

// Ignored returns an ignored outcome.
func Ignored() Outcome {
	return Outcome{Kind: OutcomeIgnored}
}

// Failed returns a failed outcome carrying msg.
func Failed(msg string) Outcome {
	return Outcome{Kind: OutcomeFailed, Message: &msg}
}

// FailedWithoutMessage returns a failed outcome with no message.
func FailedWithoutMessage() Outcome {
	return Outcome{Kind: OutcomeFailed}
}

// Measured returns a benchmark outcome.
func Measured(m Measurement) Outcome {
	return Outcome{Kind: OutcomeMeasured, Measurement: m}
}

// Failure pairs a failed unit with its failure message.
type Failure struct {
	Info    Info
	Message *string
}

// Conclusion contains aggregate counters for an entire test run.
type Conclusion struct {
	// NumFilteredOut counts units removed by the filter or --skip patterns.
	NumFilteredOut uint64
	NumPassed      uint64
	NumFailed      uint64
	NumIgnored     uint64
	// NumBenches counts benchmarks that ran successfully. They are
	// also counted in NumPassed.
	NumBenches uint64
}

// HasFailed reports whether any unit failed.
func (c Conclusion) HasFailed() bool {
	return c.NumFailed > 0
}
