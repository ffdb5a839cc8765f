// Package testparser parses the console output of libtest-compatible test
// runners, including the output of this harness.
package testparser

import "github.com/AndreyAkinshin/mimic/internal/model"

// TestLine is a single "test <name> ... <result>" line.
type TestLine struct {
	Kind        string // Bracketed kind, empty if none
	Name        string
	Result      string // ok, FAILED, ignored or bench
	Measurement *model.Measurement
}

// TestCounts holds parsed test result counts.
type TestCounts struct {
	Passed      int
	Failed      int
	Ignored     int
	Measured    int
	FilteredOut int
	Total       int
	Parsed      bool // true if at least one summary line was found
	FailedTests []string
}

// Add folds the counts of another run into tc. Parsed stays set once any
// run was parsed.
func (tc *TestCounts) Add(other *TestCounts) {
	if other == nil {
		return
	}
	tc.Passed += other.Passed
	tc.Failed += other.Failed
	tc.Ignored += other.Ignored
	tc.Measured += other.Measured
	tc.FilteredOut += other.FilteredOut
	tc.Total += other.Total
	tc.FailedTests = append(tc.FailedTests, other.FailedTests...)
	if other.Parsed {
		tc.Parsed = true
	}
}
