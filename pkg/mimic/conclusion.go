package mimic

import (
	"os"

	mimicerrors "github.com/AndreyAkinshin/mimic/internal/errors"
	"github.com/AndreyAkinshin/mimic/internal/model"
)

// Exit codes used by Conclusion and by the mimic command.
const (
	ExitSuccess     = mimicerrors.ExitSuccess
	ExitFailure     = mimicerrors.ExitTestsFailed
	ExitConfigError = mimicerrors.ExitConfigError
)

// osExit is replaced in tests.
var osExit = os.Exit

// Conclusion contains information about an entire test run. It is returned
// by Run; usually the caller just calls Exit on it.
type Conclusion struct {
	// NumFilteredOut is the number of tests and benchmarks that were
	// filtered out, by the filter or by --skip.
	NumFilteredOut uint64
	// NumPassed is the number of passed tests, including benchmarks that ran.
	NumPassed uint64
	// NumFailed is the number of failed tests and benchmarks.
	NumFailed uint64
	// NumIgnored is the number of ignored tests and benchmarks.
	NumIgnored uint64
	// NumBenches is the number of benchmarks that ran successfully.
	NumBenches uint64
}

func conclusionFrom(c model.Conclusion) Conclusion {
	return Conclusion{
		NumFilteredOut: c.NumFilteredOut,
		NumPassed:      c.NumPassed,
		NumFailed:      c.NumFailed,
		NumIgnored:     c.NumIgnored,
		NumBenches:     c.NumBenches,
	}
}

// HasFailed returns whether there have been any failures.
func (c Conclusion) HasFailed() bool {
	return c.NumFailed > 0
}

// ExitCode returns 0 if all tests passed and 101 otherwise.
func (c Conclusion) ExitCode() int {
	if c.HasFailed() {
		return ExitFailure
	}
	return ExitSuccess
}

// Exit terminates the process with the exit code for this conclusion.
func (c Conclusion) Exit() {
	osExit(c.ExitCode())
}

// ExitIfFailed terminates the process with code 101 if any test failed.
// Otherwise it returns normally, for callers embedding the harness.
func (c Conclusion) ExitIfFailed() {
	if c.HasFailed() {
		osExit(ExitFailure)
	}
}
