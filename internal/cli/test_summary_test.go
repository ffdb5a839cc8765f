package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/mimic/internal/errors"
)

const passingReport = `
running 2 tests
test a ... ok
test b ... ok

test result: ok. 2 passed; 0 failed; 0 ignored; 0 measured; 0 filtered out

`

const failingReport = `
running 3 tests
test a ... ok
test b ... FAILED
test c ... ignored

failures:

---- b ----
boom

failures:
    b

test result: FAILED. 1 passed; 1 failed; 1 ignored; 0 measured; 4 filtered out

`

func TestCmdTestSummary_Help(t *testing.T) {
	t.Parallel()

	for _, arg := range []string{"-h", "--help"} {
		a, stdout, _ := newTestApp("")
		if code := a.cmdTestSummary([]string{arg}); code != errors.ExitSuccess {
			t.Errorf("cmdTestSummary(%s) = %d, want 0", arg, code)
		}
		if !strings.Contains(stdout.String(), "mimic test-summary") {
			t.Errorf("help output = %q", stdout.String())
		}
	}
}

func TestCmdTestSummary_FileNotFound(t *testing.T) {
	t.Parallel()

	a, _, stderr := newTestApp("")
	if code := a.cmdTestSummary([]string{"/nonexistent/path/out.txt"}); code != errors.ExitRuntimeError {
		t.Errorf("cmdTestSummary(nonexistent file) = %d, want %d", code, errors.ExitRuntimeError)
	}
	if !strings.HasPrefix(stderr.String(), "mimic: test-summary: ") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestCmdTestSummary_NoResults(t *testing.T) {
	t.Parallel()

	a, _, stderr := newTestApp("nothing to see here\n")
	if code := a.cmdTestSummary(nil); code != errors.ExitRuntimeError {
		t.Errorf("cmdTestSummary(empty) = %d, want %d", code, errors.ExitRuntimeError)
	}
	if !strings.Contains(stderr.String(), "no test results found") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestCmdTestSummary_TooManyArgs(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestApp("")
	if code := a.cmdTestSummary([]string{"a", "b"}); code != errors.ExitConfigError {
		t.Errorf("cmdTestSummary(a b) = %d, want %d", code, errors.ExitConfigError)
	}
}

func TestCmdTestSummary_Stdin(t *testing.T) {
	t.Parallel()

	a, stdout, _ := newTestApp(passingReport + failingReport)
	if code := a.cmdTestSummary([]string{"-"}); code != errors.ExitTestsFailed {
		t.Errorf("cmdTestSummary(-) = %d, want %d", code, errors.ExitTestsFailed)
	}

	want := "\nfailures:\n" +
		"    b\n" +
		"\ntest result: FAILED. 3 passed; 1 failed; 1 ignored; 0 measured; 4 filtered out\n\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestCmdTestSummary_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte(passingReport), 0o644); err != nil {
		t.Fatalf("failed to write report: %v", err)
	}

	a, stdout, _ := newTestApp("")
	if code := a.cmdTestSummary([]string{path}); code != errors.ExitSuccess {
		t.Errorf("cmdTestSummary(file) = %d, want 0", code)
	}
	want := "\ntest result: ok. 2 passed; 0 failed; 0 ignored; 0 measured; 0 filtered out\n\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRun_RoutesTestSummary(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestApp(passingReport)
	if code := a.run([]string{"test-summary"}); code != errors.ExitSuccess {
		t.Errorf("run(test-summary) = %d, want 0", code)
	}
}
