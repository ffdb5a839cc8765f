package suite

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/AndreyAkinshin/mimic/pkg/mimic"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("command tests use sh")
	}
}

func sh(script string) []string {
	return []string{"sh", "-c", script}
}

func runSuite(t *testing.T, s *Suite, argv ...string) (string, mimic.Conclusion) {
	t.Helper()
	a, err := mimic.ParseArgs(argv)
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	var buf bytes.Buffer
	c, err := mimic.RunWithWriter(a, s.Tests(), &buf)
	if err != nil {
		t.Fatalf("RunWithWriter() error = %v", err)
	}
	return buf.String(), c
}

func TestTests_Outcomes(t *testing.T) {
	requireShell(t)
	t.Parallel()

	s := &Suite{Entries: []Entry{
		{Name: "pass", Kind: "sh", Command: sh("exit 0")},
		{Name: "fail", Command: sh("echo boom; exit 3")},
		{Name: "skipped", Command: sh("exit 1"), Ignored: true},
	}}

	out, c := runSuite(t, s, "--test-threads=1")

	want := "\nrunning 3 tests\n" +
		"test [sh] pass ... ok\n" +
		"test fail ... FAILED\n" +
		"test skipped ... ignored\n" +
		"\nfailures:\n\n" +
		"---- fail ----\n" +
		"boom\nexit status 3\n" +
		"\n" +
		"\nfailures:\n" +
		"    fail\n" +
		"\ntest result: FAILED. 1 passed; 1 failed; 1 ignored; 0 measured; 0 filtered out\n\n"
	if out != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", out, want)
	}
	if c.NumPassed != 1 || c.NumFailed != 1 || c.NumIgnored != 1 {
		t.Errorf("conclusion = %+v", c)
	}
}

func TestTests_Order(t *testing.T) {
	t.Parallel()

	s := &Suite{Entries: []Entry{
		{Name: "b", Command: []string{"x"}},
		{Name: "a", Kind: "k", Command: []string{"x"}, Ignored: true},
		{Name: "c", Command: []string{"x"}, Bench: true},
	}}

	tests := s.Tests()
	if len(tests) != 3 {
		t.Fatalf("len = %d, want 3", len(tests))
	}
	if tests[0].Name() != "b" || tests[1].Name() != "a" || tests[2].Name() != "c" {
		t.Errorf("order = %v, %v, %v", tests[0], tests[1], tests[2])
	}
	if tests[1].Kind() != "k" || !tests[1].IsIgnored() {
		t.Errorf("tests[1] = %v, want ignored [k] a", tests[1])
	}
	if !tests[2].IsBench() {
		t.Error("tests[2] is not a bench")
	}
}

func TestTests_MissingProgram(t *testing.T) {
	t.Parallel()

	c := (&Suite{}).command(Entry{Name: "x", Command: []string{"definitely-not-a-real-program-mimic"}})
	err := c.test()

	var failed *mimic.Failed
	if !errors.As(err, &failed) {
		t.Fatalf("test() error = %v, want *mimic.Failed", err)
	}
	msg, ok := failed.Message()
	if !ok || !strings.Contains(msg, "definitely-not-a-real-program-mimic") {
		t.Errorf("message = %q", msg)
	}
}

func TestTests_DirAndEnv(t *testing.T) {
	requireShell(t)
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "marker"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	s := &Suite{dir: root, Entries: []Entry{
		{Name: "dir", Dir: "sub", Command: sh("test -f marker")},
		{Name: "env", Env: map[string]string{"MIMIC_SUITE_VALUE": "42"}, Command: sh(`test "$MIMIC_SUITE_VALUE" = 42`)},
		{Name: "default dir", Command: sh("test -d sub")},
	}}

	_, c := runSuite(t, s)
	if c.NumPassed != 3 || c.NumFailed != 0 {
		t.Errorf("conclusion = %+v, want 3 passed", c)
	}
}

func TestCommand_Resolution(t *testing.T) {
	t.Parallel()

	s := &Suite{dir: "/work"}
	c := s.command(Entry{Command: []string{"a"}, Dir: "sub", Env: map[string]string{"B": "2", "A": "1"}})
	if c.dir != filepath.Join("/work", "sub") {
		t.Errorf("dir = %q", c.dir)
	}
	if strings.Join(c.env, ",") != "A=1,B=2" {
		t.Errorf("env = %v, want sorted", c.env)
	}
	if c.iterations != DefaultIterations {
		t.Errorf("iterations = %d, want default", c.iterations)
	}

	abs := s.command(Entry{Command: []string{"a"}, Dir: "/elsewhere"})
	if abs.dir != "/elsewhere" {
		t.Errorf("absolute dir = %q", abs.dir)
	}
}

func TestBench_ParsesReportedMeasurement(t *testing.T) {
	requireShell(t)
	t.Parallel()

	c := (&Suite{}).command(Entry{
		Name:       "b",
		Bench:      true,
		Iterations: 5,
		Command:    sh(`echo "test parse ... bench:       1,234 ns/iter (+/- 56)"`),
	})
	m, err := c.bench()
	if err != nil {
		t.Fatalf("bench() error = %v", err)
	}
	if m.Avg != 1234 || m.Variance != 56 {
		t.Errorf("measurement = %+v, want {1234 56}", m)
	}
}

func TestBench_TimesCommand(t *testing.T) {
	requireShell(t)
	t.Parallel()

	c := (&Suite{}).command(Entry{Name: "b", Bench: true, Iterations: 2, Command: sh("exit 0")})
	m, err := c.bench()
	if err != nil {
		t.Fatalf("bench() error = %v", err)
	}
	if m.Avg == 0 {
		t.Error("Avg = 0, want a positive timing")
	}
}

func TestBench_Failure(t *testing.T) {
	requireShell(t)
	t.Parallel()

	c := (&Suite{}).command(Entry{Name: "b", Bench: true, Iterations: 2, Command: sh("exit 2")})
	_, err := c.bench()
	var failed *mimic.Failed
	if !errors.As(err, &failed) {
		t.Fatalf("bench() error = %v, want *mimic.Failed", err)
	}
	if msg, _ := failed.Message(); msg != "exit status 2" {
		t.Errorf("message = %q, want %q", msg, "exit status 2")
	}
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	got := measure([]time.Duration{10, 30, 20})
	if got.Avg != 20 || got.Variance != 20 {
		t.Errorf("measure() = %+v, want {20 20}", got)
	}
	if got := measure(nil); got.Avg != 0 || got.Variance != 0 {
		t.Errorf("measure(nil) = %+v, want zero", got)
	}
}

func TestFailureMessage(t *testing.T) {
	t.Parallel()

	exitErr := errors.New("exit status 101")

	tests := []struct {
		name string
		out  string
		want string
	}{
		{"no output", "", "exit status 101"},
		{"trimmed output", "\n  oops  \n", "oops\nexit status 101"},
		{
			name: "nested libtest report",
			out:  "test a ... FAILED\n\ntest result: FAILED. 3 passed; 2 failed; 0 ignored; 0 measured; 0 filtered out\n",
			want: "2 failed\ntest a ... FAILED\n\ntest result: FAILED. 3 passed; 2 failed; 0 ignored; 0 measured; 0 filtered out\nexit status 101",
		},
		{
			name: "nested report without failures",
			out:  "test result: ok. 3 passed; 0 failed; 0 ignored; 0 measured; 0 filtered out",
			want: "test result: ok. 3 passed; 0 failed; 0 ignored; 0 measured; 0 filtered out\nexit status 101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := failureMessage(tt.out, exitErr); got != tt.want {
				t.Errorf("failureMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
