package suite

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AndreyAkinshin/mimic/internal/model"
	"github.com/AndreyAkinshin/mimic/internal/testparser"
	"github.com/AndreyAkinshin/mimic/pkg/mimic"
)

// Tests converts the manifest entries into runnable units, in manifest order.
func (s *Suite) Tests() []mimic.Test {
	tests := make([]mimic.Test, 0, len(s.Entries))
	for _, e := range s.Entries {
		c := s.command(e)
		var t mimic.Test
		if e.Bench {
			t = mimic.NewBench(e.Name, c.bench)
		} else {
			t = mimic.NewTest(e.Name, c.test)
		}
		tests = append(tests, t.WithKind(e.Kind).WithIgnored(e.Ignored))
	}
	return tests
}

// command is a resolved entry ready to execute.
type command struct {
	argv       []string
	dir        string
	env        []string
	iterations int
}

func (s *Suite) command(e Entry) command {
	dir := e.Dir
	if dir == "" {
		dir = s.dir
	} else if !filepath.IsAbs(dir) && s.dir != "" {
		dir = filepath.Join(s.dir, dir)
	}

	keys := make([]string, 0, len(e.Env))
	for k := range e.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+e.Env[k])
	}

	iterations := e.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	return command{
		argv:       append([]string(nil), e.Command...),
		dir:        dir,
		env:        env,
		iterations: iterations,
	}
}

// run runs the command once and returns its combined output.
func (c command) run() (string, error) {
	cmd := exec.Command(c.argv[0], c.argv[1:]...)
	cmd.Dir = c.dir
	cmd.Env = append(os.Environ(), c.env...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	return out.String(), err
}

func (c command) test() error {
	out, err := c.run()
	if err != nil {
		return mimic.Fail(failureMessage(out, err))
	}
	return nil
}

// bench reports the libtest measurement printed by the command if there is
// one, else times the command and reports the mean and the spread.
func (c command) bench() (mimic.Measurement, error) {
	durations := make([]time.Duration, 0, c.iterations)
	for i := 0; i < c.iterations; i++ {
		start := time.Now()
		out, err := c.run()
		elapsed := time.Since(start)
		if err != nil {
			return mimic.Measurement{}, mimic.Fail(failureMessage(out, err))
		}
		if i == 0 {
			if m, ok := testparser.ParseBench(out); ok {
				return m, nil
			}
		}
		durations = append(durations, elapsed)
	}
	return measure(durations), nil
}

// measure summarizes timings as (mean, max-min) in nanoseconds.
func measure(durations []time.Duration) model.Measurement {
	if len(durations) == 0 {
		return model.Measurement{}
	}
	var total, lo, hi time.Duration
	lo, hi = durations[0], durations[0]
	for _, d := range durations {
		total += d
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return model.Measurement{
		Avg:      uint64(total.Nanoseconds() / int64(len(durations))),
		Variance: uint64((hi - lo).Nanoseconds()),
	}
}

// failureMessage builds the message of a failed command: a count of nested
// failures when the output is itself a libtest report, the trimmed output
// and the exit status.
func failureMessage(out string, err error) string {
	out = strings.TrimSpace(out)

	var parts []string
	if counts := testparser.Parse(out); counts.Parsed && counts.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", counts.Failed))
	}
	if out != "" {
		parts = append(parts, out)
	}
	parts = append(parts, err.Error())
	return strings.Join(parts, "\n")
}
