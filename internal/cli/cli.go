// Package cli provides the mimic command: it loads a suite manifest and runs
// its commands with a libtest-compatible report.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AndreyAkinshin/mimic/internal/args"
	"github.com/AndreyAkinshin/mimic/internal/errors"
	"github.com/AndreyAkinshin/mimic/internal/output"
	"github.com/AndreyAkinshin/mimic/internal/scheduler"
	"github.com/AndreyAkinshin/mimic/internal/suite"
	"github.com/AndreyAkinshin/mimic/pkg/mimic"
)

// Version is set at build time.
var Version = "dev"

// Run executes the CLI with the given arguments and returns an exit code.
func Run(argv []string) int {
	return newApp(os.Stdout, os.Stderr).run(argv)
}

// app holds the destinations of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	out    *output.Writer
}

func newApp(stdout, stderr io.Writer) *app {
	if stdout == io.Writer(os.Stdout) && stderr == io.Writer(os.Stderr) {
		return &app{stdin: os.Stdin, stdout: stdout, out: output.New()}
	}
	return &app{stdin: os.Stdin, stdout: stdout, out: output.NewWithWriters(stdout, stderr, false)}
}

func (c *app) run(argv []string) int {
	if len(argv) > 0 {
		switch argv[0] {
		case "--version":
			c.out.Println("mimic %s", Version)
			return errors.ExitSuccess
		case "test-summary":
			return c.cmdTestSummary(argv[1:])
		}
	}

	opts, rest, err := parseSuiteFlags(argv)
	if err != nil {
		return c.fail(err)
	}

	a, err := args.Parse(rest)
	if err != nil {
		return c.fail(err)
	}
	if a.Help {
		c.printUsage()
		return errors.ExitSuccess
	}
	if err := a.Validate(); err != nil {
		return c.fail(err)
	}

	path := opts.SuitePath
	if path == "" {
		path, err = suite.Find(".")
		if err != nil {
			code := c.fail(err)
			if errors.IsKind(err, errors.KindNotFound) {
				c.out.Errorln("hint: create %s in the current directory or pass --suite PATH", suite.DefaultManifest)
			}
			return code
		}
	}

	s, warnings, err := suite.Load(path)
	for _, w := range warnings {
		c.out.WarningSimple("%s", w)
	}
	if err != nil {
		return c.fail(err)
	}

	var conclusion mimic.Conclusion
	if c.stdout == io.Writer(os.Stdout) {
		conclusion, err = mimic.Run(a, s.Tests())
	} else {
		conclusion, err = mimic.RunWithWriter(a, s.Tests(), c.stdout)
	}
	if err != nil {
		return c.fail(err)
	}
	return conclusion.ExitCode()
}

// fail reports err on stderr and returns its exit code.
func (c *app) fail(err error) int {
	c.out.ErrorPrefix("%v", err)
	return errors.GetExitCode(err)
}

// SuiteOptions holds the flags that belong to the command rather than to
// the libtest-compatible argument set.
type SuiteOptions struct {
	SuitePath string
}

// parseSuiteFlags extracts --suite from argv and returns the remaining
// arguments, which are passed on to args.Parse. Arguments after -- are
// left untouched.
func parseSuiteFlags(argv []string) (*SuiteOptions, []string, error) {
	opts := &SuiteOptions{}
	var remaining []string

	i := 0
	for i < len(argv) {
		arg := argv[i]

		switch {
		case arg == "--suite":
			if i+1 >= len(argv) {
				return nil, nil, errors.Config("--suite requires a value")
			}
			opts.SuitePath = argv[i+1]
			i += 2
		case strings.HasPrefix(arg, "--suite="):
			opts.SuitePath = strings.TrimPrefix(arg, "--suite=")
			if opts.SuitePath == "" {
				return nil, nil, errors.Config("--suite requires a value")
			}
			i++
		case arg == "--":
			remaining = append(remaining, argv[i:]...)
			i = len(argv)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	return opts, remaining, nil
}

func (c *app) printUsage() {
	w := c.out

	w.HelpTitle("mimic - run command suites with a libtest-compatible report")

	w.HelpSection("Usage:")
	w.Println("  mimic [--suite PATH] [OPTIONS] [FILTER]")
	w.Println("  mimic test-summary [FILE]")

	w.HelpSection("Suite Options:")
	w.HelpFlag("--suite PATH", fmt.Sprintf("Suite manifest (default %s, then %s)", suite.DefaultManifest, suite.DefaultManifestFallback), 28)
	w.HelpFlag("--version", "Print the mimic version", 28)

	w.HelpSection("Test Options:")
	for _, opt := range args.Options() {
		w.HelpFlag(opt[0], opt[1], 28)
	}

	w.HelpSection("Environment:")
	w.HelpFlag(scheduler.EnvTestThreads, "Default for --test-threads", 28)
	w.HelpFlag("NO_COLOR", "Disable automatic coloring", 28)
	w.Println("")
}
