package mimic

import (
	"io"
	"os"

	"github.com/AndreyAkinshin/mimic/internal/args"
	"github.com/AndreyAkinshin/mimic/internal/filter"
	"github.com/AndreyAkinshin/mimic/internal/model"
	"github.com/AndreyAkinshin/mimic/internal/output"
	"github.com/AndreyAkinshin/mimic/internal/scheduler"
)

// Arguments is the run configuration, mirroring libtest's command line.
type Arguments = args.Arguments

// Color and format settings accepted in Arguments.
const (
	ColorAuto    = args.ColorAuto
	ColorAlways  = args.ColorAlways
	ColorNever   = args.ColorNever
	FormatPretty = args.FormatPretty
	FormatTerse  = args.FormatTerse
	FormatJSON   = args.FormatJSON
)

// ParseArgs parses libtest-style arguments, e.g. os.Args[1:].
func ParseArgs(argv []string) (*Arguments, error) {
	return args.Parse(argv)
}

// MustParseArgs parses the process arguments. On error, or when help was
// requested, it prints to stderr and exits.
func MustParseArgs() *Arguments {
	a, err := args.FromOS()
	if err != nil {
		output.New().ErrorPrefix("%v", err)
		osExit(ExitConfigError)
		return nil
	}
	if a.Help {
		_, _ = io.WriteString(os.Stdout, args.Usage(os.Args[0]))
		osExit(ExitSuccess)
	}
	return a
}

// Run runs all given tests, printing the libtest-compatible report to stdout.
//
// Filtering, --list, --ignored, --test, --bench, --exact, --skip,
// --test-threads and --color are honored. Options that are recognized but
// not implemented (a format other than pretty, --quiet, --logfile) make Run
// return an error before anything is printed.
//
// If --list was given, the list is printed and a zero Conclusion returned.
func Run(a *Arguments, tests []Test) (Conclusion, error) {
	if err := a.Validate(); err != nil {
		return Conclusion{}, err
	}
	return run(a, tests, os.Stdout, output.ColorEnabled(a.Color, os.Stdout)), nil
}

// RunWithWriter is like Run but writes the report to w. Color is only used
// with --color always.
func RunWithWriter(a *Arguments, tests []Test, w io.Writer) (Conclusion, error) {
	if err := a.Validate(); err != nil {
		return Conclusion{}, err
	}
	return run(a, tests, w, a.Color == args.ColorAlways), nil
}

// MustRun is like Run but treats an unsupported configuration as fatal:
// the error is printed to stderr and the process exits with code 2.
func MustRun(a *Arguments, tests []Test) Conclusion {
	c, err := Run(a, tests)
	if err != nil {
		output.New().ErrorPrefix("%v", err)
		osExit(ExitConfigError)
	}
	return c
}

func run(a *Arguments, tests []Test, w io.Writer, color bool) Conclusion {
	kept, numFilteredOut := filter.Apply(a, tests, func(t Test) model.Info { return t.info })

	printer := output.NewPrinter(w, color)

	if a.List {
		infos := make([]model.Info, len(kept))
		for i, t := range kept {
			infos[i] = t.info
		}
		printer.PrintList(infos, a.Ignored)
		return Conclusion{}
	}

	printer.PrintTitle(uint64(len(kept)))

	units := make([]scheduler.Unit, len(kept))
	for i, t := range kept {
		units[i] = t.unit()
	}
	res := scheduler.Run(units, a, printer)
	res.Conclusion.NumFilteredOut = numFilteredOut

	printer.PrintFailures(res.Failures)
	printer.PrintSummary(res.Conclusion)

	return conclusionFrom(res.Conclusion)
}
