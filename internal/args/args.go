// Package args provides the libtest-compatible command line arguments
// understood by the harness.
package args

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	mimicerrors "github.com/AndreyAkinshin/mimic/internal/errors"
)

// ColorSetting controls colored output.
type ColorSetting string

const (
	ColorAuto   ColorSetting = "auto"
	ColorAlways ColorSetting = "always"
	ColorNever  ColorSetting = "never"
)

// FormatSetting selects the output format.
type FormatSetting string

const (
	FormatPretty FormatSetting = "pretty"
	FormatTerse  FormatSetting = "terse"
	FormatJSON   FormatSetting = "json"
)

// Arguments holds the run configuration, mirroring the flags of a
// libtest test binary.
type Arguments struct {
	// Filter runs only tests whose name contains it (or equals it with Exact).
	// An empty filter selects every test.
	Filter string
	Exact  bool
	Skip   []string

	Ignored bool // Run only ignored tests
	Test    bool // Run tests and ignore benchmarks
	Bench   bool // Run benchmarks and ignore tests
	List    bool // List all tests and benchmarks instead of running them

	// NoCapture is accepted for compatibility; capturing is up to the caller.
	NoCapture bool
	Quiet     bool

	// TestThreads is the number of worker goroutines. Zero means the
	// default, one forces sequential execution on the calling goroutine.
	TestThreads int

	Logfile string
	Color   ColorSetting
	Format  FormatSetting

	Help bool
}

// HasFilter reports whether a name filter is configured.
func (a *Arguments) HasFilter() bool {
	return a.Filter != ""
}

// FromOS parses the current process arguments.
func FromOS() (*Arguments, error) {
	return Parse(os.Args[1:])
}

// Parse parses libtest-style arguments.
//
// Manual parsing is used instead of the stdlib flag package because
// libtest accepts a free positional filter anywhere in the argument list
// and both "--flag value" and "--flag=value" spellings.
func Parse(argv []string) (*Arguments, error) {
	a := &Arguments{
		Color:  ColorAuto,
		Format: FormatPretty,
	}

	// On/off options.
	switches := map[string]*bool{
		"--ignored":   &a.Ignored,
		"--test":      &a.Test,
		"--bench":     &a.Bench,
		"--list":      &a.List,
		"--nocapture": &a.NoCapture,
		"--exact":     &a.Exact,
		"-q":          &a.Quiet,
		"--quiet":     &a.Quiet,
		"-h":          &a.Help,
		"--help":      &a.Help,
	}

	var positional []string
	i := 0
	for i < len(argv) {
		arg := argv[i]

		name, inline, hasInline := strings.Cut(arg, "=")
		if !strings.HasPrefix(arg, "--") {
			name, inline, hasInline = arg, "", false
		}

		// value returns the option value, either inline or the next argument.
		value := func() (string, error) {
			if hasInline {
				i++
				return inline, nil
			}
			if i+1 >= len(argv) {
				return "", mimicerrors.Configf("%s requires a value", name)
			}
			v := argv[i+1]
			i += 2
			return v, nil
		}

		if dst, ok := switches[name]; ok {
			if hasInline {
				return nil, mimicerrors.Configf("%s does not take a value", name)
			}
			*dst = true
			i++
			continue
		}

		switch name {
		case "--test-threads":
			v, err := value()
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, mimicerrors.Configf("--test-threads must be a positive integer, got %q", v)
			}
			a.TestThreads = n
		case "--logfile":
			v, err := value()
			if err != nil {
				return nil, err
			}
			a.Logfile = v
		case "--skip":
			v, err := value()
			if err != nil {
				return nil, err
			}
			a.Skip = append(a.Skip, v)
		case "--color":
			v, err := value()
			if err != nil {
				return nil, err
			}
			c, ok := ParseColor(v)
			if !ok {
				return nil, mimicerrors.Configf("invalid --color value %q\n  valid values: auto, always, never", v)
			}
			a.Color = c
		case "--format":
			v, err := value()
			if err != nil {
				return nil, err
			}
			f, ok := ParseFormat(v)
			if !ok {
				return nil, mimicerrors.Configf("invalid --format value %q\n  valid values: pretty, terse, json", v)
			}
			a.Format = f
		case "--":
			positional = append(positional, argv[i+1:]...)
			i = len(argv)
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return nil, mimicerrors.Configf("unknown option %q", arg)
			}
			positional = append(positional, arg)
			i++
		}
	}

	switch len(positional) {
	case 0:
	case 1:
		a.Filter = positional[0]
	default:
		return nil, mimicerrors.Configf("unexpected argument %q: only one filter may be given", positional[1])
	}

	return a, nil
}

// ParseColor converts a --color value.
func ParseColor(s string) (ColorSetting, bool) {
	switch c := ColorSetting(strings.ToLower(s)); c {
	case ColorAuto, ColorAlways, ColorNever:
		return c, true
	}
	return "", false
}

// ParseFormat converts a --format value.
func ParseFormat(s string) (FormatSetting, bool) {
	switch f := FormatSetting(strings.ToLower(s)); f {
	case FormatPretty, FormatTerse, FormatJSON:
		return f, true
	}
	return "", false
}

// Validate rejects options this harness recognizes but does not implement.
// It must be called before any output is produced so that an unsupported
// configuration never degrades silently to a different format.
func (a *Arguments) Validate() error {
	if a.Quiet {
		return mimicerrors.Unsupported("output format", string(FormatTerse)+" (--quiet)")
	}
	switch a.Format {
	case "", FormatPretty:
	default:
		return mimicerrors.Unsupported("output format", string(a.Format))
	}
	if a.Logfile != "" {
		return mimicerrors.Unsupported("--logfile", a.Logfile)
	}
	switch a.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return mimicerrors.Configf("invalid color setting %q", a.Color)
	}
	if a.TestThreads < 0 {
		return mimicerrors.Configf("test threads must not be negative, got %d", a.TestThreads)
	}
	return nil
}

// Usage returns the help text for the libtest-compatible options.
func Usage(program string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s [OPTIONS] [FILTER]\n\n", program)
	b.WriteString("Options:\n")
	for _, opt := range options {
		fmt.Fprintf(&b, "    %-28s %s\n", opt[0], opt[1])
	}
	return b.String()
}

// Options returns the libtest-compatible options as (flag, description) pairs.
func Options() [][2]string {
	return append([][2]string(nil), options...)
}

var options = [][2]string{
	{"--ignored", "Run ignored tests"},
	{"--test", "Run tests and not benchmarks"},
	{"--bench", "Run benchmarks instead of tests"},
	{"--list", "List all tests and benchmarks"},
	{"--nocapture", "Accepted for compatibility"},
	{"--exact", "Exactly match filters rather than by substring"},
	{"-q, --quiet", "Display one character per test (not supported)"},
	{"--test-threads N", "Number of threads used for running tests in parallel"},
	{"--logfile PATH", "Write logs to the specified file (not supported)"},
	{"--skip FILTER", "Skip tests whose names contain FILTER (repeatable)"},
	{"--color auto|always|never", "Configure coloring of output"},
	{"--format pretty|terse|json", "Configure formatting of output (only pretty)"},
	{"-h, --help", "Display this message"},
}
