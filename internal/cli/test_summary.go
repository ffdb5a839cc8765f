package cli

import (
	"io"
	"os"

	"github.com/AndreyAkinshin/mimic/internal/errors"
	"github.com/AndreyAkinshin/mimic/internal/model"
	"github.com/AndreyAkinshin/mimic/internal/output"
	"github.com/AndreyAkinshin/mimic/internal/testparser"
)

// cmdTestSummary parses libtest console output and prints the aggregated
// result line and failed test names.
func (c *app) cmdTestSummary(argv []string) int {
	if len(argv) > 0 && (argv[0] == "-h" || argv[0] == "--help") {
		c.printTestSummaryUsage()
		return errors.ExitSuccess
	}
	if len(argv) > 1 {
		c.out.ErrorPrefix("test-summary: unexpected argument: %s", argv[1])
		return errors.ExitConfigError
	}

	input := c.stdin
	if len(argv) > 0 && argv[0] != "-" {
		f, err := os.Open(argv[0])
		if err != nil {
			c.out.ErrorPrefix("test-summary: %v", err)
			return errors.ExitRuntimeError
		}
		defer func() { _ = f.Close() }()
		input = f
	}

	data, err := io.ReadAll(input)
	if err != nil {
		c.out.ErrorPrefix("test-summary: %v", err)
		return errors.ExitRuntimeError
	}

	counts := testparser.Parse(string(data))
	if !counts.Parsed {
		c.out.ErrorPrefix("test-summary: no test results found in input")
		c.out.Errorln("hint: pipe the output of a libtest-compatible harness, e.g. 'cargo test 2>&1 | mimic test-summary'")
		return errors.ExitRuntimeError
	}

	c.printTestSummary(&counts)

	if counts.Failed > 0 {
		return errors.ExitTestsFailed
	}
	return errors.ExitSuccess
}

// printTestSummary prints the aggregate in the libtest summary format.
func (c *app) printTestSummary(counts *testparser.TestCounts) {
	conclusion := model.Conclusion{
		NumFilteredOut: uint64(counts.FilteredOut),
		NumPassed:      uint64(counts.Passed),
		NumFailed:      uint64(counts.Failed),
		NumIgnored:     uint64(counts.Ignored),
		NumBenches:     uint64(counts.Measured),
	}

	if len(counts.FailedTests) > 0 {
		c.out.Print("\nfailures:\n")
		for _, name := range counts.FailedTests {
			c.out.Println("    %s", name)
		}
	}
	output.NewPrinter(c.stdout, false).PrintSummary(conclusion)
}

func (c *app) printTestSummaryUsage() {
	w := c.out
	w.HelpTitle("mimic test-summary - aggregate libtest console output")
	w.HelpSection("Usage:")
	w.Println("  cargo test 2>&1 | mimic test-summary")
	w.Println("  mimic test-summary test-output.txt")
	w.HelpSection("Description:")
	w.Println("  Sums the 'test result:' lines of one or more libtest-compatible runs")
	w.Println("  and lists the failed tests. Exits with 101 if any test failed.")
	w.Println("")
}
