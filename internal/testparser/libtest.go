package testparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/mimic/internal/model"
)

// Static regexes for libtest output parsing.
// Compiled once at package init for performance.
var (
	summaryRegex  = regexp.MustCompile(`test result: \w+\.\s*(\d+) passed;\s*(\d+) failed;\s*(\d+) ignored;\s*(\d+) measured;\s*(\d+) filtered out`)
	testLineRegex = regexp.MustCompile(`^test (?:\[([^\]]*)\] )?(.+?) \.\.\. (ok|FAILED|ignored|bench)(.*)$`)
	benchRegex    = regexp.MustCompile(`bench:\s*([\d,]+) ns/iter \(\+/- ([\d,]+)\)`)
)

const failedHeader = "failures:"

// Parse extracts test counts from libtest output. Output may contain
// several runs (e.g. one per test binary); each run ends at its summary line
// and the counts of all runs are aggregated.
//
//	test result: ok. 47 passed; 0 failed; 3 ignored; 0 measured; 0 filtered out
//	test result: FAILED. 45 passed; 2 failed; 3 ignored; 0 measured; 0 filtered out; finished in 0.12s
func Parse(output string) TestCounts {
	var counts TestCounts

	start := 0
	for _, loc := range summaryRegex.FindAllStringSubmatchIndex(output, -1) {
		group := func(n int) int { return atoi(output[loc[2*n]:loc[2*n+1]]) }

		run := TestCounts{
			Passed:      group(1),
			Failed:      group(2),
			Ignored:     group(3),
			Measured:    group(4),
			FilteredOut: group(5),
			Parsed:      true,
		}
		run.Total = run.Passed + run.Failed + run.Ignored
		run.FailedTests = failedTests(output[start:loc[0]], run.Failed)

		counts.Add(&run)
		start = loc[1]
	}

	return counts
}

// failedTests returns the names of the failed tests of one run: the list
// under the failures block, or the FAILED result lines if the block is
// missing (e.g. the output was truncated).
func failedTests(run string, numFailed int) []string {
	if numFailed == 0 {
		return nil
	}
	if names := failedNames(run); len(names) > 0 {
		return names
	}
	var names []string
	for _, tl := range ParseTestLines(run) {
		if tl.Result == "FAILED" {
			names = append(names, tl.Name)
		}
	}
	return names
}

// ParseTestLine parses a single per-test result line.
func ParseTestLine(line string) (TestLine, bool) {
	m := testLineRegex.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return TestLine{}, false
	}
	tl := TestLine{Kind: m[1], Name: m[2], Result: m[3]}
	if tl.Result == "bench" {
		meas, ok := ParseBench(m[3] + m[4])
		if !ok {
			return TestLine{}, false
		}
		tl.Measurement = &meas
	}
	return tl, true
}

// ParseTestLines returns every per-test result line in output, in order.
func ParseTestLines(output string) []TestLine {
	var lines []TestLine
	for _, line := range strings.Split(output, "\n") {
		if tl, ok := ParseTestLine(line); ok {
			lines = append(lines, tl)
		}
	}
	return lines
}

// ParseBench finds the first "bench: N ns/iter (+/- V)" measurement in s.
func ParseBench(s string) (model.Measurement, bool) {
	m := benchRegex.FindStringSubmatch(s)
	if m == nil {
		return model.Measurement{}, false
	}
	avg, err := strconv.ParseUint(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	if err != nil {
		return model.Measurement{}, false
	}
	variance, err := strconv.ParseUint(strings.ReplaceAll(m[2], ",", ""), 10, 64)
	if err != nil {
		return model.Measurement{}, false
	}
	return model.Measurement{Avg: avg, Variance: variance}, true
}

// failedNames extracts the indented names listed under the second
// "failures:" header of each run.
func failedNames(output string) []string {
	var names []string
	lines := strings.Split(output, "\n")
	for i := 0; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != failedHeader {
			continue
		}
		var block []string
		j := i + 1
		for ; j < len(lines) && strings.HasPrefix(lines[j], "    "); j++ {
			block = append(block, strings.TrimSpace(lines[j]))
		}
		// The first header is followed by a blank line and the messages;
		// only the name list is indented directly below its header.
		names = append(names, block...)
		i = j - 1
	}
	return names
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
