package output

import (
	"io"

	"github.com/AndreyAkinshin/mimic/internal/model"
)

// Printer is the single writer of the test report. It is not safe for
// concurrent use; the scheduler guarantees that only one goroutine drives it.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color}
}

// PrintTitle prints the "running N tests" preamble.
func (p *Printer) PrintTitle(numTests uint64) {
	p.write(FormatTitle(numTests))
}

// PrintTest prints the start of a unit's line without a newline.
func (p *Printer) PrintTest(info model.Info) {
	p.write(FormatTestStart(info))
}

// PrintOutcome completes the current unit's line.
func (p *Printer) PrintOutcome(o model.Outcome) {
	p.write(p.colorize(OutcomeToken(o), colorOf(o.Kind)))
	if o.Kind == model.OutcomeMeasured {
		p.write(FormatMeasurement(o.Measurement))
	}
	p.write("\n")
}

// TestStarted implements the scheduler's reporter interface.
func (p *Printer) TestStarted(info model.Info) {
	p.PrintTest(info)
}

// TestFinished implements the scheduler's reporter interface.
func (p *Printer) TestFinished(_ model.Info, o model.Outcome) {
	p.PrintOutcome(o)
}

// PrintFailures prints the failure block. Nothing is printed for an empty list.
func (p *Printer) PrintFailures(failures []model.Failure) {
	if len(failures) == 0 {
		return
	}
	p.write(FormatFailures(failures))
}

// PrintSummary prints the final "test result:" line.
func (p *Printer) PrintSummary(c model.Conclusion) {
	kind := model.OutcomePassed
	if c.HasFailed() {
		kind = model.OutcomeFailed
	}
	p.write("\ntest result: ")
	p.write(p.colorize(SummaryToken(c), colorOf(kind)))
	p.write(FormatSummaryCounts(c))
	p.write("\n\n")
}

// PrintList prints the --list output.
func (p *Printer) PrintList(infos []model.Info, ignoredOnly bool) {
	p.write(FormatList(infos, ignoredOnly))
}

func (p *Printer) colorize(s, color string) string {
	if !p.color || color == "" {
		return s
	}
	return color + s + reset
}

// Write errors are dropped: a closed stdout must not abort a run whose
// outcome is still reported through the exit code.
func (p *Printer) write(s string) {
	_, _ = io.WriteString(p.out, s)
}

func colorOf(kind model.OutcomeKind) string {
	switch kind {
	case model.OutcomePassed:
		return green
	case model.OutcomeFailed:
		return red
	case model.OutcomeIgnored:
		return yellow
	case model.OutcomeMeasured:
		return cyan
	default:
		return ""
	}
}
