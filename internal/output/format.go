package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AndreyAkinshin/mimic/internal/model"
)

// The functions in this file render the libtest console format. External
// tooling scrapes these lines, so tokens, separators and blank lines are
// part of the contract.

// Result tokens.
const (
	TokenOK      = "ok"
	TokenFailed  = "FAILED"
	TokenIgnored = "ignored"
	TokenBench   = "bench"
)

// FormatTitle renders the preamble announcing how many units will run.
func FormatTitle(numTests uint64) string {
	plural := "s"
	if numTests == 1 {
		plural = ""
	}
	return fmt.Sprintf("\nrunning %d test%s\n", numTests, plural)
}

// FormatTestStart renders the start of a unit's line, up to the result token.
func FormatTestStart(info model.Info) string {
	return "test " + info.DisplayName() + " ... "
}

// OutcomeToken returns the result token for an outcome.
func OutcomeToken(o model.Outcome) string {
	switch o.Kind {
	case model.OutcomeFailed:
		return TokenFailed
	case model.OutcomeIgnored:
		return TokenIgnored
	case model.OutcomeMeasured:
		return TokenBench
	default:
		return TokenOK
	}
}

// FormatMeasurement renders the part of a bench line that follows the token.
func FormatMeasurement(m model.Measurement) string {
	return fmt.Sprintf(": %11s ns/iter (+/- %s)", thousands(m.Avg), thousands(m.Variance))
}

// FormatOutcome renders the end of a unit's line, including the newline.
func FormatOutcome(o model.Outcome) string {
	s := OutcomeToken(o)
	if o.Kind == model.OutcomeMeasured {
		s += FormatMeasurement(o.Measurement)
	}
	return s + "\n"
}

// FormatFailures renders the failure block: one section per failure with its
// message, followed by the list of failed names.
func FormatFailures(failures []model.Failure) string {
	var b strings.Builder
	b.WriteString("\nfailures:\n\n")
	for _, f := range failures {
		fmt.Fprintf(&b, "---- %s ----\n", f.Info.Name)
		if f.Message != nil {
			b.WriteString(*f.Message)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("\nfailures:\n")
	for _, f := range failures {
		fmt.Fprintf(&b, "    %s\n", f.Info.Name)
	}
	return b.String()
}

// SummaryToken returns the overall verdict token.
func SummaryToken(c model.Conclusion) string {
	if c.HasFailed() {
		return TokenFailed
	}
	return TokenOK
}

// FormatSummaryCounts renders the counters that follow the verdict token.
func FormatSummaryCounts(c model.Conclusion) string {
	return fmt.Sprintf(". %d passed; %d failed; %d ignored; %d measured; %d filtered out",
		c.NumPassed, c.NumFailed, c.NumIgnored, c.NumBenches, c.NumFilteredOut)
}

// FormatSummary renders the final summary line surrounded by blank lines.
func FormatSummary(c model.Conclusion) string {
	return "\ntest result: " + SummaryToken(c) + FormatSummaryCounts(c) + "\n\n"
}

// FormatListEntry renders one line of --list output.
func FormatListEntry(info model.Info) string {
	kind := "test"
	if info.Bench {
		kind = "bench"
	}
	return info.DisplayName() + ": " + kind + "\n"
}

// FormatList renders --list output. With ignoredOnly, only units marked
// ignored are listed.
func FormatList(infos []model.Info, ignoredOnly bool) string {
	var b strings.Builder
	for _, info := range infos {
		if ignoredOnly && !info.Ignored {
			continue
		}
		b.WriteString(FormatListEntry(info))
	}
	return b.String()
}

var numberPrinter = message.NewPrinter(language.English)

// thousands formats v with comma thousands separators, as libtest does.
func thousands(v uint64) string {
	return numberPrinter.Sprintf("%d", v)
}
