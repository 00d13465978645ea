package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/rscheck/internal/domain"
)

// Colors defines the report palette.
var Colors = struct {
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Muted   lipgloss.Color
}{
	Success: lipgloss.Color("#00B894"), // Green
	Error:   lipgloss.Color("#D63031"), // Red
	Warning: lipgloss.Color("#FDCB6E"), // Yellow
	Muted:   lipgloss.Color("#636E72"), // Gray
}

const reportIndent = "    "

// reportStyles holds the styles of one report. They are bound to the output
// writer so colors are dropped when it is not a terminal.
type reportStyles struct {
	passed  lipgloss.Style
	failed  lipgloss.Style
	neutral lipgloss.Style
	log     lipgloss.Style
}

func newReportStyles(w io.Writer) reportStyles {
	r := lipgloss.NewRenderer(w)
	return reportStyles{
		passed:  r.NewStyle().Foreground(Colors.Success),
		failed:  r.NewStyle().Foreground(Colors.Error),
		neutral: r.NewStyle().Foreground(Colors.Warning),
		log:     r.NewStyle().Foreground(Colors.Muted),
	}
}

func (s reportStyles) status(status domain.CheckStatus) lipgloss.Style {
	switch status {
	case domain.CheckPassed:
		return s.passed
	case domain.CheckFailed:
		return s.failed
	default:
		return s.neutral
	}
}

// writeReport prints one block per result: the status face with the check
// description, then the message and the check log indented below it.
func writeReport(w io.Writer, results []domain.CheckResult) {
	styles := newReportStyles(w)
	for _, r := range results {
		label := r.Description
		if label == "" {
			label = r.Name
		}
		style := styles.status(r.Status)
		_, _ = fmt.Fprintln(w, style.Render(r.Status.Symbol()+" "+label))
		if r.Message != "" {
			_, _ = fmt.Fprintln(w, reportIndent+style.Render(r.Message))
		}
		for _, line := range r.Log {
			_, _ = fmt.Fprintln(w, reportIndent+styles.log.Render(line))
		}
	}
}

// jsonReport is the --json output.
type jsonReport struct {
	Results []domain.CheckResult `json:"results"`
	Passed  bool                 `json:"passed"`
}

func writeJSONReport(w io.Writer, results []domain.CheckResult) error {
	if results == nil {
		results = []domain.CheckResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonReport{Results: results, Passed: domain.AllPassed(results)}); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// finish prints results and maps them to the command's error.
func finish(w io.Writer, results []domain.CheckResult, asJSON bool) error {
	if asJSON {
		if err := writeJSONReport(w, results); err != nil {
			return err
		}
	} else {
		writeReport(w, results)
	}
	if !domain.AllPassed(results) {
		return ErrChecksFailed
	}
	return nil
}
