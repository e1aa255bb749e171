// Package ui renders run reports for the terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/essentialco/ariactl/internal/reconcile"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")

	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	appliedStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	failedStyle    = lipgloss.NewStyle().Foreground(colorRed)
	warningStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	dimStyle       = lipgloss.NewStyle().Foreground(colorDim)
	convergedStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

// statusMarks in plain-text rendering.
const (
	markApplied   = "[OK]"
	markPlanned   = "[->]"
	markFailed    = "[!!]"
	markSkipped   = "[--]"
	markConverged = "[==]"
)

// Renderer writes a human-readable run report. Color is used only when the
// destination is a terminal.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer creates a renderer for the given destination, detecting
// whether it supports color.
func NewRenderer(out io.Writer) *Renderer {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{out: out, color: color}
}

// NewPlainRenderer creates a renderer that never emits color.
func NewPlainRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) styled(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Render writes the full report: per-resource outcomes grouped in recorded
// order, then warnings, notes and the summary line.
func (r *Renderer) Render(rep *reconcile.Report) {
	if rep.Mode == reconcile.ModeSimulate {
		fmt.Fprintln(r.out, r.styled(headingStyle, "Dry run: no changes were made"))
	}

	for _, o := range rep.Outcomes {
		r.renderOutcome(o)
	}

	for _, w := range rep.Warnings {
		fmt.Fprintf(r.out, "%s %s\n", r.styled(warningStyle, "warning:"), w)
	}
	for _, n := range rep.Notes {
		fmt.Fprintf(r.out, "%s\n", r.styled(dimStyle, n))
	}
	for _, f := range rep.KindFailures {
		fmt.Fprintf(r.out, "%s %s: %v\n", r.styled(failedStyle, "aborted:"), f.Kind, f.Err)
	}

	r.renderSummary(rep)
}

func (r *Renderer) renderOutcome(o reconcile.Outcome) {
	var mark, line string
	switch o.Status {
	case reconcile.StatusApplied:
		mark = r.styled(appliedStyle, markApplied)
	case reconcile.StatusPlanned:
		mark = r.styled(headingStyle, markPlanned)
	case reconcile.StatusFailed:
		mark = r.styled(failedStyle, markFailed)
	case reconcile.StatusSkipped:
		mark = r.styled(dimStyle, markSkipped)
	case reconcile.StatusConverged:
		mark = r.styled(convergedStyle, markConverged)
	}

	line = fmt.Sprintf("%s %s %s", mark, o.Kind, o.Name)
	if o.Detail != "" {
		line += r.styled(dimStyle, " - "+o.Detail)
	}
	if o.Err != nil {
		line += r.styled(failedStyle, fmt.Sprintf(" (%v)", o.Err))
	}
	fmt.Fprintln(r.out, line)
}

func (r *Renderer) renderSummary(rep *reconcile.Report) {
	s := rep.Summary()
	verb := "applied"
	if rep.Mode == reconcile.ModeSimulate {
		verb = "planned"
	}
	line := fmt.Sprintf("%d created, %d updated (%s), %d converged, %d skipped, %d failed",
		s.Created, s.Updated, verb, s.Converged, s.Skipped, s.Failed)
	fmt.Fprintln(r.out, r.styled(headingStyle, "Summary: ")+line)
}
