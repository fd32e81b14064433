package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/aretw0/surveykit/pkg/scoring"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Renderer turns views and score reports into human-readable text.
// On a terminal the markdown is styled with glamour; otherwise it is written as is.
type Renderer struct {
	w        io.Writer
	out      *termenv.Output
	markdown func(string) (string, error)
}

// NewRenderer creates a renderer for w.
func NewRenderer(w io.Writer) *Renderer {
	r := &Renderer{w: w, out: termenv.NewOutput(w)}
	if IsTerminal(w) {
		md, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(), // Automatically detect light/dark background
			glamour.WithWordWrap(100),
		)
		if err == nil {
			r.markdown = md.Render
		}
	}
	return r
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *Renderer) write(md string) error {
	if r.markdown != nil {
		styled, err := r.markdown(md)
		if err == nil {
			md = styled
		}
	}
	_, err := io.WriteString(r.w, md)
	return err
}

// Status returns a coloured one-line verdict.
func (r *Renderer) Status(ok bool, text string) string {
	if ok {
		return r.out.String("✔ " + text).Foreground(r.out.Color("#22c55e")).String()
	}
	return r.out.String("✘ " + text).Foreground(r.out.Color("#ef4444")).Bold().String()
}

// RenderView writes the evaluation result of doc.
func (r *Renderer) RenderView(doc *domain.SchemaNode, v *domain.View) error {
	if err := r.write(ViewMarkdown(doc, v)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.w, r.Status(v.Submittable, verdict(v)))
	return err
}

// RenderReport writes a score report.
func (r *Renderer) RenderReport(rep *scoring.Report) error {
	if err := r.write(ReportMarkdown(rep)); err != nil {
		return err
	}
	ok := len(rep.Manual) == 0
	text := fmt.Sprintf("score %s / %s", num(rep.Total), num(rep.MaxTotal))
	if !ok {
		text += fmt.Sprintf(", %d awaiting review", len(rep.Manual))
	}
	_, err := fmt.Fprintln(r.w, r.Status(ok, text))
	return err
}

func verdict(v *domain.View) string {
	switch {
	case !v.Submittable:
		return fmt.Sprintf("not submittable: %d error(s)", len(v.Errors()))
	case v.Finished:
		return "finished early"
	case v.Complete:
		return "complete"
	}
	return "submittable, required questions unanswered"
}

// ViewMarkdown renders a view as a markdown table in document order.
func ViewMarkdown(doc *domain.SchemaNode, v *domain.View) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title(doc))
	sb.WriteString("| Node | Type | Visible | Required | Value | Findings |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for n := range doc.All() {
		nv, ok := v.Nodes[n.ID]
		if !ok {
			continue
		}
		value := ""
		switch {
		case nv.ComputedText != nil:
			value = *nv.ComputedText
		case nv.ComputedValue != nil:
			value = num(*nv.ComputedValue)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n",
			cell(n.ID), n.Type, yes(nv.Visible), yes(nv.Required), cell(value), cell(findings(nv)))
	}
	sb.WriteString("\n")
	return sb.String()
}

// ReportMarkdown renders a score report as a markdown table.
func ReportMarkdown(rep *scoring.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Score: %s\n\n", rep.DocumentID)
	sb.WriteString("| Node | Mode | Score | Max | Status |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, ns := range rep.Nodes {
		score := "-"
		if ns.Score != nil {
			score = num(*ns.Score)
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", cell(ns.ID), ns.Mode, score, num(ns.Max), ns.Status)
	}
	fmt.Fprintf(&sb, "\n**Total:** %s / %s (auto %s, manual %s)\n\n",
		num(rep.Total), num(rep.MaxTotal), num(rep.AutoTotal), num(rep.ManualTotal))
	return sb.String()
}

func title(doc *domain.SchemaNode) string {
	if doc.Title != "" {
		return doc.Title
	}
	return doc.ID
}

func findings(nv *domain.NodeView) string {
	var parts []string
	for _, e := range nv.Errors {
		parts = append(parts, "error: "+e.Message)
	}
	for _, w := range nv.Warnings {
		parts = append(parts, "warning: "+w.Message)
	}
	return strings.Join(parts, "; ")
}

func yes(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func num(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

// cell escapes the characters that would break a markdown table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
