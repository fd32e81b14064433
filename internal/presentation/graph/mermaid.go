package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/pkg/domain"
)

// Overlay contains evaluation results to visualize on the graph.
type Overlay struct {
	Hidden  []string
	Invalid []string
}

// OverlayFromView collects the hidden and invalid nodes of an evaluated view.
func OverlayFromView(v *domain.View) *Overlay {
	o := &Overlay{}
	for _, id := range v.Order {
		nv := v.Nodes[id]
		switch {
		case !nv.Visible:
			o.Hidden = append(o.Hidden, id)
		case len(nv.Errors) > 0:
			o.Invalid = append(o.Invalid, id)
		}
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of a compiled document.
// Solid edges follow the document tree; dotted edges point from a referenced
// node to the node whose rule reads it, labelled with the rule field.
// It applies semantic styling:
// - Root: ((Circle))
// - Container: [[Subroutine]]
// - Question: [/Parallelogram/]
// - Presentation: [Rectangle]
// It also applies overlay styles (Hidden/Invalid) if provided.
func GenerateMermaid(prog *compiler.Program, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, n := range prog.Nodes {
		safeID := sanitizeMermaidID(n.ID())

		opener, closer := "[", "]"
		switch {
		case n.Parent < 0:
			opener, closer = "((", "))"
		case n.Node.Type.IsContainer():
			opener, closer = "[[", "]]"
		case n.Node.IsDataType():
			opener, closer = "[/", "/]"
		}

		label := n.ID()
		if n.Node.Title != "" {
			label = fmt.Sprintf("%s <br/> %s", n.ID(), n.Node.Title)
		}
		label = strings.ReplaceAll(label, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		if n.Parent >= 0 {
			parent := sanitizeMermaidID(prog.Nodes[n.Parent].ID())
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", parent, safeID))
		}
	}

	for _, n := range prog.Nodes {
		safeID := sanitizeMermaidID(n.ID())
		for _, ref := range n.Refs {
			if !prog.Index.Has(ref.ID) {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", sanitizeMermaidID(ref.ID), ref.Field, safeID))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef hidden fill:#eceff1,stroke:#90a4ae,stroke-dasharray:4 4,color:#000;\n")
		sb.WriteString("    classDef invalid fill:#ffcdd2,stroke:#c62828,stroke-width:3px,color:#000;\n")
		writeClass(&sb, overlay.Hidden, "hidden")
		writeClass(&sb, overlay.Invalid, "invalid")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, ids []string, class string) {
	seen := make(map[string]bool)
	for _, id := range ids {
		safeID := sanitizeMermaidID(id)
		if !seen[safeID] && safeID != "" {
			seen[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", safeID, class))
		}
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
