package main

import (
	"fmt"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/internal/presentation/graph"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <document> [answers]",
		Short: "Export the document and rule dependencies as a Mermaid diagram",
		Long:  `Outputs a Mermaid diagram (graph TD) of the question tree with dotted edges for rule references. With answers, hidden and invalid questions are highlighted.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var answersPath string
			if len(args) > 1 {
				answersPath = args[1]
			}
			doc, answers, err := loadInputs(args[0], answersPath)
			if err != nil {
				return err
			}
			prog, err := compiler.Compile(doc)
			if err != nil {
				return err
			}

			var overlay *graph.Overlay
			if answersPath != "" {
				eng, err := newEngine(cmd)
				if err != nil {
					return err
				}
				view, err := eng.Evaluate(cmd.Context(), doc, answers)
				if err != nil {
					return err
				}
				overlay = graph.OverlayFromView(view)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(prog, overlay))
			return err
		},
	}
}
