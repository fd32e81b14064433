package main

import (
	"github.com/spf13/cobra"
)

func newEvaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <document> [answers]",
		Short: "Evaluate a document against an answer set",
		Long:  `Derives visibility, required-ness, validation findings and computed values of every question. Exits with status 2 when the answers are not submittable.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatFlag(cmd)
			if err != nil {
				return err
			}
			eng, err := newEngine(cmd)
			if err != nil {
				return err
			}
			var answersPath string
			if len(args) > 1 {
				answersPath = args[1]
			}
			doc, answers, err := loadInputs(args[0], answersPath)
			if err != nil {
				return err
			}

			view, err := eng.Evaluate(cmd.Context(), doc, answers)
			if err != nil {
				return err
			}

			if format == formatJSON {
				err = writeJSON(cmd.OutOrStdout(), view)
			} else {
				err = renderer(cmd).RenderView(doc, view)
			}
			if err != nil {
				return err
			}
			if !view.Submittable {
				return errNotSubmittable
			}
			return nil
		},
	}
}
