package main

import (
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <document> <answers>",
		Short: "Score the exam questions of a document",
		Long:  `Grades every exam question and prints per-question and total scores. Questions in manual mode stay pending unless a score is given with --manual.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatFlag(cmd)
			if err != nil {
				return err
			}
			values, _ := cmd.Flags().GetStringArray("manual")
			manual, err := parseManual(values)
			if err != nil {
				return err
			}
			eng, err := newEngine(cmd)
			if err != nil {
				return err
			}
			doc, answers, err := loadInputs(args[0], args[1])
			if err != nil {
				return err
			}

			report, err := eng.Score(cmd.Context(), doc, answers, manual)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return renderer(cmd).RenderReport(report)
		},
	}
	cmd.Flags().StringArray("manual", nil, "Human score for a manual question, as id=score (repeatable)")
	return cmd
}
