package main

import (
	"fmt"

	"github.com/aretw0/surveykit/internal/adapters/file"
	"github.com/aretw0/surveykit/internal/validator"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document>",
		Short: "Check a document for consistency",
		Long:  `Reports rule syntax errors, duplicate ids, inconsistent attributes, references to unknown questions and rule dependency cycles.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine(cmd)
			if err != nil {
				return err
			}
			doc, err := file.ReadDocument(args[0])
			if err != nil {
				return err
			}
			if err := eng.Validate(doc); err != nil {
				for _, finding := range validator.Findings(err) {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", finding)
				}
				return fmt.Errorf("validation failed: %d finding(s)", len(validator.Findings(err)))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Document %s is valid! ✅\n", doc.ID)
			return nil
		},
	}
}
