package main

import (
	"fmt"

	"github.com/aretw0/surveykit/internal/adapters/file"
	"github.com/aretw0/surveykit/pkg/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newContractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contract <document>",
		Short: "Print the answer contract of a document",
		Long: `Prints the expected answer shape of every question (text, number, option, [elem] or matrix<cell>).
The output is YAML, or JSON with --format json, and can be saved for use with the check command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatFlag(cmd)
			if err != nil {
				return err
			}
			doc, err := file.ReadDocument(args[0])
			if err != nil {
				return err
			}
			contract := schema.ForDocument(doc)

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), contract)
			}
			data, err := yaml.Marshal(contract)
			if err != nil {
				return fmt.Errorf("failed to encode contract: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <contract> <answers>",
		Short: "Check an answer set against a saved answer contract",
		Long:  `Validates answer shapes against a contract produced by the contract command, without the document. With --field only the named answers are checked.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := file.ReadContract(args[0])
			if err != nil {
				return err
			}
			answers, err := file.ReadAnswers(args[1])
			if err != nil {
				return err
			}

			fields, _ := cmd.Flags().GetStringSlice("field")
			if len(fields) > 0 {
				err = schema.ValidateFields(contract, answers, fields...)
			} else {
				err = schema.Validate(contract, answers)
			}
			if err != nil {
				problems := schema.ValidationErrors(err)
				for _, p := range problems {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", p)
				}
				return fmt.Errorf("answers do not match the contract: %d problem(s)", len(problems))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Answers match the contract! ✅")
			return nil
		},
	}
	cmd.Flags().StringSlice("field", nil, "Only check these question ids")
	return cmd
}
