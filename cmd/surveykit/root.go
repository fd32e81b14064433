package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// errNotSubmittable makes evaluate exit with status 2.
var errNotSubmittable = errors.New("answers are not submittable")

// newRootCmd builds the command tree. A fresh tree per call keeps flag state
// from leaking between invocations in tests.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "surveykit",
		Short:         "surveykit evaluates and grades survey documents",
		Long:          `surveykit checks survey and exam documents, evaluates their rules against answer sets and scores exam answers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("format", "text", "Output format: text or json")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject answers for unknown questions or with the wrong shape")

	rootCmd.AddCommand(
		newValidateCmd(),
		newEvaluateCmd(),
		newScoreCmd(),
		newGraphCmd(),
		newContractCmd(),
		newCheckCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI and exits with the matching status code.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNotSubmittable):
		return 2
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
}
