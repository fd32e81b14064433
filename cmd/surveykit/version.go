package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/surveykit"
	"github.com/aretw0/surveykit/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of surveykit",
		Run: func(cmd *cobra.Command, args []string) {
			version := strings.TrimSpace(surveykit.Version)
			if tui.IsTerminal(cmd.OutOrStdout()) {
				tui.PrintBanner(cmd.OutOrStdout(), version)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "surveykit version %s\n", version)
		},
	}
}
