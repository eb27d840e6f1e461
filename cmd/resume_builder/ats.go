package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/workspace"
)

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Score the live resume for applicant tracking systems",
	Long: `Scores the live resume for ATS compatibility. With an API key the provider
writes the report; without one a local heuristic is used.`,
	Args: cobra.NoArgs,
	RunE: runATS,
}

func init() {
	rootCmd.AddCommand(atsCmd)
}

func runATS(cmd *cobra.Command, _ []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
		result, err := ws.CheckATS(cmd.Context())
		if err != nil {
			return err
		}
		if !result.OK() {
			fmt.Fprintln(cmd.OutOrStdout(), "Could not parse the report; raw response follows:")
			fmt.Fprintln(cmd.OutOrStdout(), result.Raw)
			return nil
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintATSReport(result.Value)
		return nil
	})
}
