package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/workspace"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show how complete the live resume is",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
			observability.NewPrinter(cmd.OutOrStdout()).PrintProgress(ws.Session.Progress())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
}
