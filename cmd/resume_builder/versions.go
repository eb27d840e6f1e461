package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/workspace"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Save, list, compare and load resume versions",
}

var versionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved versions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runVersionsList,
}

var versionsSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save the live resume as a named version",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionsSave,
}

var versionsCompareCmd = &cobra.Command{
	Use:   "compare [version-a] [version-b]",
	Short: "Show the differences between two versions",
	Args:  cobra.ExactArgs(2),
	RunE:  runVersionsCompare,
}

var versionsLoadCmd = &cobra.Command{
	Use:   "load [version]",
	Short: "Replace the live resume with a saved version",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionsLoad,
}

var (
	versionDescription string
)

func init() {
	versionsSaveCmd.Flags().StringVarP(&versionDescription, "description", "d", "", "Version description")
	versionsCmd.AddCommand(versionsListCmd, versionsSaveCmd, versionsCompareCmd, versionsLoadCmd)
	rootCmd.AddCommand(versionsCmd)
}

func runVersionsList(cmd *cobra.Command, _ []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
		observability.NewPrinter(cmd.OutOrStdout()).PrintVersions(ws.Versions.Summaries())
		return nil
	})
}

func runVersionsSave(cmd *cobra.Command, args []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
		version, err := ws.Versions.SaveVersion(cmd.Context(), args[0], versionDescription)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved version %q (%s)\n", version.Name, version.ID)
		return nil
	})
}

func runVersionsCompare(cmd *cobra.Command, args []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
		comparison := ws.Versions.CompareVersions(args[0], args[1])
		if comparison == nil {
			return fmt.Errorf("version not found: %s or %s", args[0], args[1])
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintComparison(comparison)
		return nil
	})
}

func runVersionsLoad(cmd *cobra.Command, args []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
		if !ws.Versions.LoadVersion(args[0]) {
			return fmt.Errorf("version not found: %s", args[0])
		}
		if err := ws.SaveProgress(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded version %s\n", args[0])
		return nil
	})
}
