package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/workspace"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import all resume data",
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every collection to one JSON bundle",
	Args:  cobra.NoArgs,
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Restore a JSON bundle",
	Long: `Restores a bundle written by "backup export". Only the collections present in
the bundle are replaced. Nothing changes if the bundle is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupImport,
}

var (
	backupOutputFile string
)

func init() {
	backupExportCmd.Flags().StringVarP(&backupOutputFile, "out", "o", "", "Output file (default: resume-builder-backup-{date}.json)")
	backupCmd.AddCommand(backupExportCmd, backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupExport(cmd *cobra.Command, _ []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
		data, name, err := ws.ExportBackup()
		if err != nil {
			return err
		}
		path := backupOutputFile
		if path == "" {
			path = name
		}
		if err := writeOutput(cmd.OutOrStdout(), path, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
		return nil
	})
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
		if err := ws.ImportBackup(cmd.Context(), data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d versions, %d cover letters, %d applications\n",
			len(ws.Versions.List()), len(ws.Letters.List()), len(ws.Tracker.List()))
		return nil
	})
}
