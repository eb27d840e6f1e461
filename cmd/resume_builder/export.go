package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/workspace"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume as PDF, Word document or plain text",
	Long: `Exports the live resume, or a saved version with --version, to a file named
{Full_Name}_Resume.{pdf|doc|txt}. PDF export needs a Chrome or Chromium binary
(see chrome_path / CHROME_PATH).`,
	RunE: runExport,
}

var (
	exportFormat    string
	exportVersionID string
	exportOutputDir string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Export format: pdf, doc or txt")
	exportCmd.Flags().StringVar(&exportVersionID, "version", "", "Export a saved version instead of the live resume")
	exportCmd.Flags().StringVarP(&exportOutputDir, "out-dir", "o", ".", "Directory to write the file to")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
		var file *export.File
		if exportVersionID != "" {
			file, err = ws.ExportVersion(cmd.Context(), exportVersionID, format)
		} else {
			file, err = ws.ExportResume(cmd.Context(), format)
		}
		if err != nil {
			return err
		}

		path := filepath.Join(exportOutputDir, file.Name)
		if err := writeOutput(cmd.OutOrStdout(), path, file.Data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d bytes)\n", path, len(file.Data))
		return nil
	})
}
