package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/workspace"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume as a standalone HTML page",
	Long: `Renders the live resume, or a resume JSON file given with --in, through one of
the templates (professional, modern, creative, minimal). Without --template the
current template is used.`,
	RunE: runRender,
}

var (
	renderInputFile  string
	renderTemplate   string
	renderOutputFile string
)

func init() {
	renderCmd.Flags().StringVarP(&renderInputFile, "in", "i", "", "Path to a resume JSON file (default: the live resume)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template id")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output HTML file (default: stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	var doc *types.ResumeDocument
	template := types.ParseTemplateID(renderTemplate)

	if renderInputFile != "" {
		loaded, err := readDocument(renderInputFile)
		if err != nil {
			return err
		}
		doc = loaded
	} else {
		err := withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
			doc = ws.Session.Snapshot()
			if renderTemplate == "" {
				template = ws.Session.Template()
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	html, err := rendering.Page(doc, template)
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}
	return writeOutput(cmd.OutOrStdout(), renderOutputFile, []byte(html))
}

// readDocument loads and schema-validates a resume JSON file.
func readDocument(path string) (*types.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}
	if err := schemas.ValidateDocument(data); err != nil {
		return nil, fmt.Errorf("invalid resume file %s: %w", path, err)
	}
	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse resume file: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// writeOutput writes data to path, or to out when path is empty.
func writeOutput(out io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
