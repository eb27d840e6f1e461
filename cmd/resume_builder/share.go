package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/share"
	"github.com/jonathan/resume-builder/internal/workspace"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Create or open shareable resume links",
}

var shareEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Print a link that carries the live resume",
	Args:  cobra.NoArgs,
	RunE:  runShareEncode,
}

var shareDecodeCmd = &cobra.Command{
	Use:   "decode [link-or-token]",
	Short: "Decode a shared link and print the resume JSON",
	Long: `Decodes a shared link or bare token and prints the resume as JSON. With
--load the decoded resume replaces the live one and is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runShareDecode,
}

var (
	shareLoad bool
)

func init() {
	shareDecodeCmd.Flags().BoolVar(&shareLoad, "load", false, "Replace the live resume with the decoded one")
	shareCmd.AddCommand(shareEncodeCmd, shareDecodeCmd)
	rootCmd.AddCommand(shareCmd)
}

func runShareEncode(cmd *cobra.Command, _ []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
		link, err := ws.ShareLink()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	})
}

func runShareDecode(cmd *cobra.Command, args []string) error {
	if !shareLoad {
		doc, err := share.Load(args[0])
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode resume: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
		doc, err := ws.LoadShared(args[0])
		if err != nil {
			return err
		}
		if err := ws.SaveProgress(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded shared resume for %q\n", doc.Personal.FullName)
		return nil
	})
}
