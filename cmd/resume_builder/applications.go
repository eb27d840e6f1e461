package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/workspace"
)

var applicationsCmd = &cobra.Command{
	Use:     "applications",
	Aliases: []string{"apps"},
	Short:   "Track job applications",
}

var applicationsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Track a new job application",
	Args:  cobra.NoArgs,
	RunE:  runApplicationsAdd,
}

var applicationsFollowUpsCmd = &cobra.Command{
	Use:   "follow-ups",
	Short: "List applications due for a follow-up",
	Args:  cobra.NoArgs,
	RunE:  runApplicationsFollowUps,
}

var (
	appCompany  string
	appPosition string
	appURL      string
	appStatus   string
	appFollowUp string
	appNotes    string
)

func init() {
	applicationsAddCmd.Flags().StringVar(&appCompany, "company", "", "Company name (required)")
	applicationsAddCmd.Flags().StringVar(&appPosition, "position", "", "Position title (required)")
	applicationsAddCmd.Flags().StringVar(&appURL, "url", "", "Job posting URL")
	applicationsAddCmd.Flags().StringVar(&appStatus, "status", "", "Status: saved, applied, interviewing, offer, rejected or withdrawn (default applied)")
	applicationsAddCmd.Flags().StringVar(&appFollowUp, "follow-up", "", "Follow-up date (YYYY-MM-DD)")
	applicationsAddCmd.Flags().StringVar(&appNotes, "notes", "", "Free-form notes")
	_ = applicationsAddCmd.MarkFlagRequired("company")
	_ = applicationsAddCmd.MarkFlagRequired("position")

	applicationsCmd.AddCommand(applicationsAddCmd, applicationsFollowUpsCmd)
	rootCmd.AddCommand(applicationsCmd)
}

func runApplicationsAdd(cmd *cobra.Command, _ []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
		app, err := ws.Tracker.Add(cmd.Context(), types.Application{
			Company:      appCompany,
			Position:     appPosition,
			URL:          appURL,
			Status:       types.ApplicationStatus(appStatus),
			AppliedDate:  time.Now().Format(time.DateOnly),
			FollowUpDate: appFollowUp,
			Notes:        appNotes,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tracking %s at %s (%s)\n", app.Position, app.Company, app.ID)
		return nil
	})
}

func runApplicationsFollowUps(cmd *cobra.Command, _ []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace.Workspace) error {
		now := time.Now()
		observability.NewPrinter(cmd.OutOrStdout()).PrintFollowUps(ws.Tracker.NeedingFollowUp(now), now)
		return nil
	})
}
