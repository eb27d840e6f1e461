// Package observability provides formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/optimizer"
	"github.com/jonathan/resume-builder/internal/tracker"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the number of cells in a progress bar
	barWidth = 40
)

// Printer handles formatted CLI output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending in "..." when cut
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintProgress outputs the completion percentage as a bar.
func (p *Printer) PrintProgress(percent int) {
	percent = max(0, min(100, percent))
	filled := percent * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	p.printBox("RESUME PROGRESS", fmt.Sprintf("%s %3d%%", bar, percent))
}

// PrintVersions outputs saved versions, newest first.
func (p *Printer) PrintVersions(summaries []types.VersionSummary) {
	if len(summaries) == 0 {
		p.printBox("SAVED VERSIONS", "No versions saved yet")
		return
	}

	var sb strings.Builder
	for i, v := range summaries {
		sb.WriteString(fmt.Sprintf("%s  [%s]\n", v.Name, v.Template))
		sb.WriteString(fmt.Sprintf("  id: %s\n", v.ID))
		if v.Description != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", v.Description))
		}
		sb.WriteString(fmt.Sprintf("  %d experience, %d education, %d skills, saved %s\n",
			v.Experiences, v.Education, v.Skills, v.CreatedAt.Format("2006-01-02 15:04")))
		if i < len(summaries)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SAVED VERSIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComparison outputs the differences between two versions.
func (p *Printer) PrintComparison(c *types.Comparison) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("A: %s\n", c.Version1.Name))
	sb.WriteString(fmt.Sprintf("B: %s\n\n", c.Version2.Name))

	if len(c.Differences) == 0 {
		sb.WriteString("No differences")
		p.printBox("VERSION COMPARISON", sb.String())
		return
	}

	for _, d := range c.Differences {
		label := d.Section
		if d.EntryID != 0 {
			label = fmt.Sprintf("%s #%d", label, d.EntryID)
		}
		if d.Field != "" {
			label += "." + d.Field
		}
		sb.WriteString(fmt.Sprintf("• %s\n", label))
		if len(d.Added) > 0 {
			sb.WriteString(fmt.Sprintf("  + %s\n", strings.Join(d.Added, ", ")))
		}
		if len(d.Removed) > 0 {
			sb.WriteString(fmt.Sprintf("  - %s\n", strings.Join(d.Removed, ", ")))
		}
		if len(d.Added) == 0 && len(d.Removed) == 0 {
			sb.WriteString(fmt.Sprintf("  %q → %q\n", d.Value1, d.Value2))
		}
	}

	p.printBox("VERSION COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATSReport outputs scores, issues and recommendations.
func (p *Printer) PrintATSReport(report optimizer.ATSReport) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:     %d/100\n\n", report.OverallScore))

	scores := report.CategoryScores
	sb.WriteString(fmt.Sprintf("Keywords:    %d\n", scores.Keywords))
	sb.WriteString(fmt.Sprintf("Formatting:  %d\n", scores.Formatting))
	sb.WriteString(fmt.Sprintf("Contact:     %d\n", scores.Contact))
	sb.WriteString(fmt.Sprintf("Skills:      %d\n", scores.Skills))
	sb.WriteString(fmt.Sprintf("Experience:  %d\n", scores.Experience))

	writeList(&sb, "Issues", "⚠", report.Issues)
	writeList(&sb, "Recommendations", "•", report.Recommendations)

	p.printBox("ATS COMPATIBILITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFollowUps outputs applications that need a follow-up, marking overdue ones.
func (p *Printer) PrintFollowUps(apps []*types.Application, now time.Time) {
	if len(apps) == 0 {
		p.printBox("FOLLOW-UP REMINDERS", "✅ Nothing to follow up on")
		return
	}

	var sb strings.Builder
	for _, app := range apps {
		marker := " "
		if tracker.IsOverdue(app, now) {
			marker = "!"
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s at %s\n", marker, app.FollowUpDate, app.Position, app.Company))
	}

	p.printBox("FOLLOW-UP REMINDERS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title, bullet string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  %s %s\n", bullet, items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
