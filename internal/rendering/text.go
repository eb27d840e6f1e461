package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

var rule = strings.Repeat("-", 50)

// PlainText renders the document as plain text with uppercase section
// headings, each followed by a 50-dash rule.
func PlainText(doc *types.ResumeDocument) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	p := doc.Personal

	if p.FullName != "" {
		b.WriteString(p.FullName + "\n")
	}
	if contact := nonEmpty(p.Email, p.Phone, p.Location); len(contact) > 0 {
		b.WriteString(strings.Join(contact, " | ") + "\n")
	}
	for _, link := range nonEmpty(p.LinkedIn, p.Website) {
		b.WriteString(link + "\n")
	}
	b.WriteString("\n")

	if summary := strings.TrimSpace(doc.Summary); summary != "" {
		heading(&b, "PROFESSIONAL SUMMARY")
		b.WriteString(summary + "\n\n")
	}

	if exps := doc.CompleteExperiences(); len(exps) > 0 {
		heading(&b, "WORK EXPERIENCE")
		for _, e := range exps {
			b.WriteString(e.Title + "\n")
			b.WriteString(e.Company)
			if e.Location != "" {
				b.WriteString(" - " + e.Location)
			}
			b.WriteString("\n")
			if dates := DateRange(e.StartDate, e.EndDate, e.Current); dates != "" {
				b.WriteString(dates + "\n")
			}
			if e.Description != "" {
				b.WriteString(e.Description + "\n")
			}
			b.WriteString("\n")
		}
	}

	if edus := doc.CompleteEducation(); len(edus) > 0 {
		heading(&b, "EDUCATION")
		for _, e := range edus {
			b.WriteString(e.Degree + "\n")
			b.WriteString(e.School)
			if e.Location != "" {
				b.WriteString(" - " + e.Location)
			}
			b.WriteString("\n")
			if date := FormatDate(e.Date); date != "" {
				b.WriteString(date + "\n")
			}
			if e.GPA != "" {
				b.WriteString("GPA: " + e.GPA + "\n")
			}
			if e.Details != "" {
				b.WriteString(e.Details + "\n")
			}
			b.WriteString("\n")
		}
	}

	if len(doc.Skills) > 0 {
		heading(&b, "SKILLS")
		b.WriteString(strings.Join(doc.Skills, ", ") + "\n")
	}

	return b.String()
}

func heading(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(rule + "\n")
}
