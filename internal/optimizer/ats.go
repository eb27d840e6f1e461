package optimizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// passingScore is the overall score below which LocalATS reports coverage issues
const passingScore = 70

// Common strong action verbs for resume bullets (heuristic check)
var strongVerbs = map[string]bool{
	"achieved": true, "architected": true, "built": true, "created": true,
	"delivered": true, "designed": true, "developed": true, "drove": true,
	"engineered": true, "implemented": true, "improved": true, "increased": true,
	"launched": true, "led": true, "managed": true, "optimized": true,
	"reduced": true, "scaled": true, "shipped": true, "spearheaded": true,
	"transformed": true,
}

// Phrases recruiters and ATS keyword filters treat as filler
var cliches = []string{
	"team player",
	"hard worker",
	"results-driven",
	"go-getter",
	"think outside the box",
	"detail-oriented",
	"self-starter",
}

var digitPattern = regexp.MustCompile(`\d`)

var defaultRecommendations = []string{
	"Use keywords from job descriptions",
	"Keep formatting simple",
	"Include contact information",
}

// LocalATS scores a document without calling a provider. It mirrors the
// shape of CheckATS so callers can fall back to it when no key is set.
func LocalATS(doc *types.ResumeDocument) ATSReport {
	if doc == nil {
		doc = types.NewResumeDocument()
	}

	skills := len(doc.Skills)
	experiences := len(doc.Experiences)

	score := skills*5 + experiences*10 + len(doc.Education)*10
	if doc.Summary != "" {
		score += 20
	}

	contact := 50
	if doc.Personal.Email != "" {
		contact = 100
	}

	report := ATSReport{
		OverallScore: min(100, score),
		CategoryScores: CategoryScores{
			Keywords:   min(100, skills*10),
			Formatting: 90,
			Contact:    contact,
			Skills:     min(100, skills*10),
			Experience: min(100, experiences*20),
		},
		Issues:          []string{},
		Recommendations: append([]string(nil), defaultRecommendations...),
	}

	if report.OverallScore < passingScore {
		report.Issues = append(report.Issues, "Add more skills", "Include more details")
	}

	for _, exp := range doc.CompleteExperiences() {
		report.Issues = append(report.Issues, checkBullets(exp)...)
	}

	for _, phrase := range findCliches(doc) {
		report.Issues = append(report.Issues, fmt.Sprintf("Avoid the cliché %q", phrase))
	}

	return report
}

// checkBullets reports style problems in one experience description
func checkBullets(exp types.Experience) []string {
	lines := bulletLines(exp.Description)
	if len(lines) == 0 {
		return nil
	}

	var issues []string
	label := fmt.Sprintf("%s at %s", exp.Title, exp.Company)

	weak := 0
	for _, line := range lines {
		if !startsWithStrongVerb(line) {
			weak++
		}
	}
	if weak > 0 {
		issues = append(issues, fmt.Sprintf("%s: start %d of %d lines with a strong action verb", label, weak, len(lines)))
	}

	if !hasQuantifiedImpact(exp.Description) {
		issues = append(issues, fmt.Sprintf("%s: quantify achievements with numbers or percentages", label))
	}

	return issues
}

// bulletLines splits a description into non-empty lines without bullet markers
func bulletLines(description string) []string {
	var lines []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "•-*· ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// startsWithStrongVerb checks if text starts with a strong action verb
func startsWithStrongVerb(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return false
	}

	first := strings.TrimRight(words[0], ".,!?;:")
	if strongVerbs[first] {
		return true
	}

	// Past-tense verbs are usually action verbs
	return strings.HasSuffix(first, "ed") && len(first) > 3
}

// hasQuantifiedImpact checks if text contains numbers or metrics
func hasQuantifiedImpact(text string) bool {
	return digitPattern.MatchString(text) || strings.Contains(text, "%")
}

// findCliches returns each cliché found in the summary or any description, once
func findCliches(doc *types.ResumeDocument) []string {
	parts := []string{doc.Summary}
	for _, exp := range doc.Experiences {
		parts = append(parts, exp.Description)
	}
	text := strings.ToLower(strings.Join(parts, "\n"))

	var found []string
	for _, phrase := range cliches {
		if strings.Contains(text, phrase) {
			found = append(found, phrase)
		}
	}
	return found
}
