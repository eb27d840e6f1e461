// Package optimizer turns resume content into text-generation prompts and
// interprets the responses. Whole-text operations return the provider's text
// unchanged; structured operations return a Result that degrades to the raw
// text when the response is not the expected JSON.
package optimizer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	promptFile = "optimizer.json"

	notProvided = "Not provided"

	// contextSkills is how many skills are quoted in prompts that summarize the candidate
	contextSkills = 5
)

// Optimizer runs resume prompts against an llm.Client
type Optimizer struct {
	client llm.Client
	logger *zap.Logger
}

// New creates an Optimizer. A nil client makes every call fail with an
// APICallError; a nil logger discards logs.
func New(client llm.Client, logger *zap.Logger) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{client: client, logger: logger}
}

// Available reports whether a client is configured.
func (o *Optimizer) Available() bool {
	return o != nil && o.client != nil
}

// OptimizeSummary rewrites a professional summary using the document for context.
func (o *Optimizer) OptimizeSummary(ctx context.Context, summary string, doc *types.ResumeDocument) (string, error) {
	if strings.TrimSpace(summary) == "" {
		return "", &ValidationError{Field: "summary", Message: "summary is required"}
	}

	var lines []string
	if doc != nil && len(doc.Experiences) > 0 {
		recent := doc.Experiences[0]
		lines = append(lines, fmt.Sprintf("Recent Experience: %s at %s", recent.Title, recent.Company))
	}
	if doc != nil && len(doc.Skills) > 0 {
		lines = append(lines, "Key Skills: "+strings.Join(firstN(doc.Skills, contextSkills), ", "))
	}

	return o.generate(ctx, "optimize-summary", llm.TierLite, map[string]string{
		"Summary": summary,
		"Context": strings.Join(lines, "\n"),
	})
}

// OptimizeDescription rewrites an experience description as bullet points.
func (o *Optimizer) OptimizeDescription(ctx context.Context, exp types.Experience) (string, error) {
	if strings.TrimSpace(exp.Description) == "" {
		return "", &ValidationError{Field: "description", Message: "description is required"}
	}
	return o.generate(ctx, "optimize-description", llm.TierLite, map[string]string{
		"Title":       exp.Title,
		"Company":     exp.Company,
		"Description": exp.Description,
	})
}

// SuggestActionVerbs replaces weak verbs in text with stronger ones.
func (o *Optimizer) SuggestActionVerbs(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{Field: "text", Message: "text is required"}
	}
	return o.generate(ctx, "action-verbs", llm.TierLite, map[string]string{"Text": text})
}

// QuantifyAchievements rewrites a description with [METRIC] placeholders.
func (o *Optimizer) QuantifyAchievements(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", &ValidationError{Field: "description", Message: "description is required"}
	}
	return o.generate(ctx, "quantify-achievements", llm.TierLite, map[string]string{"Description": description})
}

// GenerateCoverLetter drafts a cover letter for the document and job.
func (o *Optimizer) GenerateCoverLetter(ctx context.Context, doc *types.ResumeDocument, jobDescription, companyName string) (string, error) {
	if strings.TrimSpace(companyName) == "" {
		return "", &ValidationError{Field: "companyName", Message: "company name is required"}
	}
	if doc == nil {
		doc = types.NewResumeDocument()
	}

	title, company := recentRole(doc, "")
	return o.generate(ctx, "cover-letter", llm.TierAdvanced, map[string]string{
		"JobDescription": jobDescription,
		"Company":        companyName,
		"Name":           doc.Personal.FullName,
		"Summary":        doc.Summary,
		"RecentTitle":    title,
		"RecentCompany":  company,
		"Skills":         strings.Join(firstN(doc.Skills, contextSkills), ", "),
	})
}

// TailorForJob suggests keywords and emphasis for a job description.
func (o *Optimizer) TailorForJob(ctx context.Context, doc *types.ResumeDocument, jobDescription string) (Result[TailoringAnalysis], error) {
	if strings.TrimSpace(jobDescription) == "" {
		return Result[TailoringAnalysis]{}, &ValidationError{Field: "jobDescription", Message: "job description is required"}
	}
	if doc == nil {
		doc = types.NewResumeDocument()
	}

	title, company := recentRole(doc, notProvided)
	raw, err := o.generateStructured(ctx, "tailor-for-job", tailoringSchema, llm.TierAdvanced, map[string]string{
		"JobDescription": jobDescription,
		"Summary":        orDefault(doc.Summary, notProvided),
		"Skills":         orDefault(strings.Join(doc.Skills, ", "), notProvided),
		"RecentTitle":    title,
		"RecentCompany":  company,
	})
	if err != nil {
		return Result[TailoringAnalysis]{}, err
	}
	return logParse(o.logger, "tailor-for-job", parseResult[TailoringAnalysis](raw)), nil
}

// AnalyzeSkillsGap compares skills against a job description.
func (o *Optimizer) AnalyzeSkillsGap(ctx context.Context, skills []string, jobDescription string) (Result[SkillsGapAnalysis], error) {
	if strings.TrimSpace(jobDescription) == "" {
		return Result[SkillsGapAnalysis]{}, &ValidationError{Field: "jobDescription", Message: "job description is required"}
	}

	raw, err := o.generateStructured(ctx, "skills-gap", skillsGapSchema, llm.TierStandard, map[string]string{
		"JobDescription": jobDescription,
		"Skills":         strings.Join(skills, ", "),
	})
	if err != nil {
		return Result[SkillsGapAnalysis]{}, err
	}
	return logParse(o.logger, "skills-gap", parseResult[SkillsGapAnalysis](raw)), nil
}

// CheckATS asks the provider for an ATS compatibility report.
func (o *Optimizer) CheckATS(ctx context.Context, doc *types.ResumeDocument) (Result[ATSReport], error) {
	if doc == nil {
		doc = types.NewResumeDocument()
	}

	raw, err := o.generateStructured(ctx, "ats-check", atsSchema, llm.TierAdvanced, map[string]string{
		"Name":            orDefault(doc.Personal.FullName, notProvided),
		"Email":           orDefault(doc.Personal.Email, notProvided),
		"Summary":         orDefault(doc.Summary, notProvided),
		"ExperienceCount": strconv.Itoa(len(doc.Experiences)),
		"EducationCount":  strconv.Itoa(len(doc.Education)),
		"SkillsCount":     strconv.Itoa(len(doc.Skills)),
		"Skills":          orDefault(strings.Join(doc.Skills, ", "), "None"),
	})
	if err != nil {
		return Result[ATSReport]{}, err
	}
	return logParse(o.logger, "ats-check", parseResult[ATSReport](raw)), nil
}

func (o *Optimizer) generate(ctx context.Context, key string, tier llm.ModelTier, data map[string]string) (string, error) {
	prompt, err := prompts.Render(promptFile, key, data)
	if err != nil {
		return "", fmt.Errorf("failed to build %s prompt: %w", key, err)
	}
	return o.call(ctx, key, prompt, tier, false)
}

func (o *Optimizer) generateStructured(ctx context.Context, key string, schema llm.ExtractionSchema, tier llm.ModelTier, data map[string]string) (string, error) {
	instructions, err := prompts.Render(promptFile, key, data)
	if err != nil {
		return "", fmt.Errorf("failed to build %s prompt: %w", key, err)
	}
	return o.call(ctx, key, llm.BuildExtractionPrompt(instructions, schema), tier, true)
}

// call sends prompt to the client. Structured operations ask for a JSON reply;
// the text comes back as is so an unparseable reply can still be shown.
func (o *Optimizer) call(ctx context.Context, operation, prompt string, tier llm.ModelTier, structured bool) (string, error) {
	if !o.Available() {
		return "", &APICallError{Message: "API key not set"}
	}
	generate := o.client.GenerateContent
	if structured {
		generate = o.client.GenerateJSON
	}

	o.logger.Debug("calling text generation",
		zap.String("operation", operation),
		zap.String("model", o.client.GetModel(tier)),
		zap.Int("prompt_chars", len(prompt)),
	)

	text, err := generate(ctx, prompt, tier)
	if err != nil {
		o.logger.Warn("text generation failed", zap.String("operation", operation), zap.Error(err))
		return "", &APICallError{Message: fmt.Sprintf("%s request failed", operation), Cause: err}
	}
	return text, nil
}

func logParse[T any](logger *zap.Logger, operation string, result Result[T]) Result[T] {
	if !result.OK() {
		logger.Info("structured response was not valid JSON",
			zap.String("operation", operation),
			zap.Int("response_chars", len(result.Raw)),
		)
	}
	return result
}

func recentRole(doc *types.ResumeDocument, fallback string) (string, string) {
	if len(doc.Experiences) == 0 {
		return fallback, fallback
	}
	recent := doc.Experiences[0]
	return orDefault(recent.Title, fallback), orDefault(recent.Company, fallback)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
