package optimizer

import "github.com/jonathan/resume-builder/internal/llm"

// TailoringAnalysis is the structured answer to TailorForJob
type TailoringAnalysis struct {
	Keywords        []string `json:"keywords"`
	EmphasizeSkills []string `json:"emphasizeSkills"`
	AddSkills       []string `json:"addSkills"`
	ExperienceFocus []string `json:"experienceFocus"`
	SummaryTips     []string `json:"summaryTips"`
}

// SkillMatch is a skill the candidate already has
type SkillMatch struct {
	Skill     string `json:"skill"`
	Relevance int    `json:"relevance"`
}

// MissingSkill is a skill the job asks for that the candidate lacks
type MissingSkill struct {
	Skill    string `json:"skill"`
	Priority string `json:"priority"`
}

// RelatedSkill pairs an existing skill with a requested one it can stand in for
type RelatedSkill struct {
	Have      string `json:"have"`
	Highlight string `json:"highlight"`
}

// SkillsGapAnalysis is the structured answer to AnalyzeSkillsGap
type SkillsGapAnalysis struct {
	MatchingSkills  []SkillMatch   `json:"matchingSkills"`
	MissingSkills   []MissingSkill `json:"missingSkills"`
	RelatedSkills   []RelatedSkill `json:"relatedSkills"`
	Recommendations []string       `json:"recommendations"`
}

// CategoryScores breaks an ATS score down by area, each 0-100
type CategoryScores struct {
	Keywords   int `json:"keywords"`
	Formatting int `json:"formatting"`
	Contact    int `json:"contact"`
	Skills     int `json:"skills"`
	Experience int `json:"experience"`
}

// ATSReport is the structured answer to CheckATS and the output of LocalATS
type ATSReport struct {
	OverallScore    int            `json:"overallScore"`
	CategoryScores  CategoryScores `json:"categoryScores"`
	Issues          []string       `json:"issues"`
	Recommendations []string       `json:"recommendations"`
}

var tailoringSchema = llm.ExtractionSchema{
	Name: "TailoringAnalysis",
	Fields: []llm.SchemaField{
		{Name: "keywords", Example: `["keyword1", "keyword2"]`},
		{Name: "emphasizeSkills", Example: `["skill1", "skill2"]`},
		{Name: "addSkills", Example: `["skill1", "skill2"]`},
		{Name: "experienceFocus", Example: `["point1", "point2"]`},
		{Name: "summaryTips", Example: `["tip1", "tip2"]`},
	},
}

var skillsGapSchema = llm.ExtractionSchema{
	Name: "SkillsGapAnalysis",
	Fields: []llm.SchemaField{
		{Name: "matchingSkills", Example: `[{"skill": "name", "relevance": 9}]`},
		{Name: "missingSkills", Example: `[{"skill": "name", "priority": "High"}]`},
		{Name: "relatedSkills", Example: `[{"have": "skill1", "highlight": "skill2"}]`},
		{Name: "recommendations", Example: `["recommendation1"]`},
	},
}

var atsSchema = llm.ExtractionSchema{
	Name: "ATSReport",
	Fields: []llm.SchemaField{
		{Name: "overallScore", Example: `85`},
		{Name: "categoryScores", Example: `{"keywords": 80, "formatting": 90, "contact": 100, "skills": 70, "experience": 85}`},
		{Name: "issues", Example: `["issue1", "issue2"]`},
		{Name: "recommendations", Example: `["rec1", "rec2"]`},
	},
}
