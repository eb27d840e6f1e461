package types

// Bundle is the bulk export/import format.
// ExportDate is a pointer so a missing field can be told apart from a zero time.
type Bundle struct {
	CurrentResume   *ResumeDocument  `json:"currentResume"`
	CurrentTemplate TemplateID       `json:"currentTemplate"`
	Versions        []*ResumeVersion `json:"versions"`
	CoverLetters    []*CoverLetter   `json:"coverLetters"`
	Applications    []*Application   `json:"applications"`
	ExportDate      *string          `json:"exportDate"`
}
