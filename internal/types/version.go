package types

import "time"

// ResumeVersion is a named snapshot of a document and its template
type ResumeVersion struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Data        *ResumeDocument `json:"data"`
	Template    TemplateID      `json:"template"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Clone returns a deep copy of the version, including its document.
func (v *ResumeVersion) Clone() *ResumeVersion {
	if v == nil {
		return nil
	}
	out := *v
	out.Data = v.Data.Clone()
	return &out
}

// VersionSummary is the listing view of a version
type VersionSummary struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Template    TemplateID `json:"template"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Experiences int        `json:"experiences"`
	Education   int        `json:"education"`
	Skills      int        `json:"skills"`
}

// Summary returns the listing view of the version.
func (v *ResumeVersion) Summary() VersionSummary {
	s := VersionSummary{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Template:    v.Template,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
	if v.Data != nil {
		s.Experiences = len(v.Data.Experiences)
		s.Education = len(v.Data.Education)
		s.Skills = len(v.Data.Skills)
	}
	return s
}

// Difference is one field-level change between two versions.
// Section is personal, summary, skills, experiences or education.
type Difference struct {
	Section string   `json:"section"`
	Field   string   `json:"field,omitempty"`
	EntryID int      `json:"entryId,omitempty"`
	Value1  string   `json:"value1,omitempty"`
	Value2  string   `json:"value2,omitempty"`
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// Comparison is the result of comparing two versions
type Comparison struct {
	Version1    VersionSummary `json:"version1"`
	Version2    VersionSummary `json:"version2"`
	Differences []Difference   `json:"differences"`
}
