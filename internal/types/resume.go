// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
)

// ResumeDocument is the root resume entity edited by a session
type ResumeDocument struct {
	Personal    Personal     `json:"personal"`
	Summary     string       `json:"summary"`
	Experiences []Experience `json:"experiences"`
	Education   []Education  `json:"education"`
	Skills      []string     `json:"skills"`

	// Reserved sections. Persisted and copied, not rendered.
	Certifications []json.RawMessage `json:"certifications"`
	Languages      []json.RawMessage `json:"languages"`
	Projects       []json.RawMessage `json:"projects"`
}

// Personal holds contact details. FullName gates export and generation.
type Personal struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
}

// Experience is a single work history entry
type Experience struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education is a single education entry
type Education struct {
	ID       int    `json:"id"`
	Degree   string `json:"degree"`
	School   string `json:"school"`
	Location string `json:"location"`
	Date     string `json:"date"`
	GPA      string `json:"gpa"`
	Details  string `json:"details"`
}

// PersonalFields lists the settable personal field names in display order.
var PersonalFields = []string{"fullName", "email", "phone", "location", "linkedin", "website"}

// NewResumeDocument returns an empty document with non-nil collections.
func NewResumeDocument() *ResumeDocument {
	return &ResumeDocument{
		Experiences:    []Experience{},
		Education:      []Education{},
		Skills:         []string{},
		Certifications: []json.RawMessage{},
		Languages:      []json.RawMessage{},
		Projects:       []json.RawMessage{},
	}
}

// Clone returns a deep copy of the document. No slice is shared with the receiver.
func (d *ResumeDocument) Clone() *ResumeDocument {
	if d == nil {
		return nil
	}
	out := &ResumeDocument{
		Personal:       d.Personal,
		Summary:        d.Summary,
		Experiences:    append([]Experience{}, d.Experiences...),
		Education:      append([]Education{}, d.Education...),
		Skills:         append([]string{}, d.Skills...),
		Certifications: cloneRaw(d.Certifications),
		Languages:      cloneRaw(d.Languages),
		Projects:       cloneRaw(d.Projects),
	}
	return out
}

func cloneRaw(in []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(in))
	for _, m := range in {
		out = append(out, append(json.RawMessage(nil), m...))
	}
	return out
}

// Normalize replaces nil collections with empty ones, so decoded documents
// behave like freshly created ones. Skills become a trimmed set.
func (d *ResumeDocument) Normalize() {
	if d.Experiences == nil {
		d.Experiences = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	d.Skills = uniqueSkills(d.Skills)
	if d.Certifications == nil {
		d.Certifications = []json.RawMessage{}
	}
	if d.Languages == nil {
		d.Languages = []json.RawMessage{}
	}
	if d.Projects == nil {
		d.Projects = []json.RawMessage{}
	}
}

// uniqueSkills trims skills and drops empty and repeated ones, keeping the
// first occurrence. Matching is case-sensitive.
func uniqueSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		out = append(out, skill)
	}
	return out
}

// Get returns the value of a personal field by its JSON name.
func (p Personal) Get(field string) (string, bool) {
	switch field {
	case "fullName":
		return p.FullName, true
	case "email":
		return p.Email, true
	case "phone":
		return p.Phone, true
	case "location":
		return p.Location, true
	case "linkedin":
		return p.LinkedIn, true
	case "website":
		return p.Website, true
	}
	return "", false
}

// Set assigns a personal field by its JSON name. It reports false for unknown fields.
func (p *Personal) Set(field, value string) bool {
	switch field {
	case "fullName":
		p.FullName = value
	case "email":
		p.Email = value
	case "phone":
		p.Phone = value
	case "location":
		p.Location = value
	case "linkedin":
		p.LinkedIn = value
	case "website":
		p.Website = value
	default:
		return false
	}
	return true
}

// IsEmpty reports whether every personal field is blank.
func (p Personal) IsEmpty() bool {
	for _, f := range PersonalFields {
		if v, _ := p.Get(f); strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// IsComplete reports whether the entry is eligible for rendering and export.
func (e Experience) IsComplete() bool {
	return strings.TrimSpace(e.Title) != "" && strings.TrimSpace(e.Company) != ""
}

func (e Experience) hasContent() bool {
	return e.Current || anyNonBlank(e.Title, e.Company, e.Location, e.StartDate, e.EndDate, e.Description)
}

// IsComplete reports whether the entry is eligible for rendering and export.
func (e Education) IsComplete() bool {
	return strings.TrimSpace(e.Degree) != "" && strings.TrimSpace(e.School) != ""
}

func (e Education) hasContent() bool {
	return anyNonBlank(e.Degree, e.School, e.Location, e.Date, e.GPA, e.Details)
}

// CompleteExperiences returns the experiences that pass IsComplete, in order.
func (d *ResumeDocument) CompleteExperiences() []Experience {
	out := make([]Experience, 0, len(d.Experiences))
	for _, e := range d.Experiences {
		if e.IsComplete() {
			out = append(out, e)
		}
	}
	return out
}

// CompleteEducation returns the education entries that pass IsComplete, in order.
func (d *ResumeDocument) CompleteEducation() []Education {
	out := make([]Education, 0, len(d.Education))
	for _, e := range d.Education {
		if e.IsComplete() {
			out = append(out, e)
		}
	}
	return out
}

// HasContent reports whether any field of the document is populated.
func (d *ResumeDocument) HasContent() bool {
	if d == nil {
		return false
	}
	if !d.Personal.IsEmpty() || strings.TrimSpace(d.Summary) != "" || len(d.Skills) > 0 {
		return true
	}
	for _, e := range d.Experiences {
		if e.hasContent() {
			return true
		}
	}
	for _, e := range d.Education {
		if e.hasContent() {
			return true
		}
	}
	return false
}

// FindExperience returns the index of the experience with the given id, or -1.
func (d *ResumeDocument) FindExperience(id int) int {
	for i, e := range d.Experiences {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// FindEducation returns the index of the education entry with the given id, or -1.
func (d *ResumeDocument) FindEducation(id int) int {
	for i, e := range d.Education {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func anyNonBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
