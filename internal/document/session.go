// Package document owns the live resume being edited.
//
// A Session is the single mutation entry point for the document. Every
// method locks the session, so callers on different goroutines serialize
// and never observe a partially applied edit.
package document

import (
	"math"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// Session is an editing session over one ResumeDocument
type Session struct {
	mu       sync.Mutex
	doc      *types.ResumeDocument
	template types.TemplateID
	nextExp  int
	nextEdu  int
}

// New creates a session over an empty document using the default template.
func New() *Session {
	return &Session{
		doc:      types.NewResumeDocument(),
		template: types.DefaultTemplate,
		nextExp:  1,
		nextEdu:  1,
	}
}

// ExperienceUpdate is a partial update; nil fields are left unchanged
type ExperienceUpdate struct {
	Title       *string `json:"title,omitempty"`
	Company     *string `json:"company,omitempty"`
	Location    *string `json:"location,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Current     *bool   `json:"current,omitempty"`
	Description *string `json:"description,omitempty"`
}

// EducationUpdate is a partial update; nil fields are left unchanged
type EducationUpdate struct {
	Degree   *string `json:"degree,omitempty"`
	School   *string `json:"school,omitempty"`
	Location *string `json:"location,omitempty"`
	Date     *string `json:"date,omitempty"`
	GPA      *string `json:"gpa,omitempty"`
	Details  *string `json:"details,omitempty"`
}

// Snapshot returns a deep copy of the live document.
func (s *Session) Snapshot() *types.ResumeDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Replace swaps the live document for a deep copy of doc. Entries with a
// repeated or non-positive id get fresh ids, and the counters move past the
// highest id so later additions stay unique.
func (s *Session) Replace(doc *types.ResumeDocument) {
	next := doc.Clone()
	if next == nil {
		next = types.NewResumeDocument()
	}
	next.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = next
	s.nextExp = assignIDs(len(next.Experiences), func(i int) *int { return &next.Experiences[i].ID })
	s.nextEdu = assignIDs(len(next.Education), func(i int) *int { return &next.Education[i].ID })
}

// assignIDs keeps the first use of each positive id and renumbers the rest
// above the highest one. It returns the next free id.
func assignIDs(n int, id func(i int) *int) int {
	next := 1
	for i := 0; i < n; i++ {
		if v := *id(i); v >= next {
			next = v + 1
		}
	}

	seen := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		p := id(i)
		if *p <= 0 || seen[*p] {
			*p = next
			next++
		}
		seen[*p] = true
	}
	return next
}

// Reset clears the document and restores the default template.
func (s *Session) Reset() {
	s.Replace(nil)
	s.SetTemplate(types.DefaultTemplate)
}

// Template returns the current template id.
func (s *Session) Template() types.TemplateID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.template
}

// SetTemplate sets the current template. Unknown ids become professional.
func (s *Session) SetTemplate(id types.TemplateID) types.TemplateID {
	id = types.ParseTemplateID(string(id))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.template = id
	return id
}

// SetPersonalField sets one of the six personal fields by name.
func (s *Session) SetPersonalField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.doc.Personal.Set(field, value) {
		return &ValidationError{Field: "field", Message: "unknown personal field " + field}
	}
	return nil
}

// SetSummary replaces the summary text.
func (s *Session) SetSummary(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Summary = text
}

// AddExperience appends e under a freshly assigned id and returns the stored entry.
func (s *Session) AddExperience(e types.Experience) types.Experience {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextExp
	s.nextExp++
	s.doc.Experiences = append(s.doc.Experiences, e)
	return e
}

// UpdateExperience applies a partial update to the experience with the given id.
func (s *Session) UpdateExperience(id int, u ExperienceUpdate) (types.Experience, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.doc.FindExperience(id)
	if i < 0 {
		return types.Experience{}, &NotFoundError{Kind: "experience", ID: id}
	}
	e := &s.doc.Experiences[i]
	setIf(&e.Title, u.Title)
	setIf(&e.Company, u.Company)
	setIf(&e.Location, u.Location)
	setIf(&e.StartDate, u.StartDate)
	setIf(&e.EndDate, u.EndDate)
	setIf(&e.Description, u.Description)
	if u.Current != nil {
		e.Current = *u.Current
	}
	return *e, nil
}

// RemoveExperience deletes the experience with the given id and reports whether it existed.
func (s *Session) RemoveExperience(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.doc.FindExperience(id)
	if i < 0 {
		return false
	}
	s.doc.Experiences = append(s.doc.Experiences[:i], s.doc.Experiences[i+1:]...)
	return true
}

// AddEducation appends e under a freshly assigned id and returns the stored entry.
func (s *Session) AddEducation(e types.Education) types.Education {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextEdu
	s.nextEdu++
	s.doc.Education = append(s.doc.Education, e)
	return e
}

// UpdateEducation applies a partial update to the education entry with the given id.
func (s *Session) UpdateEducation(id int, u EducationUpdate) (types.Education, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.doc.FindEducation(id)
	if i < 0 {
		return types.Education{}, &NotFoundError{Kind: "education", ID: id}
	}
	e := &s.doc.Education[i]
	setIf(&e.Degree, u.Degree)
	setIf(&e.School, u.School)
	setIf(&e.Location, u.Location)
	setIf(&e.Date, u.Date)
	setIf(&e.GPA, u.GPA)
	setIf(&e.Details, u.Details)
	return *e, nil
}

// RemoveEducation deletes the education entry with the given id and reports whether it existed.
func (s *Session) RemoveEducation(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.doc.FindEducation(id)
	if i < 0 {
		return false
	}
	s.doc.Education = append(s.doc.Education[:i], s.doc.Education[i+1:]...)
	return true
}

// AddSkill appends a trimmed skill. Empty and exact duplicate skills are ignored.
func (s *Session) AddSkill(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.doc.Skills {
		if existing == skill {
			return false
		}
	}
	s.doc.Skills = append(s.doc.Skills, skill)
	return true
}

// RemoveSkill deletes an exact skill match and reports whether it existed.
func (s *Session) RemoveSkill(skill string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.doc.Skills {
		if existing == skill {
			s.doc.Skills = append(s.doc.Skills[:i], s.doc.Skills[i+1:]...)
			return true
		}
	}
	return false
}

// Progress returns the filled share of countable fields as a rounded percentage.
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Progress(s.doc)
}

// Progress computes completion for any document.
// Each experience counts title, company, startDate and description; each
// education entry counts degree, school and date.
func Progress(doc *types.ResumeDocument) int {
	if doc == nil {
		return 0
	}
	total, filled := 0, 0
	count := func(values ...string) {
		for _, v := range values {
			total++
			if strings.TrimSpace(v) != "" {
				filled++
			}
		}
	}

	for _, f := range types.PersonalFields {
		v, _ := doc.Personal.Get(f)
		count(v)
	}
	count(doc.Summary)
	for _, e := range doc.Experiences {
		count(e.Title, e.Company, e.StartDate, e.Description)
	}
	for _, e := range doc.Education {
		count(e.Degree, e.School, e.Date)
	}
	total++
	if len(doc.Skills) > 0 {
		filled++
	}

	return int(math.Round(float64(filled) / float64(total) * 100))
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
