package versions

import (
	"fmt"
	"strconv"

	"github.com/jonathan/resume-builder/internal/types"
)

// Diff sections
const (
	SectionPersonal    = "personal"
	SectionSummary     = "summary"
	SectionSkills      = "skills"
	SectionExperiences = "experiences"
	SectionEducation   = "education"
)

// Diff lists the differences from a to b. Personal fields and the summary
// compare by exact value, skills as sets, and experience and education
// entries by id.
func Diff(a, b *types.ResumeDocument) []types.Difference {
	if a == nil {
		a = types.NewResumeDocument()
	}
	if b == nil {
		b = types.NewResumeDocument()
	}

	diffs := []types.Difference{}

	for _, field := range types.PersonalFields {
		v1, _ := a.Personal.Get(field)
		v2, _ := b.Personal.Get(field)
		if v1 != v2 {
			diffs = append(diffs, types.Difference{Section: SectionPersonal, Field: field, Value1: v1, Value2: v2})
		}
	}

	if a.Summary != b.Summary {
		diffs = append(diffs, types.Difference{Section: SectionSummary, Field: "content", Value1: a.Summary, Value2: b.Summary})
	}

	added, removed := setDifference(b.Skills, a.Skills), setDifference(a.Skills, b.Skills)
	if len(added) > 0 || len(removed) > 0 {
		diffs = append(diffs, types.Difference{Section: SectionSkills, Added: added, Removed: removed})
	}

	diffs = append(diffs, diffEntries(SectionExperiences, experienceEntries(a), experienceEntries(b))...)
	diffs = append(diffs, diffEntries(SectionEducation, educationEntries(a), educationEntries(b))...)

	return diffs
}

// setDifference returns the distinct values of from that are absent in other, in order
func setDifference(from, other []string) []string {
	exclude := make(map[string]bool, len(other))
	for _, s := range other {
		exclude[s] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, s := range from {
		if exclude[s] || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// entry is an experience or education record flattened for comparison
type entry struct {
	id     int
	label  string
	fields []field
}

type field struct {
	name  string
	value string
}

func experienceEntries(d *types.ResumeDocument) []entry {
	out := make([]entry, 0, len(d.Experiences))
	for _, e := range d.Experiences {
		out = append(out, entry{
			id:    e.ID,
			label: entryLabel(e.Title, e.Company),
			fields: []field{
				{"title", e.Title},
				{"company", e.Company},
				{"location", e.Location},
				{"startDate", e.StartDate},
				{"endDate", e.EndDate},
				{"current", strconv.FormatBool(e.Current)},
				{"description", e.Description},
			},
		})
	}
	return out
}

func educationEntries(d *types.ResumeDocument) []entry {
	out := make([]entry, 0, len(d.Education))
	for _, e := range d.Education {
		out = append(out, entry{
			id:    e.ID,
			label: entryLabel(e.Degree, e.School),
			fields: []field{
				{"degree", e.Degree},
				{"school", e.School},
				{"location", e.Location},
				{"date", e.Date},
				{"gpa", e.GPA},
				{"details", e.Details},
			},
		})
	}
	return out
}

func entryLabel(what, where string) string {
	switch {
	case what != "" && where != "":
		return fmt.Sprintf("%s at %s", what, where)
	case what != "":
		return what
	default:
		return where
	}
}

// diffEntries matches entries by id. Entries only in a are removed, entries
// only in b are added, and matched entries report each changed field.
func diffEntries(section string, a, b []entry) []types.Difference {
	byID := make(map[int]entry, len(b))
	for _, e := range b {
		byID[e.id] = e
	}
	inA := make(map[int]bool, len(a))

	var diffs []types.Difference
	for _, ea := range a {
		inA[ea.id] = true
		eb, ok := byID[ea.id]
		if !ok {
			diffs = append(diffs, types.Difference{Section: section, EntryID: ea.id, Removed: []string{ea.label}})
			continue
		}
		for i, f := range ea.fields {
			if other := eb.fields[i].value; f.value != other {
				diffs = append(diffs, types.Difference{
					Section: section,
					EntryID: ea.id,
					Field:   f.name,
					Value1:  f.value,
					Value2:  other,
				})
			}
		}
	}

	for _, eb := range b {
		if !inA[eb.id] {
			diffs = append(diffs, types.Difference{Section: section, EntryID: eb.id, Added: []string{eb.label}})
		}
	}
	return diffs
}
