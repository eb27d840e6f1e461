package document

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func strPtr(s string) *string { return &s }

func TestSession_SetPersonalField(t *testing.T) {
	s := New()
	require.NoError(t, s.SetPersonalField("fullName", "Ada Lovelace"))
	require.NoError(t, s.SetPersonalField("linkedin", "linkedin.com/in/ada"))

	doc := s.Snapshot()
	assert.Equal(t, "Ada Lovelace", doc.Personal.FullName)
	assert.Equal(t, "linkedin.com/in/ada", doc.Personal.LinkedIn)

	err := s.SetPersonalField("github", "ada")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Error(), "github")
}

func TestSession_AddExperienceAssignsIncreasingIDs(t *testing.T) {
	s := New()
	a := s.AddExperience(types.Experience{Title: "A", Company: "X", ID: 42})
	b := s.AddExperience(types.Experience{Title: "B", Company: "Y"})
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)

	require.True(t, s.RemoveExperience(a.ID))
	c := s.AddExperience(types.Experience{Title: "C"})
	assert.Equal(t, 3, c.ID)

	doc := s.Snapshot()
	require.Len(t, doc.Experiences, 2)
	assert.Equal(t, "B", doc.Experiences[0].Title)
	assert.Equal(t, "C", doc.Experiences[1].Title)
}

func TestSession_UpdateExperience(t *testing.T) {
	s := New()
	e := s.AddExperience(types.Experience{Title: "Engineer", Company: "Acme", Description: "old"})

	current := true
	updated, err := s.UpdateExperience(e.ID, ExperienceUpdate{Description: strPtr("new"), Current: &current})
	require.NoError(t, err)
	assert.Equal(t, "Engineer", updated.Title)
	assert.Equal(t, "new", updated.Description)
	assert.True(t, updated.Current)

	_, err = s.UpdateExperience(99, ExperienceUpdate{Title: strPtr("x")})
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "experience", nf.Kind)
	assert.False(t, s.RemoveExperience(99))
}

func TestSession_EducationLifecycle(t *testing.T) {
	s := New()
	e := s.AddEducation(types.Education{Degree: "BSc", School: "MIT"})
	assert.Equal(t, 1, e.ID)

	updated, err := s.UpdateEducation(e.ID, EducationUpdate{GPA: strPtr("3.9")})
	require.NoError(t, err)
	assert.Equal(t, "3.9", updated.GPA)
	assert.Equal(t, "MIT", updated.School)

	_, err = s.UpdateEducation(5, EducationUpdate{})
	assert.Error(t, err)

	assert.True(t, s.RemoveEducation(e.ID))
	assert.Empty(t, s.Snapshot().Education)
}

func TestSession_AddSkill(t *testing.T) {
	s := New()
	assert.True(t, s.AddSkill("Go"))
	assert.False(t, s.AddSkill("Go"))
	assert.False(t, s.AddSkill("  Go  "))
	assert.False(t, s.AddSkill("   "))
	assert.True(t, s.AddSkill("go"))
	assert.Equal(t, []string{"Go", "go"}, s.Snapshot().Skills)

	assert.True(t, s.RemoveSkill("Go"))
	assert.False(t, s.RemoveSkill("Go"))
	assert.Equal(t, []string{"go"}, s.Snapshot().Skills)
}

func TestSession_SnapshotIsIsolated(t *testing.T) {
	s := New()
	s.AddSkill("Go")
	snap := s.Snapshot()
	snap.Skills[0] = "Rust"
	snap.Personal.FullName = "Mallory"

	live := s.Snapshot()
	assert.Equal(t, "Go", live.Skills[0])
	assert.Empty(t, live.Personal.FullName)
}

func TestSession_ReplaceAdvancesCounters(t *testing.T) {
	s := New()
	doc := types.NewResumeDocument()
	doc.Experiences = []types.Experience{{ID: 7, Title: "A", Company: "B"}}
	doc.Education = []types.Education{{ID: 3, Degree: "D", School: "S"}}
	s.Replace(doc)

	doc.Experiences[0].Title = "mutated after replace"
	assert.Equal(t, "A", s.Snapshot().Experiences[0].Title)

	assert.Equal(t, 8, s.AddExperience(types.Experience{}).ID)
	assert.Equal(t, 4, s.AddEducation(types.Education{}).ID)
}

func TestSession_ReplaceRepairsDuplicates(t *testing.T) {
	s := New()
	doc := types.NewResumeDocument()
	doc.Skills = []string{"Go", "Go", " SQL", ""}
	doc.Experiences = []types.Experience{
		{ID: 1, Title: "A"},
		{ID: 1, Title: "B"},
		{ID: 0, Title: "C"},
		{ID: 5, Title: "D"},
	}
	doc.Education = []types.Education{{ID: -2, Degree: "X"}, {ID: -2, Degree: "Y"}}
	s.Replace(doc)

	got := s.Snapshot()
	assert.Equal(t, []string{"Go", "SQL"}, got.Skills)

	ids := make([]int, 0, len(got.Experiences))
	for _, e := range got.Experiences {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int{1, 6, 7, 5}, ids)
	assert.Equal(t, 1, got.Education[0].ID)
	assert.Equal(t, 2, got.Education[1].ID)

	assert.True(t, s.RemoveSkill("Go"))
	assert.NotContains(t, s.Snapshot().Skills, "Go")

	require.True(t, s.RemoveExperience(1))
	remaining := s.Snapshot().Experiences
	require.Len(t, remaining, 3)
	assert.Equal(t, "B", remaining[0].Title)
	assert.Equal(t, 8, s.AddExperience(types.Experience{}).ID)
	assert.Equal(t, 3, s.AddEducation(types.Education{}).ID)
}

func TestSession_ReplaceNilResets(t *testing.T) {
	s := New()
	s.SetSummary("hello")
	s.Replace(nil)
	doc := s.Snapshot()
	assert.Empty(t, doc.Summary)
	assert.NotNil(t, doc.Skills)
}

func TestSession_Template(t *testing.T) {
	s := New()
	assert.Equal(t, types.TemplateProfessional, s.Template())
	assert.Equal(t, types.TemplateCreative, s.SetTemplate("creative"))
	assert.Equal(t, types.TemplateProfessional, s.SetTemplate("unknown"))

	s.SetTemplate(types.TemplateMinimal)
	s.Reset()
	assert.Equal(t, types.TemplateProfessional, s.Template())
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name  string
		build func(*Session)
		want  int
	}{
		{"empty", func(*Session) {}, 0},
		{"only full name", func(s *Session) { _ = s.SetPersonalField("fullName", "Ada") }, 13},
		{
			name: "all personal, summary and skills",
			build: func(s *Session) {
				for _, f := range types.PersonalFields {
					_ = s.SetPersonalField(f, "x")
				}
				s.SetSummary("summary")
				s.AddSkill("Go")
			},
			want: 100,
		},
		{
			name: "one half-filled experience",
			build: func(s *Session) {
				// 12 slots: 8 base + 4 experience; title, company filled.
				s.AddExperience(types.Experience{Title: "Engineer", Company: "Acme", EndDate: "2020-01", Current: true})
			},
			want: 17,
		},
		{
			name: "education counts three fields",
			build: func(s *Session) {
				// 11 slots: 8 base + 3 education; all filled.
				s.AddEducation(types.Education{Degree: "BSc", School: "MIT", Date: "2020-05", GPA: "4.0"})
			},
			want: 27,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.build(s)
			assert.Equal(t, tt.want, s.Progress())
		})
	}
}

func TestProgress_Nil(t *testing.T) {
	assert.Equal(t, 0, Progress(nil))
}

func TestSession_ConcurrentEdits(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.AddExperience(types.Experience{Title: fmt.Sprintf("T%d", i), Company: "C"})
			s.AddSkill(fmt.Sprintf("skill-%d", i%10))
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()

	doc := s.Snapshot()
	assert.Len(t, doc.Experiences, 50)
	assert.Len(t, doc.Skills, 10)

	seen := map[int]bool{}
	for _, e := range doc.Experiences {
		assert.False(t, seen[e.ID], "duplicate id %d", e.ID)
		seen[e.ID] = true
	}
}
