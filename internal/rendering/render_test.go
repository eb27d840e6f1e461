package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func fullDocument() *types.ResumeDocument {
	doc := types.NewResumeDocument()
	doc.Personal = types.Personal{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "555-0100",
		Location: "London",
		LinkedIn: "https://linkedin.com/in/ada",
		Website:  "https://ada.dev",
	}
	doc.Summary = "Mathematician and first programmer."
	doc.Experiences = []types.Experience{
		{ID: 1, Title: "Analyst", Company: "Analytical Engines", Location: "London", StartDate: "2021-03", EndDate: "2022-01", Current: true, Description: "Wrote the first algorithm"},
		{ID: 2, Title: "Ghost", Description: "No company, never rendered"},
	}
	doc.Education = []types.Education{
		{ID: 1, Degree: "Mathematics", School: "Home Tutoring", Date: "1835-06", GPA: "4.0"},
		{ID: 2, School: "Missing degree"},
	}
	doc.Skills = []string{"Mathematics", "Algorithms"}
	return doc
}

func parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestRender_AllTemplatesAreTotal(t *testing.T) {
	docs := map[string]*types.ResumeDocument{
		"nil":   nil,
		"empty": types.NewResumeDocument(),
		"full":  fullDocument(),
		"only incomplete entries": func() *types.ResumeDocument {
			d := types.NewResumeDocument()
			d.Experiences = []types.Experience{{ID: 1, Title: "No company"}}
			return d
		}(),
	}
	ids := append(types.TemplateIDs(), "unknown")
	for name, doc := range docs {
		for _, id := range ids {
			t.Run(name+"/"+string(id), func(t *testing.T) {
				out, err := Render(doc, id)
				require.NoError(t, err)
				assert.NotEmpty(t, out)
			})
		}
	}
}

func TestRender_EmptyDocumentIsPlaceholder(t *testing.T) {
	for _, id := range types.TemplateIDs() {
		out, err := Render(types.NewResumeDocument(), id)
		require.NoError(t, err)
		assert.Equal(t, Placeholder, out)
	}
}

func TestRender_FiltersIncompleteEntries(t *testing.T) {
	for _, id := range types.TemplateIDs() {
		t.Run(string(id), func(t *testing.T) {
			out, err := Render(fullDocument(), id)
			require.NoError(t, err)
			html := parse(t, out)

			assert.Equal(t, 1, html.Find(".resume-experience .resume-entry").Length())
			assert.Equal(t, 1, html.Find(".resume-education .resume-entry").Length())
			assert.NotContains(t, out, "Ghost")
			assert.NotContains(t, out, "Missing degree")
		})
	}
}

func TestRender_OnlyIncompleteExperiencesOmitsSection(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Personal.FullName = "Ada"
	doc.Experiences = []types.Experience{{ID: 1, Company: "Acme", Description: "x"}}

	out, err := Render(doc, types.TemplateProfessional)
	require.NoError(t, err)
	assert.Equal(t, 0, parse(t, out).Find(".resume-experience").Length())
}

func TestRender_NoHeaderWithoutFullName(t *testing.T) {
	doc := fullDocument()
	doc.Personal.FullName = ""
	for _, id := range types.TemplateIDs() {
		out, err := Render(doc, id)
		require.NoError(t, err)
		assert.Equal(t, 0, parse(t, out).Find(".resume-header").Length(), id)
	}
}

func TestRender_CurrentExperienceShowsPresent(t *testing.T) {
	out, err := Render(fullDocument(), types.TemplateModern)
	require.NoError(t, err)
	dates := parse(t, out).Find(".resume-experience .entry-dates").First().Text()
	assert.Equal(t, "Mar 2021 - Present", dates)
}

func TestRender_VariantLayouts(t *testing.T) {
	t.Run("professional uses bullet contact and Portfolio link", func(t *testing.T) {
		out, err := Render(fullDocument(), types.TemplateProfessional)
		require.NoError(t, err)
		html := parse(t, out)
		assert.Equal(t, "ada@example.com • 555-0100 • London", html.Find(".resume-contact").Text())
		assert.Contains(t, html.Find(".resume-links").Text(), "Portfolio")
		assert.Equal(t, "Mathematics • Algorithms", html.Find(".skill-list").Text())
	})

	t.Run("modern puts header in banner and skills in chips", func(t *testing.T) {
		out, err := Render(fullDocument(), types.TemplateModern)
		require.NoError(t, err)
		html := parse(t, out)
		assert.Equal(t, 1, html.Find(".resume-banner .resume-header").Length())
		assert.Equal(t, 2, html.Find(".resume-skills .skill").Length())
		assert.Contains(t, html.Find(".resume-links").Text(), "Website")
	})

	t.Run("creative moves contact and skills to the sidebar", func(t *testing.T) {
		out, err := Render(fullDocument(), types.TemplateCreative)
		require.NoError(t, err)
		html := parse(t, out)
		assert.Equal(t, 0, html.Find(".resume-skills").Length())
		assert.Equal(t, 2, html.Find(".resume-sidebar .skill").Length())
		assert.Equal(t, 3, html.Find(".sidebar-contact div").Length())
		assert.Equal(t, 0, html.Find(".resume-header .resume-contact").Length())
		assert.Equal(t, 1, html.Find(".resume-accent").Length())
	})

	t.Run("minimal joins contact with pipes and drops summary heading", func(t *testing.T) {
		out, err := Render(fullDocument(), types.TemplateMinimal)
		require.NoError(t, err)
		html := parse(t, out)
		assert.Equal(t, "ada@example.com | 555-0100 | London", html.Find(".resume-contact").Text())
		assert.Equal(t, 0, html.Find(".resume-summary h2").Length())
		assert.Equal(t, "Experience", html.Find(".resume-experience h2").Text())
		assert.Equal(t, 0, html.Find(".resume-links").Length())
	})
}

func TestRender_UnknownTemplateFallsBackToProfessional(t *testing.T) {
	want, err := Render(fullDocument(), types.TemplateProfessional)
	require.NoError(t, err)
	got, err := Render(fullDocument(), "neon")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRender_EscapesUserContent(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Personal.FullName = `<script>alert("x")</script>`
	doc.Personal.Website = "javascript:alert(1)"

	out, err := Render(doc, types.TemplateProfessional)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, `href="javascript:`)
}

func TestRender_EducationGPA(t *testing.T) {
	out, err := Render(fullDocument(), types.TemplateProfessional)
	require.NoError(t, err)
	html := parse(t, out)
	assert.Equal(t, "GPA: 4.0", html.Find(".entry-gpa").Text())
	assert.Equal(t, "Jun 1835", html.Find(".resume-education .entry-dates").Text())
}

func TestStyles(t *testing.T) {
	all := Styles()
	assert.Len(t, all, 4)
	for id, style := range all {
		assert.Equal(t, id, style.ID)
		assert.NotEmpty(t, style.Shell)
	}
	assert.Equal(t, types.TemplateProfessional, StyleFor("nope").ID)
}

func TestWordDocument(t *testing.T) {
	out, err := WordDocument(fullDocument())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))

	html := parse(t, out)
	assert.Equal(t, "Ada Lovelace", html.Find("h1").Text())
	assert.Contains(t, html.Find("style").Text(), "Calibri")
	assert.Equal(t, 4, html.Find("h2").Length())
	assert.NotContains(t, out, "Ghost")
	assert.Contains(t, out, "https://linkedin.com/in/ada • https://ada.dev")
}

func TestPage(t *testing.T) {
	out, err := Page(fullDocument(), types.TemplateModern)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))

	html := parse(t, out)
	assert.Equal(t, "Ada Lovelace - Resume", html.Find("title").Text())
	assert.Contains(t, html.Find("style").Text(), "size: A4")
	assert.Equal(t, 1, html.Find("body .resume-modern").Length())
}

func TestPage_EmptyDocument(t *testing.T) {
	out, err := Page(types.NewResumeDocument(), types.TemplateMinimal)
	require.NoError(t, err)

	html := parse(t, out)
	assert.Equal(t, "Resume", html.Find("title").Text())
	assert.Equal(t, 1, html.Find("body .resume-placeholder").Length())
}
