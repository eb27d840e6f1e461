package rendering

import (
	"embed"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Placeholder is rendered in place of a resume when the document holds no data at all.
const Placeholder = `<div class="resume-placeholder" style="padding: 100px 40px; text-align: center; color: #94a3b8; font-family: sans-serif;"><p>Start filling out the form to see your resume preview</p></div>`

var funcs = template.FuncMap{
	"join": strings.Join,
}

var loadTemplates = sync.OnceValues(func() (*template.Template, error) {
	return template.New("resume").Funcs(funcs).ParseFS(templateFS, "templates/*.gohtml")
})

// view is the filtered, pre-formatted data every section template reads
type view struct {
	Style       Style
	Personal    types.Personal
	Contact     []string
	Links       []string
	Summary     string
	Experiences []experienceView
	Education   []educationView
	Skills      []string
}

type experienceView struct {
	Title       string
	Company     string
	Location    string
	Dates       string
	Description string
}

type educationView struct {
	Degree   string
	School   string
	Location string
	Date     string
	GPA      string
	Details  string
}

func newView(doc *types.ResumeDocument, style Style) view {
	v := view{
		Style:    style,
		Personal: doc.Personal,
		Contact:  nonEmpty(doc.Personal.Email, doc.Personal.Phone, doc.Personal.Location),
		Links:    nonEmpty(doc.Personal.LinkedIn, doc.Personal.Website),
		Summary:  strings.TrimSpace(doc.Summary),
		Skills:   doc.Skills,
	}
	for _, e := range doc.CompleteExperiences() {
		v.Experiences = append(v.Experiences, experienceView{
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			Dates:       DateRange(e.StartDate, e.EndDate, e.Current),
			Description: strings.TrimSpace(e.Description),
		})
	}
	for _, e := range doc.CompleteEducation() {
		v.Education = append(v.Education, educationView{
			Degree:   e.Degree,
			School:   e.School,
			Location: e.Location,
			Date:     FormatDate(e.Date),
			GPA:      e.GPA,
			Details:  e.Details,
		})
	}
	return v
}

// Render renders doc with the given template variant. Unknown ids use
// professional, and a document without any data renders as Placeholder.
func Render(doc *types.ResumeDocument, id types.TemplateID) (string, error) {
	if !doc.HasContent() {
		return Placeholder, nil
	}
	style := StyleFor(types.ParseTemplateID(string(id)))
	return execute(style.Shell, newView(doc, style))
}

// Page wraps Render's markup in a standalone A4 HTML page for printing.
func Page(doc *types.ResumeDocument, id types.TemplateID) (string, error) {
	body, err := Render(doc, id)
	if err != nil {
		return "", err
	}

	title := "Resume"
	if doc != nil && strings.TrimSpace(doc.Personal.FullName) != "" {
		title = strings.TrimSpace(doc.Personal.FullName) + " - Resume"
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return "", &TemplateError{Message: "failed to parse templates", Cause: err}
	}
	var out strings.Builder
	data := struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body)} //nolint:gosec // body is html/template output
	if err := tmpl.ExecuteTemplate(&out, "page", data); err != nil {
		return "", &TemplateError{Message: "failed to execute template page", Cause: err}
	}
	return out.String(), nil
}

// WordDocument renders a standalone HTML document that word processors open
// as a .doc file. It is built from the model, not from Render's markup.
func WordDocument(doc *types.ResumeDocument) (string, error) {
	if doc == nil {
		doc = types.NewResumeDocument()
	}
	return execute("word", newView(doc, StyleFor(types.DefaultTemplate)))
}

func execute(name string, v view) (string, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return "", &TemplateError{Message: "failed to parse templates", Cause: err}
	}
	var out strings.Builder
	if err := tmpl.ExecuteTemplate(&out, name, v); err != nil {
		return "", &TemplateError{Message: "failed to execute template " + name, Cause: err}
	}
	return out.String(), nil
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
