package coverletter

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/letter.gohtml
var letterTemplate string

var loadLetter = sync.OnceValues(func() (*template.Template, error) {
	return template.New("letter").Parse(letterTemplate)
})

type letterView struct {
	Personal   types.Personal
	Date       string
	Company    string
	JobTitle   string
	Paragraphs []string
}

// WordDocument renders a letter as HTML that word processors open as a document.
func WordDocument(letter *types.CoverLetter, personal types.Personal) (string, error) {
	tmpl, err := loadLetter()
	if err != nil {
		return "", fmt.Errorf("failed to parse cover letter template: %w", err)
	}

	view := letterView{
		Personal: personal,
		Date:     letter.CreatedAt.Format("January 2, 2006"),
		Company:  letter.CompanyName,
		JobTitle: letter.JobTitle,
	}
	for _, para := range strings.Split(letter.Content, "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			view.Paragraphs = append(view.Paragraphs, para)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render cover letter: %w", err)
	}
	return buf.String(), nil
}

// FileName is the download name for a letter's Word export.
func FileName(letter *types.CoverLetter) string {
	return fmt.Sprintf("Cover_Letter_%s.doc", export.SafeName(letter.CompanyName))
}
