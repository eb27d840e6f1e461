package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestPlainText(t *testing.T) {
	out := PlainText(fullDocument())

	assert.True(t, strings.HasPrefix(out, "Ada Lovelace\nada@example.com | 555-0100 | London\n"))
	for _, h := range []string{"PROFESSIONAL SUMMARY", "WORK EXPERIENCE", "EDUCATION", "SKILLS"} {
		assert.Contains(t, out, h+"\n"+strings.Repeat("-", 50)+"\n")
	}
	assert.Contains(t, out, "Analytical Engines - London\nMar 2021 - Present\n")
	assert.Contains(t, out, "GPA: 4.0\n")
	assert.Contains(t, out, "Mathematics, Algorithms\n")
	assert.NotContains(t, out, "Ghost")
	assert.NotContains(t, out, "Missing degree")
}

func TestPlainText_OmitsEmptySections(t *testing.T) {
	doc := types.NewResumeDocument()
	doc.Personal.FullName = "Ada"
	out := PlainText(doc)
	assert.Equal(t, "Ada\n\n", out)
	assert.Empty(t, PlainText(nil))
}
