package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	schema := ExtractionSchema{
		Name: "Gap",
		Fields: []SchemaField{
			{Name: "matchingSkills", Example: `[{"skill": "name", "relevance": 9}]`},
			{Name: "note"},
		},
	}

	prompt := BuildExtractionPrompt("Compare the skills.\n\n", schema)

	assert.True(t, strings.HasPrefix(prompt, "Compare the skills.\n\nFormat your response as JSON:\n{\n"))
	assert.Contains(t, prompt, `  "matchingSkills": [{"skill": "name", "relevance": 9}],`+"\n")
	assert.Contains(t, prompt, `  "note": "string"`+"\n}")
	assert.True(t, strings.HasSuffix(prompt, "no markdown and no explanation."))
}
