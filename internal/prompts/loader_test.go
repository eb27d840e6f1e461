package prompts

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const optimizerFile = "optimizer.json"

func TestGet(t *testing.T) {
	prompt, err := Get(optimizerFile, "optimize-summary")
	require.NoError(t, err)
	assert.Contains(t, prompt, "optimize this professional summary")
	assert.Contains(t, prompt, "{{.Summary}}")

	_, err = Get("nonexistent.json", "some-key")
	assert.ErrorContains(t, err, "failed to read prompt file")

	_, err = Get(optimizerFile, "nonexistent-key")
	assert.ErrorContains(t, err, "not found")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{
			name:     "fills known keys and keeps unknown",
			template: "Hello {{.Name}}, welcome to {{.Company}}! {{.Missing}}",
			data:     map[string]string{"Name": "Alice", "Company": "Acme Corp"},
			want:     "Hello Alice, welcome to Acme Corp! {{.Missing}}",
		},
		{
			name:     "no data",
			template: "{{.Name}}",
			data:     nil,
			want:     "{{.Name}}",
		},
		{
			name:     "repeated placeholder",
			template: "{{.A}}/{{.A}}",
			data:     map[string]string{"A": "x"},
			want:     "x/x",
		},
		{
			name:     "values are not expanded",
			template: "S={{.Summary}} C={{.Context}}",
			data:     map[string]string{"Summary": "I wrote {{.Context}}", "Context": "CTX"},
			want:     "S=I wrote {{.Context}} C=CTX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestFormat_SameOutputEveryRun(t *testing.T) {
	data := map[string]string{
		"Summary": "I wrote {{.Context}} and {{.Job}}",
		"Context": "CTX {{.Summary}}",
		"Job":     "JOB",
		"Skills":  "{{.Job}}",
	}
	template := "{{.Summary}}|{{.Context}}|{{.Job}}|{{.Skills}}"
	want := "I wrote {{.Context}} and {{.Job}}|CTX {{.Summary}}|JOB|{{.Job}}"

	for i := 0; i < 200; i++ {
		require.Equal(t, want, Format(template, data), "run %d", i)
	}
}

func TestRender(t *testing.T) {
	prompt, err := Render(optimizerFile, "action-verbs", map[string]string{"Text": "Helped with the migration"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Current Text:\nHelped with the migration\n")
	assert.NotContains(t, prompt, "{{.Text}}")

	_, err = Render(optimizerFile, "missing", nil)
	assert.Error(t, err)
}

func TestOptimizerFile_Keys(t *testing.T) {
	data, err := files.ReadFile(optimizerFile)
	require.NoError(t, err)
	var set map[string]string
	require.NoError(t, json.Unmarshal(data, &set))

	for _, key := range []string{
		"action-verbs",
		"ats-check",
		"cover-letter",
		"optimize-description",
		"optimize-summary",
		"quantify-achievements",
		"skills-gap",
		"tailor-for-job",
	} {
		prompt, err := Get(optimizerFile, key)
		require.NoError(t, err, key)
		assert.Regexp(t, regexp.MustCompile(`\{\{\.[A-Za-z]+\}\}`), prompt, "%s has no placeholders", key)
	}
	assert.Len(t, set, 8)
}
