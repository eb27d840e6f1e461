// Package llm - extractor.go builds prompts that ask for a fixed JSON shape.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes the JSON object a structured prompt asks for.
type ExtractionSchema struct {
	Name   string        // Schema name (e.g., "TailoringAnalysis")
	Fields []SchemaField // Expected output fields, in prompt order
}

// SchemaField defines a single field in the structured output.
type SchemaField struct {
	Name    string // JSON field name
	Example string // Example JSON value shown to the model
}

// BuildExtractionPrompt appends the expected JSON shape to the task instructions.
func BuildExtractionPrompt(instructions string, schema ExtractionSchema) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimRight(instructions, "\n"))
	sb.WriteString("\n\nFormat your response as JSON:\n{\n")
	for i, field := range schema.Fields {
		example := field.Example
		if example == "" {
			example = `"string"`
		}
		sb.WriteString(fmt.Sprintf("  %q: %s", field.Name, example))
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
	sb.WriteString("Return ONLY the JSON object, no markdown and no explanation.")

	return sb.String()
}
