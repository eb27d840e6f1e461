package types

import "strings"

// TemplateID identifies one of the visual resume variants
type TemplateID string

// Template variants
const (
	TemplateProfessional TemplateID = "professional"
	TemplateModern       TemplateID = "modern"
	TemplateCreative     TemplateID = "creative"
	TemplateMinimal      TemplateID = "minimal"
)

// DefaultTemplate is used whenever a template id is missing or unknown.
const DefaultTemplate = TemplateProfessional

// TemplateIDs returns every known template id in display order.
func TemplateIDs() []TemplateID {
	return []TemplateID{TemplateProfessional, TemplateModern, TemplateCreative, TemplateMinimal}
}

// IsKnown reports whether id names a known variant.
func (id TemplateID) IsKnown() bool {
	for _, known := range TemplateIDs() {
		if id == known {
			return true
		}
	}
	return false
}

// ParseTemplateID normalizes s to a known template id, falling back to professional.
func ParseTemplateID(s string) TemplateID {
	id := TemplateID(strings.ToLower(strings.TrimSpace(s)))
	if id.IsKnown() {
		return id
	}
	return DefaultTemplate
}
