// Package backup writes and reads the bulk export bundle: the current
// document and template plus every version, cover letter and application.
package backup

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// ExportDateLayout matches JavaScript's Date.toISOString
const ExportDateLayout = "2006-01-02T15:04:05.000Z"

// ImportError represents a bundle that cannot be imported. Nothing is
// replaced when it is returned.
type ImportError struct {
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid backup file: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid backup file: %s", e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// NewBundle assembles a bundle stamped with now.
func NewBundle(doc *types.ResumeDocument, template types.TemplateID, versions []*types.ResumeVersion,
	letters []*types.CoverLetter, applications []*types.Application, now time.Time) *types.Bundle {
	stamp := now.UTC().Format(ExportDateLayout)

	current := doc.Clone()
	if current == nil {
		current = types.NewResumeDocument()
	}

	normalized := make([]*types.ResumeVersion, 0, len(versions))
	for _, v := range versions {
		if v == nil {
			continue
		}
		c := v.Clone()
		if c.Data == nil {
			c.Data = types.NewResumeDocument()
		}
		normalized = append(normalized, c)
	}

	return &types.Bundle{
		CurrentResume:   current,
		CurrentTemplate: types.ParseTemplateID(string(template)),
		Versions:        normalized,
		CoverLetters:    nonNil(letters),
		Applications:    nonNil(applications),
		ExportDate:      &stamp,
	}
}

// Encode writes a bundle as indented JSON.
func Encode(bundle *types.Bundle) ([]byte, error) {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// Decode validates and reads a bundle. The export date must be present.
// Collections that are absent or null stay nil so callers can leave the
// matching state untouched.
func Decode(data []byte) (*types.Bundle, error) {
	if err := schemas.ValidateBundle(data); err != nil {
		return nil, &ImportError{Message: "bundle does not match schema", Cause: err}
	}

	var bundle types.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, &ImportError{Message: "bundle is not valid JSON", Cause: err}
	}
	if bundle.ExportDate == nil || strings.TrimSpace(*bundle.ExportDate) == "" {
		return nil, &ImportError{Message: "exportDate is required"}
	}

	if bundle.CurrentResume != nil {
		bundle.CurrentResume.Normalize()
	}
	for _, v := range bundle.Versions {
		if v != nil && v.Data != nil {
			v.Data.Normalize()
		}
	}
	if bundle.CurrentTemplate != "" {
		bundle.CurrentTemplate = types.ParseTemplateID(string(bundle.CurrentTemplate))
	}
	return &bundle, nil
}

// FileName is the download name for a bundle exported at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("resume-builder-backup-%s.json", now.UTC().Format("2006-01-02"))
}

func nonNil[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
