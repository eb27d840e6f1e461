package export

import "fmt"

// ValidationError represents a document that cannot be exported yet
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// RenderError represents a failure producing an export file
type RenderError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s export failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s export failed: %s", e.Format, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
