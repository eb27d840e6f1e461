// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/backup"
	"github.com/jonathan/resume-builder/internal/coverletter"
	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/optimizer"
	"github.com/jonathan/resume-builder/internal/share"
	"github.com/jonathan/resume-builder/internal/tracker"
	"github.com/jonathan/resume-builder/internal/versions"
	"github.com/jonathan/resume-builder/internal/workspace"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates the addressed record does not exist
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr       *ErrValidation
		docErr       *document.ValidationError
		versionErr   *versions.ValidationError
		letterErr    *coverletter.ValidationError
		trackerErr   *tracker.ValidationError
		optimizerErr *optimizer.ValidationError
		exportErr    *export.ValidationError
		wsErr        *workspace.ValidationError

		notFound     *ErrNotFound
		docNotFound  *document.NotFoundError
		wsNotFound   *workspace.NotFoundError
		apiErr       *optimizer.APICallError
		decodeErr    *share.DecodeError
		importErr    *backup.ImportError
		exportRender *export.RenderError
	)

	switch {
	case errors.As(err, &reqErr), errors.As(err, &docErr), errors.As(err, &versionErr),
		errors.As(err, &letterErr), errors.As(err, &trackerErr), errors.As(err, &optimizerErr),
		errors.As(err, &exportErr), errors.As(err, &wsErr):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.As(err, &docNotFound), errors.As(err, &wsNotFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	case errors.As(err, &decodeErr), errors.As(err, &importErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &exportRender):
		if exportRender.Cause == nil {
			return http.StatusServiceUnavailable
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
