// Package export produces downloadable files from a resume document: a PDF
// of the visual template, a Word-readable document and plain text.
package export

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// Format is an export file format
type Format string

// Export formats
const (
	FormatPDF  Format = "pdf"
	FormatDoc  Format = "doc"
	FormatText Format = "txt"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatPDF, FormatDoc, FormatText}
}

// ParseFormat maps a name to a Format. "docx" and "text" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pdf":
		return FormatPDF, nil
	case "doc", "docx":
		return FormatDoc, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", &ValidationError{Field: "format", Message: fmt.Sprintf("unsupported export format %q", name)}
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDoc:
		return "application/msword"
	default:
		return "text/plain; charset=utf-8"
	}
}

// File is a rendered export
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// PDFRenderer prints a standalone HTML page to PDF
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// Exporter renders documents to files. The PDF renderer may be nil, in
// which case PDF export fails with a RenderError.
type Exporter struct {
	pdf    PDFRenderer
	logger *zap.Logger
}

// New creates an Exporter.
func New(pdf PDFRenderer, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{pdf: pdf, logger: logger}
}

// unsafeName matches runs of anything that is not a letter, digit, dot or hyphen.
var unsafeName = regexp.MustCompile(`[^\p{L}\p{N}.-]+`)

// SafeName turns free text into a file name fragment: unsafe runs become
// one underscore and leading or trailing dots and underscores are dropped.
func SafeName(s string) string {
	return strings.Trim(unsafeName.ReplaceAllString(s, "_"), "._")
}

// FileName is {Full_Name}_Resume.{ext}.
func FileName(fullName string, format Format) string {
	return fmt.Sprintf("%s_Resume.%s", SafeName(fullName), format)
}

// Export renders doc in the given format. The template only affects PDF.
// A document without a full name is rejected before anything is rendered.
func (e *Exporter) Export(ctx context.Context, doc *types.ResumeDocument, template types.TemplateID, format Format) (*File, error) {
	if doc == nil || strings.TrimSpace(doc.Personal.FullName) == "" {
		return nil, &ValidationError{Field: "fullName", Message: "add at least your name before exporting"}
	}

	var data []byte
	switch format {
	case FormatPDF:
		if e.pdf == nil {
			return nil, &RenderError{Format: format, Message: "no PDF renderer configured"}
		}
		page, err := rendering.Page(doc, template)
		if err != nil {
			return nil, &RenderError{Format: format, Message: "failed to render page", Cause: err}
		}
		pdf, err := e.pdf.RenderPDF(ctx, page)
		if err != nil {
			return nil, &RenderError{Format: format, Message: "failed to print page", Cause: err}
		}
		data = pdf
	case FormatDoc:
		html, err := rendering.WordDocument(doc)
		if err != nil {
			return nil, &RenderError{Format: format, Message: "failed to render document", Cause: err}
		}
		data = []byte(html)
	case FormatText:
		data = []byte(rendering.PlainText(doc))
	default:
		return nil, &ValidationError{Field: "format", Message: fmt.Sprintf("unsupported export format %q", format)}
	}

	e.logger.Info("exported resume",
		zap.String("format", string(format)),
		zap.String("template", string(template)),
		zap.Int("bytes", len(data)),
	)

	return &File{
		Name:        FileName(doc.Personal.FullName, format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}
