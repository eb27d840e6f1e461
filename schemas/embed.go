// Package schemas holds the JSON Schema documents for persisted and exchanged data.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names
const (
	ResumeDocument = "resume_document.schema.json"
	BackupBundle   = "backup_bundle.schema.json"
)
