// Package share encodes a resume document into a URL query parameter and back.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// QueryParam is the query parameter that carries an encoded document
const QueryParam = "resume"

// DecodeError represents a shared link or token that cannot be turned back
// into a document. Nothing is applied when it is returned.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid shared resume: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid shared resume: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Encode serializes a document to JSON and then to unpadded base64url.
// Nil collections are written as empty arrays.
func Encode(doc *types.ResumeDocument) (string, error) {
	out := doc.Clone()
	if out == nil {
		out = types.NewResumeDocument()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to encode resume: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode reverses Encode. The JSON is validated against the document schema
// before it is decoded. Standard padded base64 is accepted too.
func Decode(token string) (*types.ResumeDocument, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, &DecodeError{Message: "empty token"}
	}

	data, err := decodeBase64(token)
	if err != nil {
		return nil, &DecodeError{Message: "token is not base64", Cause: err}
	}

	if err := schemas.ValidateDocument(data); err != nil {
		return nil, &DecodeError{Message: "document does not match schema", Cause: err}
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Message: "document is not valid JSON", Cause: err}
	}
	doc.Normalize()
	return &doc, nil
}

// Link builds {baseURL}?resume={token}, keeping any query already on baseURL.
func Link(baseURL string, doc *types.ResumeDocument) (string, error) {
	token, err := Encode(doc)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}
	q := u.Query()
	q.Set(QueryParam, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Extract returns the token from a shared link. Input that is not a URL
// with a resume parameter is treated as a bare token.
func Extract(linkOrToken string) string {
	linkOrToken = strings.TrimSpace(linkOrToken)
	if !strings.Contains(linkOrToken, "?") {
		return linkOrToken
	}

	u, err := url.Parse(linkOrToken)
	if err != nil {
		return linkOrToken
	}
	if token := u.Query().Get(QueryParam); token != "" {
		return token
	}
	return linkOrToken
}

// Load extracts and decodes a link or token in one step.
func Load(linkOrToken string) (*types.ResumeDocument, error) {
	return Decode(Extract(linkOrToken))
}

// decodeBase64 accepts the URL-safe and standard alphabets, padded or not.
// Query decoding may have turned '+' into ' ', so spaces are restored first.
func decodeBase64(token string) ([]byte, error) {
	token = strings.ReplaceAll(token, " ", "+")
	token = strings.TrimRight(token, "=")

	if strings.ContainsAny(token, "+/") {
		return base64.RawStdEncoding.DecodeString(token)
	}
	return base64.RawURLEncoding.DecodeString(token)
}
