package optimizer

import (
	"encoding/json"

	"github.com/jonathan/resume-builder/internal/llm"
)

// ParseFailureMessage is reported alongside the raw text when a structured
// response cannot be decoded.
const ParseFailureMessage = "Could not parse as JSON"

// Kind tags a structured Result.
type Kind int

const (
	// Parsed means Value holds the decoded response.
	Parsed Kind = iota
	// Unparsed means only Raw is meaningful.
	Unparsed
)

func (k Kind) String() string {
	if k == Unparsed {
		return "unparsed"
	}
	return "parsed"
}

// Result is the outcome of a structured operation. A response that is not
// valid JSON for T is not an error; it is returned as Unparsed with the
// provider's text in Raw.
type Result[T any] struct {
	Kind  Kind
	Value T
	Raw   string
}

// OK reports whether the response was decoded.
func (r Result[T]) OK() bool {
	return r.Kind == Parsed
}

type unparsedBody struct {
	RawResponse string `json:"rawResponse"`
	Error       string `json:"error"`
}

// MarshalJSON writes the decoded value, or {rawResponse, error} when unparsed.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Kind == Unparsed {
		return json.Marshal(unparsedBody{RawResponse: r.Raw, Error: ParseFailureMessage})
	}
	return json.Marshal(r.Value)
}

// parseResult decodes a provider response into T, tolerating code fences and
// prose around the JSON object.
func parseResult[T any](raw string) Result[T] {
	cleaned := llm.CleanJSONBlock(raw)

	var value T
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return Result[T]{Kind: Unparsed, Raw: raw}
	}
	return Result[T]{Kind: Parsed, Value: value, Raw: raw}
}
