// Package prompts holds the optimizer's prompt templates. Each embedded JSON
// file maps a prompt key to a template with {{.Name}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

var (
	mu     sync.Mutex
	parsed = map[string]map[string]string{}
)

// Get returns the template stored under key in filename (e.g. "optimizer.json").
func Get(filename, key string) (string, error) {
	set, err := load(filename)
	if err != nil {
		return "", err
	}
	template, ok := set[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// Render looks up a prompt and fills its placeholders.
func Render(filename, key string, data map[string]string) (string, error) {
	template, err := Get(filename, key)
	if err != nil {
		return "", err
	}
	return Format(template, data), nil
}

// Format fills {{.Key}} placeholders from data in a single pass, so values
// that themselves contain placeholders are inserted verbatim. Placeholders
// without a value are left in place.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(data))
	for _, key := range slices.Sorted(maps.Keys(data)) {
		pairs = append(pairs, "{{."+key+"}}", data[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// load parses filename once and keeps the result for the life of the process.
func load(filename string) (map[string]string, error) {
	mu.Lock()
	defer mu.Unlock()

	if set, ok := parsed[filename]; ok {
		return set, nil
	}
	data, err := files.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var set map[string]string
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	parsed[filename] = set
	return set, nil
}
