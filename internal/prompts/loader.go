// Package prompts provides the embedded catalogue of model instructions and the
// JSON schemas their output must satisfy.
package prompts

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalogue keys.
const (
	Extraction   = "extraction"
	Attendance   = "attendance"
	Competencies = "competencies"
)

//go:embed prompts.yaml
var catalogueYAML []byte

// Prompt is one catalogue entry.
type Prompt struct {
	System    string `yaml:"system"`
	User      string `yaml:"user"`
	UserImage string `yaml:"user_image"`
	Schema    string `yaml:"schema"`
}

var (
	loadOnce  sync.Once
	catalogue map[string]*Prompt
	loadErr   error
)

func load() (map[string]*Prompt, error) {
	loadOnce.Do(func() {
		var entries map[string]*Prompt
		if err := yaml.Unmarshal(catalogueYAML, &entries); err != nil {
			loadErr = fmt.Errorf("failed to parse prompt catalogue: %w", err)
			return
		}
		catalogue = entries
	})
	return catalogue, loadErr
}

// Get retrieves a prompt by key.
func Get(key string) (*Prompt, error) {
	entries, err := load()
	if err != nil {
		return nil, err
	}
	p, ok := entries[key]
	if !ok {
		return nil, fmt.Errorf("prompt key %q not found", key)
	}
	return p, nil
}

// MustGet retrieves a prompt by key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(key string) *Prompt {
	p, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return p
}

// List returns all catalogue keys in sorted order.
func List() ([]string, error) {
	entries, err := load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Format replaces {{.Key}} placeholders in template with values from data in a
// single pass. Placeholders inside substituted values are left as-is.
func Format(template string, data map[string]string) string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, "{{."+key+"}}", data[key])
	}
	return strings.TrimRight(strings.NewReplacer(pairs...).Replace(template), "\n")
}
