package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"volunteerhub/internal/domain"
)

// FieldError is a single schema violation at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// OutputError reports model output that is not JSON or does not satisfy the
// expected schema. It matches domain.ErrInvalidModelOutput.
type OutputError struct {
	Errors []FieldError
	Cause  error
	Raw    string
}

func (e *OutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parsing model JSON output: %v (raw: %s)", e.Cause, truncate(e.Raw, 200))
	}
	var sb strings.Builder
	sb.WriteString("model output failed schema validation:")
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, " %d. %s: %s;", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

func (e *OutputError) Unwrap() error {
	return e.Cause
}

func (e *OutputError) Is(target error) bool {
	return target == domain.ErrInvalidModelOutput
}

// CleanJSONBlock removes markdown code fences the model may wrap around JSON.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// drop the info string (json, JSON, ...) up to the first newline
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		if info := strings.TrimSpace(text[:nl]); !strings.ContainsAny(info, "{[") {
			text = text[nl+1:]
		}
	}
	if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
		text = text[4:]
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// Decode strips code fences from raw, validates it against schema and decodes
// it into out. Any failure is an *OutputError.
func Decode(schema, raw string, out interface{}) error {
	cleaned := CleanJSONBlock(raw)
	if !json.Valid([]byte(cleaned)) {
		return &OutputError{Cause: fmt.Errorf("not valid JSON"), Raw: raw}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil {
		return &OutputError{Cause: fmt.Errorf("schema validation failed during load: %w", err), Raw: raw}
	}
	if !result.Valid() {
		outErr := &OutputError{Raw: raw, Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			outErr.Errors = append(outErr.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return outErr
	}

	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return &OutputError{Cause: err, Raw: raw}
	}
	return nil
}

// NormalizePeople trims every string field and guarantees a non-nil
// contributions slice. Contributions with a blank highlight are dropped.
func NormalizePeople(people []domain.ExtractedPerson) []domain.ExtractedPerson {
	out := make([]domain.ExtractedPerson, 0, len(people))
	for _, p := range people {
		n := domain.ExtractedPerson{
			Name:          strings.TrimSpace(p.Name),
			Designation:   strings.TrimSpace(p.Designation),
			Identifier:    strings.ToUpper(strings.TrimSpace(p.Identifier)),
			Contributions: make([]domain.Contribution, 0, len(p.Contributions)),
		}
		for _, c := range p.Contributions {
			if h := strings.TrimSpace(c.Highlight); h != "" {
				n.Contributions = append(n.Contributions, domain.Contribution{Highlight: h})
			}
		}
		out = append(out, n)
	}
	return out
}
