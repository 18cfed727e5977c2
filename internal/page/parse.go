package page

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidInput is the sentinel behind every ValidationError.
var ErrInvalidInput = errors.New("input must be an array of page objects")

//go:embed schema.json
var schemaSource string

const schemaURL = "pages.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaSource)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// Issue is a single problem found in the input, located by JSON pointer.
type Issue struct {
	Location string
	Message  string
}

// ValidationError reports input that is not a well-formed page array.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return ErrInvalidInput.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Parse validates data as a page array and decodes it.
// Nothing is decoded unless the whole document is valid.
func Parse(data []byte) ([]*Page, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var pages []*Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, &ValidationError{Issues: []Issue{{Message: err.Error()}}}
	}
	return pages, nil
}

// Validate checks data against the page tree schema without decoding pages.
func Validate(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return &ValidationError{Issues: []Issue{{Message: "not valid JSON: " + err.Error()}}}
	}
	if dec.More() {
		return &ValidationError{Issues: []Issue{{Message: "unexpected data after the page array"}}}
	}
	if _, ok := doc.([]any); !ok {
		return &ValidationError{Issues: []Issue{{Message: fmt.Sprintf("got %s, want array", jsonKind(doc))}}}
	}

	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling page schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		var schemaErr *jsonschema.ValidationError
		if errors.As(err, &schemaErr) {
			return &ValidationError{Issues: collectIssues(schemaErr)}
		}
		return &ValidationError{Issues: []Issue{{Message: err.Error()}}}
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
