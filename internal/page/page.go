// Package page models the ClickUp doc page tree consumed by the exporter.
//
// A Page keeps every key the API sent, in the order it was sent, so the
// metadata sidecar written next to each Markdown file reproduces the source
// object exactly (minus its children). The typed fields are views over those
// raw values for the handful of keys the exporter acts on.
package page

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Keys the exporter interprets. Everything else is carried verbatim.
const (
	KeyID      = "id"
	KeyName    = "name"
	KeyContent = "content"
	KeyPages   = "pages"
)

// Field is a single key/value pair of a page object, value kept as raw JSON.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Page is one node of a doc's page tree.
type Page struct {
	ID      string
	Name    *string
	Content *string
	Pages   []*Page

	fields []Field
}

// New returns a page with only an id. Name, Content and Pages may be set
// directly afterwards.
func New(id string) *Page {
	return &Page{ID: id}
}

// EffectiveName is the label used to name files: the page name when present
// and non-empty, otherwise its id.
func (p *Page) EffectiveName() string {
	if p.Name != nil && *p.Name != "" {
		return *p.Name
	}
	return p.ID
}

// HasContent reports whether the page carries a body. An empty body counts.
func (p *Page) HasContent() bool {
	return p.Content != nil
}

// HasChildren reports whether the page has at least one child page.
func (p *Page) HasChildren() bool {
	return len(p.Pages) > 0
}

// Fields returns the page's source fields in source order.
func (p *Page) Fields() []Field {
	if p.fields == nil {
		return p.synthesizeFields()
	}
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

// Metadata returns the page's fields without its children.
func (p *Page) Metadata() Metadata {
	fields := p.Fields()
	meta := make(Metadata, 0, len(fields))
	for _, f := range fields {
		if f.Key == KeyPages {
			continue
		}
		meta = append(meta, f)
	}
	return meta
}

// synthesizeFields builds fields for pages constructed in Go rather than
// decoded from JSON.
func (p *Page) synthesizeFields() []Field {
	fields := []Field{{Key: KeyID, Value: mustMarshal(p.ID)}}
	if p.Name != nil {
		fields = append(fields, Field{Key: KeyName, Value: mustMarshal(*p.Name)})
	}
	if p.Content != nil {
		fields = append(fields, Field{Key: KeyContent, Value: mustMarshal(*p.Content)})
	}
	if p.Pages != nil {
		fields = append(fields, Field{Key: KeyPages, Value: mustMarshal(p.Pages)})
	}
	return fields
}

// UnmarshalJSON decodes a page object, keeping every field in order.
// A repeated key keeps its first position and its last value.
func (p *Page) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading page: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("page must be a JSON object")
	}

	*p = Page{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading page key: %w", err)
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("reading page field %q: %w", key, err)
		}
		p.setField(key, raw)
	}

	return p.bindFields()
}

// MarshalJSON encodes the page with its fields in source order.
func (p *Page) MarshalJSON() ([]byte, error) {
	return marshalFields(p.Fields())
}

func (p *Page) setField(key string, value json.RawMessage) {
	for i := range p.fields {
		if p.fields[i].Key == key {
			p.fields[i].Value = value
			return
		}
	}
	p.fields = append(p.fields, Field{Key: key, Value: value})
}

// bindFields fills the typed view from the raw fields.
func (p *Page) bindFields() error {
	for _, f := range p.fields {
		var err error
		switch f.Key {
		case KeyID:
			p.ID, err = decodeID(f.Value)
		case KeyName:
			p.Name, err = decodeOptionalString(f.Value)
		case KeyContent:
			p.Content, err = decodeOptionalString(f.Value)
		case KeyPages:
			p.Pages, err = decodeChildren(f.Value)
		}
		if err != nil {
			return fmt.Errorf("page field %q: %w", f.Key, err)
		}
	}
	if p.ID == "" {
		return errors.New("page is missing an id")
	}
	return nil
}

// decodeID accepts a string or a number; numbers keep their literal form.
func decodeID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if _, perr := strconv.ParseFloat(n.String(), 64); perr == nil {
			return n.String(), nil
		}
	}
	return "", errors.New("id must be a string or a number")
}

func decodeOptionalString(raw json.RawMessage) (*string, error) {
	if isNull(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.New("must be a string or null")
	}
	return &s, nil
}

func decodeChildren(raw json.RawMessage) ([]*Page, error) {
	if isNull(raw) {
		return nil, nil
	}
	var children []*Page
	if err := json.Unmarshal(raw, &children); err != nil {
		return nil, err
	}
	for i, child := range children {
		if child == nil {
			return nil, fmt.Errorf("child %d is null", i)
		}
	}
	return children, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal page field: %v", err))
	}
	return data
}
