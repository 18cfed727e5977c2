package page

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Metadata is a page's fields minus its children, in source order.
type Metadata []Field

// Get returns the raw value of key, if present.
func (m Metadata) Get(key string) (json.RawMessage, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON encodes the metadata as a JSON object in source key order.
func (m Metadata) MarshalJSON() ([]byte, error) {
	return marshalFields(m)
}

// MarshalIndent encodes the metadata as a 2-space indented JSON object
// followed by a newline.
func (m Metadata) MarshalIndent() ([]byte, error) {
	compact, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("indenting metadata: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func marshalFields(fields []Field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		value := f.Value
		if len(value) == 0 {
			value = json.RawMessage("null")
		}
		if err := json.Compact(&buf, value); err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", f.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
