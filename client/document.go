package client

import (
	"encoding/json"
	"strconv"
)

// Document is a loosely structured JSON object as returned by the vendor
// feed. Accessors return a zero value plus ok=false on a missing key or a
// shape mismatch instead of panicking, so mappers can treat malformed input
// as absence.
type Document map[string]any

// Doc returns a nested object.
func (d Document) Doc(key string) (Document, bool) {
	m, ok := d[key].(map[string]any)
	if !ok {
		return nil, false
	}
	return Document(m), true
}

// List returns a nested array.
func (d Document) List(key string) ([]any, bool) {
	l, ok := d[key].([]any)
	return l, ok
}

// Str returns a string field.
func (d Document) Str(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// Num returns a numeric field. The feed is inconsistent about numbers: some
// arrive as JSON numbers, some as numeric strings ("110.0"), so both are
// accepted.
func (d Document) Num(key string) (float64, bool) {
	switch v := d[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Int returns a numeric field truncated to int, 0 when absent.
func (d Document) Int(key string) int {
	f, _ := d.Num(key)
	return int(f)
}

// Float returns a numeric field, 0 when absent.
func (d Document) Float(key string) float64 {
	f, _ := d.Num(key)
	return f
}

// JSONDoc decodes a field holding either an embedded JSON-string object or an
// inline object. Malformed content degrades to nil.
func (d Document) JSONDoc(key string) Document {
	switch v := d[key].(type) {
	case map[string]any:
		return Document(v)
	case string:
		var out map[string]any
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil
		}
		return Document(out)
	}
	return nil
}

// JSONList decodes a field holding an embedded JSON-string array or an inline
// array. Malformed content degrades to nil.
func (d Document) JSONList(key string) []any {
	switch v := d[key].(type) {
	case []any:
		return v
	case string:
		var out []any
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil
		}
		return out
	}
	return nil
}

// asDoc converts one element of a JSON array into a Document.
func asDoc(v any) (Document, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return Document(m), true
}

// floatList converts a JSON array into floats, nil on any non-numeric entry.
func floatList(v any) []float64 {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(raw))
	for _, e := range raw {
		f, ok := e.(float64)
		if !ok {
			return nil
		}
		out = append(out, f)
	}
	return out
}

// intSamples converts a JSON array into ints, skipping null entries.
func intSamples(v any) []int {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, e := range raw {
		if f, ok := e.(float64); ok {
			out = append(out, int(f))
		}
	}
	return out
}
