package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Prop is a single named property value.
type Prop struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Props is an ordered list of properties. Order is preserved so that
// rendered statements are stable and readable; a later value for an existing
// key replaces the earlier one in place.
type Props []Prop

// With returns props with key set to value.
func (p Props) With(key string, value any) Props {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Prop{Key: key, Value: value})
}

// Get returns the value stored under key.
func (p Props) Get(key string) (any, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return nil, false
}

// Keys returns the property names in order.
func (p Props) Keys() []string {
	keys := make([]string, len(p))
	for i, prop := range p {
		keys[i] = prop.Key
	}
	return keys
}

// Map copies the properties into a map.
func (p Props) Map() map[string]any {
	m := make(map[string]any, len(p))
	for _, prop := range p {
		m[prop.Key] = prop.Value
	}
	return m
}

// Clone returns an independent copy of the list.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	copy(out, p)
	return out
}

// MarshalJSON encodes props as a JSON object in declaration order.
func (p Props) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, prop := range p {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(prop.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(prop.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}

// UnmarshalJSON decodes a JSON object into props, keeping key order. Whole
// numbers decode as int64 so numeric keys compare equal to the planned
// values; other numbers decode as float64.
func (p *Props) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("props: expected object, got %v", tok)
	}

	var out Props
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("props: expected key, got %v", tok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("props: value for %q: %w", key, err)
		}
		out = out.With(key, normalizeNumber(raw))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = out
	return nil
}

func normalizeNumber(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		for i := range x {
			x[i] = normalizeNumber(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = normalizeNumber(x[k])
		}
		return x
	default:
		return v
	}
}
