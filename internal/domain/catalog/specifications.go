package catalog

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SpecEntry is a single product specification
type SpecEntry struct {
	Key   string
	Value string
}

// Specifications is an ordered string-to-string association. The
// storefront stored these as an open-ended document map; order is
// preserved here so the admin UI renders them as entered.
// Stored as a jsonb column.
type Specifications []SpecEntry

// Get returns the value for a key and whether it was present
func (s Specifications) Get(key string) (string, bool) {
	for _, e := range s {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Set adds or replaces a key, keeping the original position on replace
func (s Specifications) Set(key, value string) Specifications {
	for i := range s {
		if s[i].Key == key {
			s[i].Value = value
			return s
		}
	}
	return append(s, SpecEntry{Key: key, Value: value})
}

// Remove deletes a key if present
func (s Specifications) Remove(key string) Specifications {
	for i := range s {
		if s[i].Key == key {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// MarshalJSON renders the specifications as a JSON object in insertion order
func (s Specifications) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object preserving key order
func (s *Specifications) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("specifications must be a JSON object")
	}

	out := make(Specifications, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("specification key must be a string")
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("specification %q must have a string value: %w", key, err)
		}
		out = append(out, SpecEntry{Key: key, Value: value})
	}

	*s = out
	return nil
}

// Value implements driver.Valuer for jsonb storage
func (s Specifications) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for jsonb retrieval
func (s *Specifications) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Specifications", value)
	}
	if len(data) == 0 {
		*s = nil
		return nil
	}
	return s.UnmarshalJSON(data)
}
