package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque backend identifier. The backend may use numbers or
// strings; the original JSON form is preserved on the way back out.
type ID struct {
	raw     string
	numeric bool
}

// NumericID builds an ID that serializes as a JSON number.
func NumericID(n int64) ID {
	return ID{raw: strconv.FormatInt(n, 10), numeric: true}
}

// StringID builds an ID that serializes as a JSON string.
func StringID(s string) ID {
	return ID{raw: s}
}

// ParseID interprets user input. Only canonical integers ("42", "-3") become
// numeric IDs; "007" or "+5" stay strings since they are not JSON numbers.
func ParseID(s string) ID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return NumericID(n)
	}
	return StringID(s)
}

func (id ID) String() string { return id.raw }

func (id ID) IsZero() bool { return id.raw == "" }

func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ID{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID{raw: n.String(), numeric: true}
	return nil
}
