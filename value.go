package notetag

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is the value of a document tag: the raw text after the colon of
// <name:text>, or a flag for a bare <name>.
type Value struct {
	Text string
	Flag bool
}

// StringValue returns the value of a <name:s> marker.
func StringValue(s string) Value { return Value{Text: s} }

// FlagValue returns the value of a bare <name> marker.
func FlagValue() Value { return Value{Flag: true} }

// String returns the raw text, or "true" for a flag.
func (v Value) String() string {
	if v.Flag {
		return "true"
	}
	return v.Text
}

// Bool reports whether the value reads as true. Flags are true; text is true
// only when it is "true" once trimmed.
func (v Value) Bool() bool {
	if v.Flag {
		return true
	}
	return strings.TrimSpace(v.Text) == "true"
}

// Int parses the trimmed text as a base-10 integer.
func (v Value) Int() (int, error) {
	if v.Flag {
		return 0, fmt.Errorf("flag tag has no numeric value")
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.Text))
	if err != nil {
		return 0, fmt.Errorf("parse int %q: %w", v.Text, err)
	}
	return n, nil
}

// Float parses the trimmed text as a float64.
func (v Value) Float() (float64, error) {
	if v.Flag {
		return 0, fmt.Errorf("flag tag has no numeric value")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
	if err != nil {
		return 0, fmt.Errorf("parse float %q: %w", v.Text, err)
	}
	return f, nil
}

// MarshalJSON encodes a flag as true and text as a string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Flag {
		return []byte("true"), nil
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts true or a string.
func (v *Value) UnmarshalJSON(b []byte) error {
	var flag bool
	if err := json.Unmarshal(b, &flag); err == nil {
		if !flag {
			return fmt.Errorf("tag value cannot be false")
		}
		*v = FlagValue()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("tag value must be true or a string: %w", err)
	}
	*v = StringValue(s)
	return nil
}

// MarshalYAML encodes a flag as true and text as a string.
func (v Value) MarshalYAML() (any, error) {
	if v.Flag {
		return true, nil
	}
	return v.Text, nil
}

// Tags maps tag names, case-sensitive as written, to their values.
type Tags map[string]Value

// ScanTags returns every <name> and <name:value> marker in text. Later
// markers overwrite earlier ones with the same name.
func ScanTags(text string) Tags {
	tags := Tags{}
	tags.scan(text)
	return tags
}

func (t Tags) scan(text string) {
	scanMarkers(text, func(m marker) {
		t[m.name] = m.value
	})
}

// Get looks name up exactly, then case-insensitively. When several names
// differ only by case, the lowest in sort order wins.
func (t Tags) Get(name string) (Value, bool) {
	if v, ok := t[name]; ok {
		return v, true
	}
	for _, k := range t.Names() {
		if strings.EqualFold(k, name) {
			return t[k], true
		}
	}
	return Value{}, false
}

// Has reports whether Get would find name.
func (t Tags) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Names returns the tag names in sorted order.
func (t Tags) Names() []string {
	names := make([]string, 0, len(t))
	for k := range t {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
