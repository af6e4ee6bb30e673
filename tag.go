// Package notetag extracts <name>, <name:value> and <name: a, b>text</name>
// annotations from free text and paged host documents.
package notetag

// Annotation is the result of a single-tag extraction.
type Annotation struct {
	// Text is the body between <name> and </name>. Empty when the tag is not
	// closed or the body is empty.
	Text string
	// Params holds the comma-separated values after the colon of the opening
	// marker, each trimmed.
	Params []string
}

// ExtractTag finds the first annotation named name in text. It understands
//
//	<name: p1, p2, ...>text</name>
//	<name: p1, p2>
//	<name>text</name>
//	<name>
//
// Names are matched case-insensitively. ok is false when no opening marker
// for name exists.
func ExtractTag(text, name string) (Annotation, bool) {
	return ExtractTagWithDefaults(text, name, Annotation{})
}

// ExtractTagWithDefaults is ExtractTag with fallback values: defaults.Text and
// defaults.Params are kept when the match does not produce them. defaults is
// copied, never modified.
func ExtractTagWithDefaults(text, name string, defaults Annotation) (Annotation, bool) {
	end, raw, ok := findOpenTag(text, name)
	if !ok {
		return Annotation{}, false
	}

	result := Annotation{
		Text:   defaults.Text,
		Params: append([]string{}, defaults.Params...),
	}
	if body, closed := closedBody(text, end, name); closed && body != "" {
		result.Text = body
	}
	if raw != "" {
		result.Params = splitParams(raw)
	}
	return result, true
}

// Param returns the i-th parameter, or "" when there is none.
func (a Annotation) Param(i int) string {
	if i < 0 || i >= len(a.Params) {
		return ""
	}
	return a.Params[i]
}
