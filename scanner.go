package notetag

import "strings"

// marker is one <name> or <name:value> occurrence found by the bulk scanner.
type marker struct {
	name  string
	value Value
	start int // offset of '<'
	end   int // offset just past '>'
}

type scanStatus int

const (
	scanMiss  scanStatus = iota // no marker starts at this '<'
	scanHit                     // marker read
	scanShort                   // no '>' follows, so nothing at or after this offset can match
)

// scanMarkerAt reads a bulk marker starting at s[i], which must be '<'.
//
// Grammar: '<' name ( ':' value | rest ) '>' where name is one or more bytes
// other than '<', '>' and ':', value is any run of non-'>' bytes and rest is
// discarded. Without a colon the marker is a flag.
func scanMarkerAt(s string, i int) (marker, scanStatus) {
	j := i + 1
	for j < len(s) && s[j] != '<' && s[j] != '>' && s[j] != ':' {
		j++
	}
	if j >= len(s) {
		return marker{}, scanShort
	}
	if j == i+1 {
		return marker{}, scanMiss
	}
	name := s[i+1 : j]

	if s[j] == ':' {
		k := strings.IndexByte(s[j+1:], '>')
		if k < 0 {
			return marker{}, scanShort
		}
		gt := j + 1 + k
		return marker{name: name, value: StringValue(s[j+1 : gt]), start: i, end: gt + 1}, scanHit
	}

	// s[j] is '>' or '<'; anything up to the next '>' belongs to the marker.
	k := strings.IndexByte(s[j:], '>')
	if k < 0 {
		return marker{}, scanShort
	}
	return marker{name: name, value: FlagValue(), start: i, end: j + k + 1}, scanHit
}

// scanMarkers calls yield for every non-overlapping marker in s, left to right.
// The cursor only moves forward, so the scan is linear in len(s).
func scanMarkers(s string, yield func(marker)) {
	i := 0
	for i < len(s) {
		k := strings.IndexByte(s[i:], '<')
		if k < 0 {
			return
		}
		i += k
		m, st := scanMarkerAt(s, i)
		switch st {
		case scanHit:
			yield(m)
			i = m.end
		case scanMiss:
			i++
		case scanShort:
			return
		}
	}
}

// findOpenTag locates the first opening marker for name (case-insensitive):
// '<' name [blanks ':' raw] blanks '>'. It returns the offset just past '>'
// and the raw parameter text between the colon and '>'.
//
// Every candidate needs a '>' after its '<', so only candidates before the
// last '>' are tried. A colon candidate before it always finds its '>', which
// keeps the scan linear.
func findOpenTag(s, name string) (end int, raw string, ok bool) {
	last := strings.LastIndexByte(s, '>')
	for i := 0; i < last; i++ {
		k := strings.IndexByte(s[i:last], '<')
		if k < 0 {
			return 0, "", false
		}
		i += k
		if end, raw, ok := openTagAt(s, i, name); ok {
			return end, raw, true
		}
	}
	return 0, "", false
}

func openTagAt(s string, i int, name string) (int, string, bool) {
	j := i + 1
	if len(s)-j < len(name) || !strings.EqualFold(s[j:j+len(name)], name) {
		return 0, "", false
	}
	j = skipBlanks(s, j+len(name))
	if j >= len(s) {
		return 0, "", false
	}
	switch s[j] {
	case ':':
		k := strings.IndexByte(s[j+1:], '>')
		if k < 0 {
			return 0, "", false
		}
		return j + 1 + k + 1, s[j+1 : j+1+k], true
	case '>':
		return j + 1, "", true
	}
	return 0, "", false
}

// closedBody reads the body that follows an opening marker: a run without
// '<' immediately followed by "</name>".
func closedBody(s string, from int, name string) (string, bool) {
	k := strings.IndexByte(s[from:], '<')
	if k < 0 {
		return "", false
	}
	p := from + k
	q := p + 2 + len(name)
	if q >= len(s) || s[p+1] != '/' || s[q] != '>' || !strings.EqualFold(s[p+2:q], name) {
		return "", false
	}
	return s[from:p], true
}

func skipBlanks(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func splitParams(raw string) []string {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
