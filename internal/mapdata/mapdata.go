// Package mapdata loads the host engine's event data files into notetag
// documents.
package mapdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/samber/oops"

	"github.com/grahms/notetag"
)

// Kind identifies the layout of a data file.
type Kind string

// Data file kinds.
const (
	KindMap    Kind = "map"    // MapNNN.json: {"events": [null, {...}]}
	KindTroops Kind = "troops" // Troops.json: [null, {...}]
)

// DefaultPattern matches every map file and the troops file.
const DefaultPattern = "{Map[0-9][0-9][0-9].json,Troops.json}"

var (
	mapName    = glob.MustCompile("Map[0-9][0-9][0-9].json")
	troopsName = glob.MustCompile("Troops.json")
)

// Source is one paged object from a data file: a map event or a troop.
type Source struct {
	Kind     Kind
	File     string // base name of the data file
	ID       int
	Name     string
	Note     string
	Meta     notetag.Tags // markers of Note, filled by Extract
	Document notetag.Document
}

// Label identifies the source in logs and reports.
func (s *Source) Label() string {
	return fmt.Sprintf("%s#%d", s.File, s.ID)
}

// Extract fills page tags with x and note meta with notetag.ScanTags.
func (s *Source) Extract(x *notetag.Extractor) {
	x.ExtractDocument(&s.Document)
	s.Meta = notetag.ScanTags(s.Note)
}

type sourceData struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Note  string          `json:"note"`
	Pages []*notetag.Page `json:"pages"`
}

type mapData struct {
	Events []*sourceData `json:"events"`
}

// KindOf returns the kind of a data file from its base name.
func KindOf(path string) (Kind, bool) {
	base := filepath.Base(path)
	switch {
	case mapName.Match(base):
		return KindMap, true
	case troopsName.Match(base):
		return KindTroops, true
	}
	return "", false
}

// Load reads and decodes one data file.
func Load(path string) ([]*Source, error) {
	kind, ok := KindOf(path)
	if !ok {
		return nil, oops.Code("MAPDATA_KIND").With("file", path).Errorf("unrecognized data file name")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("MAPDATA_READ").With("file", path).Wrapf(err, "read data file")
	}
	return Decode(kind, filepath.Base(path), data)
}

// Decode parses data as a file of the given kind. Null entries, which the
// host uses as placeholders, are skipped.
func Decode(kind Kind, file string, data []byte) ([]*Source, error) {
	var entries []*sourceData
	var err error
	switch kind {
	case KindMap:
		var m mapData
		err = json.Unmarshal(data, &m)
		entries = m.Events
	case KindTroops:
		err = json.Unmarshal(data, &entries)
	default:
		return nil, oops.Code("MAPDATA_KIND").With("kind", kind).Errorf("unknown data kind")
	}
	if err != nil {
		return nil, oops.Code("MAPDATA_DECODE").
			With("file", file).
			Wrap(decodeError(data, err))
	}

	sources := make([]*Source, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		sources = append(sources, &Source{
			Kind:     kind,
			File:     file,
			ID:       e.ID,
			Name:     e.Name,
			Note:     e.Note,
			Document: notetag.Document{Pages: e.Pages},
		})
	}
	return sources, nil
}

// decodeError attaches a line/column to JSON errors that carry an offset.
func decodeError(data []byte, err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		// Offset counts the offending byte.
		pos := notetag.PositionAt(string(data), int(syntaxErr.Offset)-1)
		return notetag.NewParseError(pos, syntaxErr.Error(), string(data))
	case errors.As(err, &typeErr):
		return notetag.NewParseError(notetag.PositionAt(string(data), int(typeErr.Offset)), typeErr.Error(), string(data))
	}
	return err
}

// Discover lists the files in dir whose base name matches pattern, in name
// order. An empty pattern means DefaultPattern.
func Discover(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, oops.Code("MAPDATA_PATTERN").With("pattern", pattern).Wrapf(err, "compile file pattern")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, oops.Code("MAPDATA_READ").With("dir", dir).Wrapf(err, "list data directory")
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !g.Match(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
