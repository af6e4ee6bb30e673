package notetag

import (
	"io"
	"log/slog"
)

// Command codes of the host's comment instructions.
const (
	CodeComment         = 108 // first line of a comment
	CodeCommentContinue = 408 // each following line
)

// Document is a paged host document, such as an event.
type Document struct {
	Pages []*Page `json:"pages"`
}

// Page is one page of a Document. Tags is filled by extraction.
type Page struct {
	List []Command `json:"list"`
	Tags Tags      `json:"-"`
}

// Command is a single instruction of a page.
type Command struct {
	Code       int   `json:"code"`
	Indent     int   `json:"indent"`
	Parameters []any `json:"parameters"`
}

// Text returns the first parameter when it is a string.
func (c Command) Text() (string, bool) {
	if len(c.Parameters) == 0 {
		return "", false
	}
	s, ok := c.Parameters[0].(string)
	return s, ok
}

// Extractor fills page tag maps from comment commands.
type Extractor struct {
	codes map[int]struct{}
	log   *slog.Logger
}

// NewExtractor returns an Extractor for the default comment codes, adjusted
// by opts.
func NewExtractor(opts ...func(*Extractor)) *Extractor {
	x := &Extractor{
		codes: map[int]struct{}{CodeComment: {}, CodeCommentContinue: {}},
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(x)
	}
	return x
}

// WithCommentCodes replaces the set of command codes whose text is scanned.
func WithCommentCodes(codes ...int) func(*Extractor) {
	return func(x *Extractor) {
		x.codes = make(map[int]struct{}, len(codes))
		for _, c := range codes {
			x.codes[c] = struct{}{}
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(log *slog.Logger) func(*Extractor) {
	return func(x *Extractor) {
		if log != nil {
			x.log = log
		}
	}
}

var defaultExtractor = NewExtractor()

// ExtractDocumentTags fills Tags on every page of doc using the default
// comment codes. A nil document or one without pages is left alone.
func ExtractDocumentTags(doc *Document) {
	defaultExtractor.ExtractDocument(doc)
}

// ExtractDocument scans the comment commands of every page of doc and stores
// each marker in that page's Tags. An existing map is reused, so markers are
// merged into it; later markers win.
func (x *Extractor) ExtractDocument(doc *Document) {
	if doc == nil {
		return
	}
	for i, page := range doc.Pages {
		if page == nil {
			continue
		}
		x.ExtractPage(page)
		x.log.Debug("page tags extracted", "page", i, "tags", len(page.Tags))
	}
}

// ExtractPage scans one page.
func (x *Extractor) ExtractPage(page *Page) {
	if page.Tags == nil {
		page.Tags = Tags{}
	}
	for _, cmd := range page.List {
		if !x.IsComment(cmd.Code) {
			continue
		}
		if text, ok := cmd.Text(); ok {
			page.Tags.scan(text)
		}
	}
}

// IsComment reports whether code is one of the scanned command codes.
func (x *Extractor) IsComment(code int) bool {
	_, ok := x.codes[code]
	return ok
}
