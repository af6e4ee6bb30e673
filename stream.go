package notetag

import (
	"bufio"
	"io"
	"strings"
)

// TagEvent is emitted for every marker found by a Scanner.
type TagEvent struct {
	Name  string
	Value Value
	Pos   Position // position of the opening '<'
}

const defaultMaxMarkerLen = 64 * 1024

// Scanner finds markers in a stream without holding the whole input.
type Scanner struct {
	maxMarkerLen int
}

// NewScanner returns a Scanner configured by opts.
func NewScanner(opts ...func(*Scanner)) *Scanner {
	s := &Scanner{maxMarkerLen: defaultMaxMarkerLen}
	for _, o := range opts {
		o(s)
	}
	return s
}

// WithMaxMarkerLen bounds how many bytes an unterminated marker may buffer
// before its '<' is skipped as plain text.
func WithMaxMarkerLen(n int) func(*Scanner) {
	return func(s *Scanner) {
		if n > 0 {
			s.maxMarkerLen = n
		}
	}
}

var defaultScanner = NewScanner()

// ProcessStream reads r and emits a TagEvent per marker using the default
// Scanner.
func ProcessStream(r io.Reader, sink EventSink) error {
	return defaultScanner.ProcessStream(r, sink)
}

type streamState struct {
	pending string
	pos     Position
}

func (st *streamState) consume(n int) {
	st.pos = st.pos.advance(st.pending[:n])
	st.pending = st.pending[n:]
}

// ProcessStream reads from r in chunks and emits markers as soon as they are
// complete. At EOF, it drains whatever remains in the buffer.
func (s *Scanner) ProcessStream(r io.Reader, sink EventSink) error {
	br := bufio.NewReader(r)
	st := &streamState{pos: Position{Line: 1, Column: 1}}
	chunk := make([]byte, 4096)

	for {
		n, err := br.Read(chunk)
		if n > 0 {
			st.pending += string(chunk[:n])
			for s.tryExtract(st, sink, false) {
			}
		}
		if err == io.EOF {
			for s.tryExtract(st, sink, true) {
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// tryExtract consumes one unit from the buffer: plain text up to the next
// '<', a marker, or a '<' that cannot start one. It returns false when it
// needs more input or the buffer is spent.
func (s *Scanner) tryExtract(st *streamState, sink EventSink, eof bool) bool {
	b := st.pending
	if len(b) == 0 {
		return false
	}

	k := strings.IndexByte(b, '<')
	if k < 0 {
		st.consume(len(b))
		return false
	}
	if k > 0 {
		st.consume(k)
		return true
	}

	m, status := scanMarkerAt(b, 0)
	switch status {
	case scanHit:
		sink.OnTag(TagEvent{Name: m.name, Value: m.value, Pos: st.pos})
		st.consume(m.end)
		return true
	case scanMiss:
		st.consume(1)
		return true
	}

	// Unterminated marker.
	if eof {
		st.consume(len(b))
		return false
	}
	if len(b) > s.maxMarkerLen {
		// A short scan means b holds no '>' at all, so no '<' in it can be
		// closed yet. Keep only the last one.
		if p := strings.LastIndexByte(b, '<'); p > 0 {
			st.consume(p)
		} else {
			st.consume(len(b))
		}
		return true
	}
	return false
}
