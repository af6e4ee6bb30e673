package notetag

import "strings"

// EventSink receives TagEvents from a Scanner.
type EventSink interface {
	OnTag(ev TagEvent)
}

// EventSinkFunc adapts a plain function to an EventSink.
type EventSinkFunc func(ev TagEvent)

func (f EventSinkFunc) OnTag(ev TagEvent) { f(ev) }

// HandlerSink routes events to handlers registered by tag name. Names are
// matched case-insensitively; events without a handler go to the fallback,
// if any.
type HandlerSink struct {
	byName   map[string][]func(TagEvent)
	fallback func(TagEvent)
}

// NewHandlerSink creates an empty HandlerSink.
func NewHandlerSink() *HandlerSink {
	return &HandlerSink{byName: map[string][]func(TagEvent){}}
}

// RegisterHandler adds fn for name. Several handlers may share a name; they
// run in registration order.
func (s *HandlerSink) RegisterHandler(name string, fn func(TagEvent)) {
	key := strings.ToLower(name)
	s.byName[key] = append(s.byName[key], fn)
}

// SetFallback sets the handler for names with no registered handler.
func (s *HandlerSink) SetFallback(fn func(TagEvent)) {
	s.fallback = fn
}

func (s *HandlerSink) OnTag(ev TagEvent) {
	handlers, ok := s.byName[strings.ToLower(ev.Name)]
	if !ok {
		if s.fallback != nil {
			s.fallback(ev)
		}
		return
	}
	for _, h := range handlers {
		h(ev)
	}
}

// Collect returns a sink that appends every event to *out.
func Collect(out *[]TagEvent) EventSink {
	return EventSinkFunc(func(ev TagEvent) { *out = append(*out, ev) })
}
