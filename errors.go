package notetag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position represents a position in the input.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, in runes
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// PositionAt converts a byte offset in content into a Position. Offsets past
// the end are clamped.
func PositionAt(content string, offset int) Position {
	offset = min(max(offset, 0), len(content))
	return Position{Line: 1, Column: 1}.advance(content[:offset])
}

// advance moves p past s.
func (p Position) advance(s string) Position {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
		s = s[size:]
	}
	return p
}

// ParseError is the base error type for errors tied to a place in the input.
type ParseError struct {
	Pos     Position // Position where the error occurred
	Message string   // Error message
	Context string   // Surrounding content for context
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s at %s\nContext: %s", e.Message, e.Pos, e.Context)
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// ValidationError represents a tag value rejected by a Validator.
type ValidationError struct {
	ParseError
	TagName string // Name of the tag that failed validation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("validation failed for tag <%s>: %s", e.TagName, e.Message)
	}
	return fmt.Sprintf("validation failed for tag <%s> at %s: %s", e.TagName, e.Pos, e.Message)
}

// UnknownTagError reports a tag with no registered validator under
// UnknownReport.
type UnknownTagError struct {
	ParseError
	TagName string
}

// Error implements the error interface.
func (e *UnknownTagError) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("unknown tag <%s>", e.TagName)
	}
	return fmt.Sprintf("unknown tag <%s> at %s", e.TagName, e.Pos)
}

// NewParseError creates a new ParseError with context.
func NewParseError(pos Position, message, context string) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: message,
		Context: extractContext(context, pos),
	}
}

// NewValidationError creates a new ValidationError. value is shown as context.
func NewValidationError(pos Position, tagName, message, value string) *ValidationError {
	return &ValidationError{
		ParseError: ParseError{
			Pos:     pos,
			Message: message,
			Context: value,
		},
		TagName: tagName,
	}
}

// NewUnknownTagError creates a new UnknownTagError.
func NewUnknownTagError(pos Position, tagName string) *UnknownTagError {
	return &UnknownTagError{
		ParseError: ParseError{
			Pos:     pos,
			Message: "no validator registered for tag",
		},
		TagName: tagName,
	}
}

// extractContext extracts a snippet of text around the error position for context.
// It tries to include a few lines before and after the error.
func extractContext(content string, pos Position) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return content
	}

	startLine := max(0, pos.Line-3)
	endLine := min(len(lines)-1, pos.Line+1)

	var contextBuilder strings.Builder
	for i := startLine; i <= endLine; i++ {
		lineNum := i + 1
		if lineNum == pos.Line {
			contextBuilder.WriteString(fmt.Sprintf("-> %d: %s\n", lineNum, lines[i]))

			if pos.Column <= utf8.RuneCountInString(lines[i])+1 {
				contextBuilder.WriteString(strings.Repeat(" ", pos.Column+5) + "^\n")
			}
		} else {
			contextBuilder.WriteString(fmt.Sprintf("   %d: %s\n", lineNum, lines[i]))
		}
	}

	return contextBuilder.String()
}
