package notetag

import (
	"strings"
	"testing"
)

func Test_PositionAt_Should_Count_Lines_And_Runes(t *testing.T) {
	content := "first\nsécond <x>\nthird"
	cases := []struct {
		offset int
		want   Position
	}{
		{0, Position{Line: 1, Column: 1}},
		{5, Position{Line: 1, Column: 6}},
		{6, Position{Line: 2, Column: 1}},
		{strings.Index(content, "<"), Position{Line: 2, Column: 8}},
		{-4, Position{Line: 1, Column: 1}},
		{len(content) + 10, Position{Line: 3, Column: 6}},
	}
	for _, tc := range cases {
		if got := PositionAt(content, tc.offset); got != tc.want {
			t.Errorf("offset %d: want %v, got %v", tc.offset, tc.want, got)
		}
	}
}

func Test_ParseError_Should_Mark_The_Line_In_Context(t *testing.T) {
	content := "one\ntwo\nthree\nfour\nfive\nsix"
	err := NewParseError(Position{Line: 3, Column: 2}, "bad thing", content)

	msg := err.Error()
	if !strings.Contains(msg, "bad thing at line 3, column 2") {
		t.Fatalf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "-> 3: three") {
		t.Fatalf("context does not mark line 3: %s", msg)
	}
	if !strings.Contains(msg, "   1: one") || !strings.Contains(msg, "   5: five") {
		t.Fatalf("context lacks surrounding lines: %s", msg)
	}
	if strings.Contains(msg, "six") {
		t.Fatalf("context should stop two lines after the error: %s", msg)
	}
}

func Test_ParseError_Without_Context(t *testing.T) {
	err := NewParseError(Position{Line: 1, Column: 1}, "empty", "")
	if err.Error() != "empty at line 1, column 1" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func Test_ValidationError_Without_Position(t *testing.T) {
	err := NewValidationError(Position{}, "hp", "expected a int value", "x")
	if err.Error() != "validation failed for tag <hp>: expected a int value" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
