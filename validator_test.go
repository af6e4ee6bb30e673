package notetag

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Validator_Should_Reject_Values_Not_Matching_Regex(t *testing.T) {
	reg := NewValidatorRegistry()
	if err := reg.RegisterRegex("hp", `^\d+$`, "a whole number"); err != nil {
		t.Fatalf("failed to register validator: %v", err)
	}

	if err := reg.ValidateTag("hp", StringValue("100"), Position{}); err != nil {
		t.Fatalf("unexpected error for valid value: %v", err)
	}

	err := reg.ValidateTag("HP", StringValue("lots"), Position{Line: 2, Column: 5})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	validationErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if validationErr.TagName != "HP" {
		t.Errorf("expected tag name 'HP', got %q", validationErr.TagName)
	}
	if !strings.Contains(validationErr.Error(), "a whole number") {
		t.Errorf("error message doesn't include validation description: %s", validationErr.Error())
	}
	if !strings.Contains(validationErr.Error(), "line 2, column 5") {
		t.Errorf("error message doesn't include position: %s", validationErr.Error())
	}

	if err := reg.ValidateTag("hp", FlagValue(), Position{}); err == nil {
		t.Fatal("a flag should not match a pattern")
	}
}

func Test_Validator_Should_Reject_Bad_Regex(t *testing.T) {
	reg := NewValidatorRegistry()
	err := reg.RegisterRegex("hp", `(`, "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hp")
}

func Test_Validator_Should_Support_Custom_Validation_Functions(t *testing.T) {
	reg := NewValidatorRegistry()
	reg.RegisterFunc("element", func(name string, v Value, pos Position) error {
		switch v.Text {
		case "fire", "ice":
			return nil
		}
		return NewValidationError(pos, name, "must be fire or ice", v.Text)
	})

	assert.NoError(t, reg.ValidateTag("element", StringValue("ice"), Position{}))
	var ve *ValidationError
	assert.ErrorAs(t, reg.ValidateTag("element", StringValue("mud"), Position{}), &ve)
}

func Test_KindValidator(t *testing.T) {
	cases := []struct {
		kind Kind
		ok   []Value
		bad  []Value
	}{
		{KindFlag, []Value{FlagValue()}, []Value{StringValue("x")}},
		{KindBool, []Value{FlagValue(), StringValue("true"), StringValue(" false")}, []Value{StringValue("yes")}},
		{KindInt, []Value{StringValue("12"), StringValue(" -3 ")}, []Value{StringValue("1.5"), FlagValue()}},
		{KindNumber, []Value{StringValue("1.5"), StringValue("7")}, []Value{StringValue("x"), FlagValue()}},
		{KindText, []Value{StringValue(""), StringValue("x")}, []Value{FlagValue()}},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			v := &KindValidator{Kind: tc.kind}
			for _, val := range tc.ok {
				assert.NoError(t, v.Validate("t", val, Position{}), "value %+v", val)
			}
			for _, val := range tc.bad {
				assert.Error(t, v.Validate("t", val, Position{}), "value %+v", val)
			}
		})
	}

	reg := NewValidatorRegistry()
	assert.Error(t, reg.RegisterKind("t", Kind("color")))
}

func Test_ValidatorRegistry_Unknown_Policy(t *testing.T) {
	reg := NewValidatorRegistry()
	require.NoError(t, reg.RegisterKind("boss", KindFlag))
	tags := Tags{"boss": FlagValue(), "mood": StringValue("calm")}

	assert.Empty(t, reg.ValidateTags(tags))
	assert.True(t, reg.Known("BOSS"))
	assert.False(t, reg.Known("mood"))

	reg.SetUnknownPolicy(UnknownReport)
	errs := reg.ValidateTags(tags)
	require.Len(t, errs, 1)
	var unknown *UnknownTagError
	require.True(t, errors.As(errs[0], &unknown))
	assert.Equal(t, "mood", unknown.TagName)
	assert.Equal(t, "unknown tag <mood>", unknown.Error())
}

func Test_ValidateTags_Should_Report_In_Name_Order(t *testing.T) {
	reg := NewValidatorRegistry()
	require.NoError(t, reg.RegisterKind("b", KindInt))
	require.NoError(t, reg.RegisterKind("a", KindInt))
	errs := reg.ValidateTags(Tags{"b": StringValue("x"), "a": StringValue("y")})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "<a>")
	assert.Contains(t, errs[1].Error(), "<b>")
}

func Test_ParseUnknownTagPolicy(t *testing.T) {
	p, err := ParseUnknownTagPolicy("report")
	require.NoError(t, err)
	assert.Equal(t, UnknownReport, p)
	assert.Equal(t, "report", p.String())

	p, err = ParseUnknownTagPolicy("")
	require.NoError(t, err)
	assert.Equal(t, UnknownAllow, p)

	_, err = ParseUnknownTagPolicy("strict")
	assert.Error(t, err)
}
