package notetag

import (
	"fmt"
	"regexp"
	"strings"
)

// Validator checks the value of a tag.
type Validator interface {
	// Validate returns nil if v is acceptable for the tag called name.
	Validate(name string, v Value, pos Position) error
}

// RegexValidator validates tag text against a regular expression.
type RegexValidator struct {
	Pattern     *regexp.Regexp
	Description string // Human-readable description of what the pattern expects
}

// Validate implements the Validator interface. Flags never match a pattern.
func (v *RegexValidator) Validate(name string, val Value, pos Position) error {
	if val.Flag || !v.Pattern.MatchString(val.Text) {
		return NewValidationError(
			pos,
			name,
			fmt.Sprintf("value does not match expected pattern: %s", v.Description),
			val.String(),
		)
	}
	return nil
}

// FuncValidator uses a custom function to validate a value.
type FuncValidator struct {
	ValidateFunc func(name string, v Value, pos Position) error
}

// Validate implements the Validator interface.
func (v *FuncValidator) Validate(name string, val Value, pos Position) error {
	return v.ValidateFunc(name, val, pos)
}

// Kind is the expected shape of a tag value.
type Kind string

const (
	KindFlag   Kind = "flag"   // bare <name>
	KindBool   Kind = "bool"   // flag, or text "true"/"false"
	KindInt    Kind = "int"    // base-10 integer text
	KindNumber Kind = "number" // any float text
	KindText   Kind = "text"   // <name:...> with any text
)

// KindValidator checks that a value has the given Kind.
type KindValidator struct {
	Kind Kind
}

// Validate implements the Validator interface.
func (v *KindValidator) Validate(name string, val Value, pos Position) error {
	var ok bool
	switch v.Kind {
	case KindFlag:
		ok = val.Flag
	case KindBool:
		t := strings.TrimSpace(val.Text)
		ok = val.Flag || t == "true" || t == "false"
	case KindInt:
		_, err := val.Int()
		ok = err == nil
	case KindNumber:
		_, err := val.Float()
		ok = err == nil
	case KindText:
		ok = !val.Flag
	default:
		return fmt.Errorf("unknown tag kind %q", v.Kind)
	}
	if !ok {
		return NewValidationError(pos, name, fmt.Sprintf("expected a %s value", v.Kind), val.String())
	}
	return nil
}

// ValidatorRegistry manages validators for different tag names.
type ValidatorRegistry struct {
	validators map[string][]Validator
	policy     UnknownTagPolicy
}

// NewValidatorRegistry creates a new validator registry.
func NewValidatorRegistry() *ValidatorRegistry {
	return &ValidatorRegistry{
		validators: make(map[string][]Validator),
	}
}

// SetUnknownPolicy sets how tags without validators are treated.
func (r *ValidatorRegistry) SetUnknownPolicy(p UnknownTagPolicy) {
	r.policy = p
}

// Register adds a validator for a tag name.
// Multiple validators can be registered for the same name.
func (r *ValidatorRegistry) Register(name string, validator Validator) {
	if validator == nil {
		return
	}
	name = canonicalName(name)
	r.validators[name] = append(r.validators[name], validator)
}

// RegisterRegex creates and registers a RegexValidator.
func (r *ValidatorRegistry) RegisterRegex(name, pattern, description string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid regex pattern for tag %s: %w", name, err)
	}

	r.Register(name, &RegexValidator{
		Pattern:     re,
		Description: description,
	})
	return nil
}

// RegisterFunc creates and registers a FuncValidator.
func (r *ValidatorRegistry) RegisterFunc(name string, validateFunc func(string, Value, Position) error) {
	r.Register(name, &FuncValidator{
		ValidateFunc: validateFunc,
	})
}

// RegisterKind creates and registers a KindValidator.
func (r *ValidatorRegistry) RegisterKind(name string, kind Kind) error {
	switch kind {
	case KindFlag, KindBool, KindInt, KindNumber, KindText:
	default:
		return fmt.Errorf("unknown tag kind %q for tag %s", kind, name)
	}
	r.Register(name, &KindValidator{Kind: kind})
	return nil
}

// Known reports whether any validator is registered for name.
func (r *ValidatorRegistry) Known(name string) bool {
	_, ok := r.validators[canonicalName(name)]
	return ok
}

// ValidateTag validates one tag value.
// Returns nil if valid, or the first validator error.
func (r *ValidatorRegistry) ValidateTag(name string, v Value, pos Position) error {
	validators, ok := r.validators[canonicalName(name)]
	if !ok {
		if r.policy == UnknownReport {
			return NewUnknownTagError(pos, name)
		}
		return nil
	}

	for _, validator := range validators {
		if err := validator.Validate(name, v, pos); err != nil {
			return err
		}
	}

	return nil
}

// ValidateTags validates every tag of a map, in name order.
func (r *ValidatorRegistry) ValidateTags(tags Tags) []error {
	var errs []error
	for _, name := range tags.Names() {
		if err := r.ValidateTag(name, tags[name], Position{}); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Tag names are validated case-insensitively.
func canonicalName(name string) string {
	return strings.ToLower(name)
}
