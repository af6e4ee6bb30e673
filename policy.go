package notetag

import "fmt"

// UnknownTagPolicy decides what ValidateTags does with tags that have no
// registered validator.
type UnknownTagPolicy int

const (
	UnknownAllow  UnknownTagPolicy = iota // accept silently
	UnknownReport                         // return an UnknownTagError
)

// ParseUnknownTagPolicy maps "allow" and "report" to a policy.
func ParseUnknownTagPolicy(s string) (UnknownTagPolicy, error) {
	switch s {
	case "", "allow":
		return UnknownAllow, nil
	case "report":
		return UnknownReport, nil
	}
	return UnknownAllow, fmt.Errorf("unknown tag policy must be 'allow' or 'report', got %q", s)
}

func (p UnknownTagPolicy) String() string {
	if p == UnknownReport {
		return "report"
	}
	return "allow"
}
