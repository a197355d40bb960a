package validator

import (
	"errors"
	"fmt"
	"strings"
)

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Violation represents a single constraint failure on one field.
// Message starts as the rule's built-in text and may be re-rendered from a
// schema message table; Params carries the label and limits the template needs.
type Violation struct {
	Field   string
	Kind    string
	Message string
	Params  map[string]any
}

// Violations is an ordered collection of violations.
type Violations []Violation

func (vs Violations) Error() string {
	if len(vs) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, v := range vs {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (vs *Violations) Add(v Violation) {
	*vs = append(*vs, v)
}

func (vs Violations) Has(field string) bool {
	for _, v := range vs {
		if v.Field == field {
			return true
		}
	}
	return false
}

func (vs Violations) Get(field string) []string {
	var messages []string
	for _, v := range vs {
		if v.Field == field {
			messages = append(messages, v.Message)
		}
	}
	return messages
}

func (vs Violations) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, v := range vs {
		if !seen[v.Field] {
			fields = append(fields, v.Field)
			seen[v.Field] = true
		}
	}
	return fields
}

func (vs Violations) Messages() []string {
	messages := make([]string, 0, len(vs))
	for _, v := range vs {
		messages = append(messages, v.Message)
	}
	return messages
}

func (vs Violations) IsEmpty() bool {
	return len(vs) == 0
}

// Rule represents a single validation rule.
type Rule struct {
	Check     func() bool
	Violation Violation
}

// Apply executes the given rules in order and returns the aggregated
// violations, or nil when every rule passes.
func Apply(rules ...Rule) error {
	var violations Violations

	for _, rule := range rules {
		if !rule.Check() {
			violations = append(violations, rule.Violation)
		}
	}

	if violations.IsEmpty() {
		return nil
	}

	return violations
}

// First evaluates the rules in order and returns the first violation, if any.
// Used where a single field should stop at its first failing constraint.
func First(rules ...Rule) (Violation, bool) {
	for _, rule := range rules {
		if !rule.Check() {
			return rule.Violation, true
		}
	}
	return Violation{}, false
}

// ExtractViolations extracts Violations from an error, or nil when the error
// carries none.
func ExtractViolations(err error) Violations {
	if err == nil {
		return nil
	}

	var violations Violations
	if errors.As(err, &violations) {
		return violations
	}

	return nil
}

func IsViolation(err error) bool {
	if err == nil {
		return false
	}

	var violations Violations
	return errors.As(err, &violations)
}
