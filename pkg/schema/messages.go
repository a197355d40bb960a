package schema

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/bankcore/rulekit/pkg/validator"
)

// ErrUnknownMessageKey is returned when a violation kind has neither a
// declared template nor a generic fallback.
var ErrUnknownMessageKey = errors.New("no message template for violation kind")

// MessageTable maps a violation kind to its message template. Templates use
// {{name}} placeholders filled from the violation's params; {{label}} is the
// field's display label, {{limit}} the numeric bound or length involved.
type MessageTable map[string]string

// defaultMessages covers every violation kind the engine can produce.
// Per-kind schemas override individual entries.
var defaultMessages = MessageTable{
	validator.KindNumberBase:     "{{label}} must be a number.",
	validator.KindNumberInteger:  "{{label}} must be an integer.",
	validator.KindNumberMin:      "{{label}} cannot be less than {{limit}}.",
	validator.KindNumberMax:      "{{label}} cannot be greater than {{limit}}.",
	validator.KindNumberPositive: "{{label}} must be a positive number.",
	validator.KindStringBase:     "{{label}} must be text.",
	validator.KindStringEmail:    "{{label}} must be a valid email.",
	validator.KindStringLength:   "{{label}} must be exactly {{limit}} characters.",
	validator.KindDateBase:       "{{label}} must be a valid date.",
	validator.KindRequired:       "{{label}} is required.",
	validator.KindOnly:           "{{label}} must be one of the allowed values.",
	validator.KindInvalidRef:     "{{label}} refers to an unknown record.",
	validator.KindMissingSibling: "{{label}} requires {{discriminator}} to be set.",
}

// merge returns a copy of t with the overrides applied on top.
func (t MessageTable) merge(overrides MessageTable) MessageTable {
	merged := make(MessageTable, len(t)+len(overrides))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

var placeholderRegex = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Render produces the user-facing message for a violation kind. The template
// is looked up in the table, falling back to the generic default table, and
// its placeholders are substituted from params. Rendering is pure: the same
// inputs always produce the same string.
func (t MessageTable) Render(kind string, params map[string]any) (string, error) {
	tmpl, ok := t[kind]
	if !ok {
		tmpl, ok = defaultMessages[kind]
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownMessageKey, kind)
	}

	rendered := placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-2]
		if val, ok := params[name]; ok {
			return fmt.Sprintf("%v", val)
		}
		// Keep the placeholder when no value is supplied.
		return match
	})
	return rendered, nil
}

// LoadMessageOverrides reads a YAML document mapping record kinds to message
// tables, e.g.
//
//	account:
//	  number.min: "Balance cannot go below the minimum limit."
//	user:
//	  string.email: "Please supply a valid email address."
//
// Deployments use it to rebrand the built-in messages without recompiling.
func LoadMessageOverrides(r io.Reader) (map[Kind]MessageTable, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read message overrides: %w", err)
	}

	var parsed map[Kind]MessageTable
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse message overrides: %w", err)
	}
	return parsed, nil
}
