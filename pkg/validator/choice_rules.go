package validator

import (
	"fmt"
	"strings"
)

// InList validates that a string value is one of the allowed values.
func InList(field, label, value string, allowedValues []string) Rule {
	return Rule{
		Check: func() bool {
			for _, allowed := range allowedValues {
				if value == allowed {
					return true
				}
			}
			return false
		},
		Violation: Violation{
			Field:   field,
			Kind:    KindOnly,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(allowedValues, ", ")),
			Params: map[string]any{
				"label":   label,
				"allowed": strings.Join(allowedValues, ", "),
			},
		},
	}
}
