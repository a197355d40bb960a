package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// LenString validates that a string has exactly the given number of
// characters, counted as runes.
func LenString(field, label, value string, exact int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) == exact
		},
		Violation: Violation{
			Field:   field,
			Kind:    KindStringLength,
			Message: fmt.Sprintf("must be exactly %d characters", exact),
			Params: map[string]any{
				"label": label,
				"limit": exact,
			},
		},
	}
}

// ValidEmail validates that a string is a well-formed email address with a
// dotted domain, suitable for typical web use.
func ValidEmail(field, label, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil {
				return false
			}

			parts := strings.Split(addr.Address, "@")
			if len(parts) != 2 {
				return false
			}

			localPart := parts[0]
			domain := parts[1]

			if localPart == "" {
				return false
			}

			// Domain must contain at least one dot and cannot start/end with one.
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}

			for _, part := range strings.Split(domain, ".") {
				if part == "" {
					return false
				}
			}

			return true
		},
		Violation: Violation{
			Field:   field,
			Kind:    KindStringEmail,
			Message: "must be a valid email address",
			Params: map[string]any{
				"label": label,
			},
		},
	}
}
