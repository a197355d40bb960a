package validator

import (
	"fmt"
	"math"
)

// MinNum validates that a numeric value is greater than or equal to the
// inclusive minimum.
func MinNum[T Numeric](field, label string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Violation: Violation{
			Field:   field,
			Kind:    KindNumberMin,
			Message: fmt.Sprintf("must be at least %v", min),
			Params: map[string]any{
				"label": label,
				"limit": min,
			},
		},
	}
}

// MaxNum validates that a numeric value is less than or equal to the
// inclusive maximum.
func MaxNum[T Numeric](field, label string, value T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Violation: Violation{
			Field:   field,
			Kind:    KindNumberMax,
			Message: fmt.Sprintf("must be at most %v", max),
			Params: map[string]any{
				"label": label,
				"limit": max,
			},
		},
	}
}

// Positive validates that a numeric value is strictly greater than zero.
func Positive[T Numeric](field, label string, value T) Rule {
	return Rule{
		Check: func() bool {
			return value > 0
		},
		Violation: Violation{
			Field:   field,
			Kind:    KindNumberPositive,
			Message: "must be a positive number",
			Params: map[string]any{
				"label": label,
			},
		},
	}
}

// WholeNumber validates that a float carries no fractional part.
func WholeNumber(field, label string, value float64) Rule {
	return Rule{
		Check: func() bool {
			return value == math.Trunc(value)
		},
		Violation: Violation{
			Field:   field,
			Kind:    KindNumberInteger,
			Message: "must be an integer",
			Params: map[string]any{
				"label": label,
			},
		},
	}
}
