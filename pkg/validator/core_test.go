package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankcore/rulekit/pkg/validator"
)

func passing(field string) validator.Rule {
	return validator.Rule{
		Check:     func() bool { return true },
		Violation: validator.Violation{Field: field, Kind: validator.KindRequired, Message: "is required"},
	}
}

func failing(field, kind string) validator.Rule {
	return validator.Rule{
		Check:     func() bool { return false },
		Violation: validator.Violation{Field: field, Kind: kind, Message: "failed"},
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when all rules pass", func(t *testing.T) {
		err := validator.Apply(passing("a"), passing("b"))
		assert.NoError(t, err)
	})

	t.Run("collects every failing rule in order", func(t *testing.T) {
		err := validator.Apply(
			failing("a", validator.KindRequired),
			passing("b"),
			failing("c", validator.KindNumberMin),
		)
		require.Error(t, err)

		violations := validator.ExtractViolations(err)
		require.Len(t, violations, 2)
		assert.Equal(t, "a", violations[0].Field)
		assert.Equal(t, "c", violations[1].Field)
		assert.Equal(t, validator.KindNumberMin, violations[1].Kind)
	})

	t.Run("error message lists fields", func(t *testing.T) {
		err := validator.Apply(failing("amount", validator.KindNumberMin))
		assert.Contains(t, err.Error(), "amount: failed")
	})
}

func TestFirst(t *testing.T) {
	t.Parallel()

	t.Run("returns the first failing rule only", func(t *testing.T) {
		v, failed := validator.First(
			passing("a"),
			failing("a", validator.KindNumberMin),
			failing("a", validator.KindNumberMax),
		)
		require.True(t, failed)
		assert.Equal(t, validator.KindNumberMin, v.Kind)
	})

	t.Run("reports no failure when all pass", func(t *testing.T) {
		_, failed := validator.First(passing("a"), passing("b"))
		assert.False(t, failed)
	})

	t.Run("handles no rules", func(t *testing.T) {
		_, failed := validator.First()
		assert.False(t, failed)
	})
}

func TestViolationsHelpers(t *testing.T) {
	t.Parallel()

	violations := validator.Violations{
		{Field: "email", Kind: validator.KindStringEmail, Message: "must be a valid email address"},
		{Field: "role", Kind: validator.KindOnly, Message: "must be one of: user, employee, manager"},
		{Field: "email", Kind: validator.KindRequired, Message: "is required"},
	}

	t.Run("has", func(t *testing.T) {
		assert.True(t, violations.Has("email"))
		assert.False(t, violations.Has("phone_number"))
	})

	t.Run("get", func(t *testing.T) {
		messages := violations.Get("email")
		assert.Equal(t, []string{"must be a valid email address", "is required"}, messages)
	})

	t.Run("fields are deduplicated in order", func(t *testing.T) {
		assert.Equal(t, []string{"email", "role"}, violations.Fields())
	})

	t.Run("messages preserve order", func(t *testing.T) {
		assert.Len(t, violations.Messages(), 3)
		assert.Equal(t, "must be a valid email address", violations.Messages()[0])
	})

	t.Run("empty", func(t *testing.T) {
		assert.True(t, validator.Violations{}.IsEmpty())
		assert.False(t, violations.IsEmpty())
	})
}

func TestExtractViolations(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, validator.ExtractViolations(nil))
		assert.False(t, validator.IsViolation(nil))
	})

	t.Run("unrelated error", func(t *testing.T) {
		assert.Nil(t, validator.ExtractViolations(errors.New("boom")))
		assert.False(t, validator.IsViolation(errors.New("boom")))
	})

	t.Run("wrapped violations", func(t *testing.T) {
		err := validator.Apply(failing("a", validator.KindRequired))
		wrapped := fmt.Errorf("evaluate: %w", err)
		assert.Len(t, validator.ExtractViolations(wrapped), 1)
		assert.True(t, validator.IsViolation(wrapped))
	})
}
