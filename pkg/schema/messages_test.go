package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankcore/rulekit/pkg/schema"
	"github.com/bankcore/rulekit/pkg/validator"
)

func TestMessageTableRender(t *testing.T) {
	t.Parallel()

	t.Run("substitutes label and limit", func(t *testing.T) {
		table := schema.MessageTable{
			validator.KindNumberMin: "{{label}} cannot be less than {{limit}}.",
		}
		msg, err := table.Render(validator.KindNumberMin, map[string]any{
			"label": "Balance",
			"limit": 1000.0,
		})
		require.NoError(t, err)
		assert.Equal(t, "Balance cannot be less than 1000.", msg)
	})

	t.Run("falls back to the generic table", func(t *testing.T) {
		table := schema.MessageTable{}
		msg, err := table.Render(validator.KindRequired, map[string]any{"label": "Password"})
		require.NoError(t, err)
		assert.Equal(t, "Password is required.", msg)
	})

	t.Run("unknown kind without fallback errors", func(t *testing.T) {
		table := schema.MessageTable{}
		_, err := table.Render("no.such.kind", nil)
		assert.ErrorIs(t, err, schema.ErrUnknownMessageKey)
	})

	t.Run("missing params keep the placeholder", func(t *testing.T) {
		table := schema.MessageTable{validator.KindRequired: "{{label}} is required."}
		msg, err := table.Render(validator.KindRequired, nil)
		require.NoError(t, err)
		assert.Equal(t, "{{label}} is required.", msg)
	})

	t.Run("rendering is pure", func(t *testing.T) {
		table := schema.MessageTable{validator.KindNumberMax: "{{label}} over {{limit}}."}
		params := map[string]any{"label": "Amount", "limit": 50000}
		first, err := table.Render(validator.KindNumberMax, params)
		require.NoError(t, err)
		second, err := table.Render(validator.KindNumberMax, params)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestLoadMessageOverrides(t *testing.T) {
	t.Parallel()

	t.Run("parses per-kind tables", func(t *testing.T) {
		doc := `
account:
  number.min: "Balance below branch minimum."
user:
  string.email: "Please supply a valid email address."
`
		overrides, err := schema.LoadMessageOverrides(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, overrides, 2)
		assert.Equal(t, "Balance below branch minimum.", overrides[schema.KindAccount][validator.KindNumberMin])
		assert.Equal(t, "Please supply a valid email address.", overrides[schema.KindUser][validator.KindStringEmail])
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := schema.LoadMessageOverrides(strings.NewReader("account: [not, a, table"))
		assert.Error(t, err)
	})
}

func TestBankingMessageOverrides(t *testing.T) {
	t.Parallel()

	t.Run("built-in account overrides apply", func(t *testing.T) {
		reg := schema.NewBankingRegistry()
		s, err := reg.Get(schema.KindAccount)
		require.NoError(t, err)

		msg, err := s.Messages().Render(validator.KindNumberMin, map[string]any{"label": "Balance", "limit": 1000})
		require.NoError(t, err)
		assert.Equal(t, "Balance cannot be less than the minimum limit.", msg)
	})

	t.Run("deployment overrides win over built-ins", func(t *testing.T) {
		reg := schema.NewBankingRegistry(schema.WithMessageOverrides(map[schema.Kind]schema.MessageTable{
			schema.KindAccount: {validator.KindNumberMin: "Too low."},
		}))
		s, err := reg.Get(schema.KindAccount)
		require.NoError(t, err)

		msg, err := s.Messages().Render(validator.KindNumberMin, nil)
		require.NoError(t, err)
		assert.Equal(t, "Too low.", msg)
	})

	t.Run("kinds without overrides use the generic table", func(t *testing.T) {
		reg := schema.NewBankingRegistry()
		s, err := reg.Get(schema.KindLoan)
		require.NoError(t, err)

		msg, err := s.Messages().Render(validator.KindRequired, map[string]any{"label": "Loan amount"})
		require.NoError(t, err)
		assert.Equal(t, "Loan amount is required.", msg)
	})
}
