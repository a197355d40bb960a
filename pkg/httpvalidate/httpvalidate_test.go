package httpvalidate_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankcore/rulekit/pkg/engine"
	"github.com/bankcore/rulekit/pkg/httpvalidate"
	"github.com/bankcore/rulekit/pkg/schema"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	ev := engine.New(
		schema.NewBankingRegistry(),
		engine.WithClock(func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }),
	)

	r := chi.NewRouter()
	r.With(httpvalidate.Middleware(ev, schema.KindTransaction)).Post("/transactions", func(w http.ResponseWriter, r *http.Request) {
		record, ok := httpvalidate.RecordFrom(r.Context())
		require.True(t, ok)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(record)
	})
	return r
}

func post(t *testing.T, handler http.Handler, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("accepted record reaches the handler normalized", func(t *testing.T) {
		rec := post(t, testRouter(t), "application/json",
			`{"user_id": 1, "transaction_type": "deposit", "payment_method": "upi", "amount": 500, "memo": "ignored"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var record map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
		assert.Equal(t, float64(500), record["amount"])
		assert.NotContains(t, record, "memo")
		assert.Contains(t, record, "created_at")
	})

	t.Run("rejected record returns the standard error payload", func(t *testing.T) {
		rec := post(t, testRouter(t), "application/json",
			`{"transaction_type": "deposit", "payment_method": "upi", "amount": 5}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var payload struct {
			Success bool     `json:"success"`
			Message string   `json:"message"`
			Errors  []string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.False(t, payload.Success)
		assert.Equal(t, "Validation error", payload.Message)
		require.Len(t, payload.Errors, 2)
		assert.Equal(t, "This field is required.", payload.Errors[0])
		assert.Equal(t, "Transaction amount cannot be less than the minimum.", payload.Errors[1])
	})

	t.Run("malformed JSON is a client error", func(t *testing.T) {
		rec := post(t, testRouter(t), "application/json", `{"amount": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong content type is rejected", func(t *testing.T) {
		rec := post(t, testRouter(t), "text/plain", `{}`)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("content type parameters are tolerated", func(t *testing.T) {
		rec := post(t, testRouter(t), "application/json; charset=utf-8",
			`{"user_id": 1, "transaction_type": "transfer", "amount": 600}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRecordFrom(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := httpvalidate.RecordFrom(req.Context())
	assert.False(t, ok)
}
