package paypal_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/config"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/paypal"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayPal struct {
	mu           sync.Mutex
	tokenCalls   atomic.Int32
	tokenStatus  int
	createBody   map[string]any
	createHeader http.Header
	captureReply func(w http.ResponseWriter)
	orderReply   func(w http.ResponseWriter)
}

func (f *fakePayPal) router(t *testing.T) http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		if f.tokenStatus != 0 {
			w.WriteHeader(f.tokenStatus)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
	})
	r.Post("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		f.mu.Lock()
		f.createHeader = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.createBody))
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"INTENT-1","status":"CREATED","links":[{"href":"https://paypal/approve","rel":"approve","method":"GET"}]}`))
	})
	r.Post("/v2/checkout/orders/{id}/capture", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "INTENT-1", chi.URLParam(r, "id"))
		f.captureReply(w)
	})
	r.Get("/v2/checkout/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.orderReply(w)
	})
	return r
}

const completedOrder = `{
	"id": "INTENT-1",
	"status": "COMPLETED",
	"payer": {"email_address": "buyer@example.com"},
	"purchase_units": [{
		"reference_id": "order-1",
		"payments": {"captures": [{"id": "TX-1", "status": "COMPLETED", "custom_id": "order-1"}]}
	}]
}`

func newClient(t *testing.T, f *fakePayPal, cfg config.PayPal, opts ...paypal.Option) *paypal.Client {
	srv := httptest.NewServer(f.router(t))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]paypal.Option{paypal.WithBaseURL(srv.URL)}, opts...)
	return paypal.New(logger, cfg, opts...)
}

func testConfig() config.PayPal {
	return config.PayPal{
		Mode:            "sandbox",
		ClientID:        "client",
		ClientSecret:    "secret",
		Currency:        "USD",
		CallbackBaseURL: "https://shop.example.com/",
		Timeout:         time.Second,
		TokenCache:      true,
	}
}

func testOrder() entities.Order {
	return entities.Order{
		ID: "order-1",
		Items: []entities.LineItem{
			{ProductID: "P1", Name: "Mug", UnitPrice: decimal.RequireFromString("25"), Quantity: 2},
		},
		TotalAmount: decimal.RequireFromString("50"),
		Status:      entities.StatusPending,
	}
}

func TestClient_AcquireAccessToken(t *testing.T) {
	t.Run("credentials missing", func(t *testing.T) {
		cfg := testConfig()
		cfg.ClientSecret = ""
		c := newClient(t, &fakePayPal{}, cfg)

		_, err := c.AcquireAccessToken(context.Background())
		assert.ErrorIs(t, err, entities.ErrCredentialsMissing)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		c := newClient(t, &fakePayPal{tokenStatus: http.StatusUnauthorized}, testConfig())

		_, err := c.AcquireAccessToken(context.Background())
		require.ErrorIs(t, err, entities.ErrTokenAcquisition)

		var gwErr *entities.GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, http.StatusUnauthorized, gwErr.Status)
		assert.Contains(t, gwErr.Body, "invalid_client")
	})

	t.Run("always requests a fresh token", func(t *testing.T) {
		f := &fakePayPal{}
		c := newClient(t, f, testConfig())

		for range 2 {
			tok, err := c.AcquireAccessToken(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "tok", tok)
		}
		assert.EqualValues(t, 2, f.tokenCalls.Load())
	})
}

func TestClient_CreateIntent(t *testing.T) {
	f := &fakePayPal{}
	c := newClient(t, f, testConfig())

	intent, err := c.CreateIntent(context.Background(), testOrder())
	require.NoError(t, err)

	assert.Equal(t, "INTENT-1", intent.ID)
	assert.Equal(t, "CREATED", intent.Status)
	require.Len(t, intent.Links, 1)
	assert.Equal(t, "approve", intent.Links[0].Rel)

	f.mu.Lock()
	defer f.mu.Unlock()

	assert.Equal(t, "order-1", f.createHeader.Get("PayPal-Request-Id"))
	assert.Equal(t, "CAPTURE", f.createBody["intent"])

	units := f.createBody["purchase_units"].([]any)
	require.Len(t, units, 1)
	unit := units[0].(map[string]any)
	assert.Equal(t, "order-1", unit["custom_id"])
	amount := unit["amount"].(map[string]any)
	assert.Equal(t, "USD", amount["currency_code"])
	assert.Equal(t, "50.00", amount["value"])

	items := unit["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].(map[string]any)["quantity"])

	appCtx := f.createBody["application_context"].(map[string]any)
	assert.Equal(t, "https://shop.example.com/checkout/success", appCtx["return_url"])
	assert.Equal(t, "https://shop.example.com/checkout/cancel", appCtx["cancel_url"])
}

func TestClient_TokenCache(t *testing.T) {
	t.Run("token reused until expiry", func(t *testing.T) {
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		f := &fakePayPal{}
		c := newClient(t, f, testConfig(), paypal.WithClock(func() time.Time { return now }))

		_, err := c.CreateIntent(context.Background(), testOrder())
		require.NoError(t, err)
		_, err = c.CreateIntent(context.Background(), testOrder())
		require.NoError(t, err)
		assert.EqualValues(t, 1, f.tokenCalls.Load())

		now = now.Add(time.Hour)
		_, err = c.CreateIntent(context.Background(), testOrder())
		require.NoError(t, err)
		assert.EqualValues(t, 2, f.tokenCalls.Load())
	})

	t.Run("cache disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.TokenCache = false
		f := &fakePayPal{}
		c := newClient(t, f, cfg)

		for range 3 {
			_, err := c.CreateIntent(context.Background(), testOrder())
			require.NoError(t, err)
		}
		assert.EqualValues(t, 3, f.tokenCalls.Load())
	})
}

func TestClient_CaptureIntent(t *testing.T) {
	testCases := []struct {
		name       string
		capture    func(w http.ResponseWriter)
		order      func(w http.ResponseWriter)
		want       entities.CaptureResult
		wantStatus int
	}{
		{
			name: "completed",
			capture: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(completedOrder))
			},
			want: entities.CaptureResult{
				IntentID:      "INTENT-1",
				Status:        "COMPLETED",
				CorrelationID: "order-1",
				TransactionID: "TX-1",
				PayerEmail:    "buyer@example.com",
			},
		},
		{
			name: "capture pending while order completed",
			capture: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id":"INTENT-1","status":"COMPLETED","purchase_units":[{"custom_id":"order-1","payments":{"captures":[{"id":"TX-9","status":"PENDING"}]}}]}`))
			},
			want: entities.CaptureResult{
				IntentID:      "INTENT-1",
				Status:        "PENDING",
				CorrelationID: "order-1",
				TransactionID: "TX-9",
			},
		},
		{
			name: "already captured is success",
			capture: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY","details":[{"issue":"ORDER_ALREADY_CAPTURED"}]}`))
			},
			order: func(w http.ResponseWriter) {
				_, _ = w.Write([]byte(completedOrder))
			},
			want: entities.CaptureResult{
				IntentID:        "INTENT-1",
				Status:          "COMPLETED",
				CorrelationID:   "order-1",
				TransactionID:   "TX-1",
				PayerEmail:      "buyer@example.com",
				AlreadyCaptured: true,
			},
		},
		{
			name: "declined",
			capture: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY","details":[{"issue":"INSTRUMENT_DECLINED"}]}`))
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "processor failure",
			capture: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"name":"INTERNAL_SERVER_ERROR"}`))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakePayPal{captureReply: tc.capture, orderReply: tc.order}
			c := newClient(t, f, testConfig())

			got, err := c.CaptureIntent(context.Background(), "INTENT-1")
			if tc.wantStatus != 0 {
				var gwErr *entities.GatewayError
				require.ErrorAs(t, err, &gwErr)
				assert.Equal(t, tc.wantStatus, gwErr.Status)
				assert.NotEmpty(t, gwErr.Body)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClient_GatewayUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := paypal.New(logger, testConfig(), paypal.WithBaseURL(srv.URL))

	_, err := c.CreateIntent(context.Background(), testOrder())

	var gwErr *entities.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, 0, gwErr.Status)
	assert.True(t, gwErr.Retryable())
	assert.ErrorIs(t, err, entities.ErrTokenAcquisition)
}

func TestClient_GetIntent(t *testing.T) {
	t.Run("reads capture state", func(t *testing.T) {
		f := &fakePayPal{orderReply: func(w http.ResponseWriter) {
			_, _ = w.Write([]byte(completedOrder))
		}}
		c := newClient(t, f, testConfig())

		got, err := c.GetIntent(context.Background(), "INTENT-1")
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", got.Status)
		assert.Equal(t, "order-1", got.CorrelationID)
		assert.Equal(t, "TX-1", got.TransactionID)
		assert.False(t, got.AlreadyCaptured)
	})

	t.Run("unknown intent", func(t *testing.T) {
		f := &fakePayPal{orderReply: func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"name":"RESOURCE_NOT_FOUND"}`))
		}}
		c := newClient(t, f, testConfig())

		_, err := c.GetIntent(context.Background(), "INTENT-1")
		var gwErr *entities.GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, http.StatusNotFound, gwErr.Status)
		assert.False(t, gwErr.Retryable())
	})
}
