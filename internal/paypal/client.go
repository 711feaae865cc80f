package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/config"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
)

const (
	// Tokens are refreshed this long before PayPal says they expire.
	tokenExpiryMargin = time.Minute

	maxErrorBody = 64 << 10

	issueAlreadyCaptured = "ORDER_ALREADY_CAPTURED"
)

type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	now        func() time.Time

	baseURL         string
	clientID        string
	clientSecret    string
	currency        string
	callbackBaseURL string
	cacheTokens     bool

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

type Option func(*Client)

// WithBaseURL overrides the API host picked from the configured mode.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(logger *slog.Logger, cfg config.PayPal, opts ...Option) *Client {
	c := &Client{
		logger:          logger.With(slog.String("service", "paypal")),
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		now:             time.Now,
		baseURL:         cfg.BaseURL(),
		clientID:        cfg.ClientID,
		clientSecret:    cfg.ClientSecret,
		currency:        cfg.Currency,
		callbackBaseURL: strings.TrimRight(cfg.CallbackBaseURL, "/"),
		cacheTokens:     cfg.TokenCache,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AcquireAccessToken exchanges the client credentials for a new bearer token.
// It always calls PayPal and does not touch the token cache.
func (c *Client) AcquireAccessToken(ctx context.Context) (string, error) {
	tok, err := c.requestToken(ctx)
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// CreateIntent opens a CAPTURE intent for the order total. The order id travels as
// custom_id so the capture can always be mapped back to the order.
func (c *Client) CreateIntent(ctx context.Context, order entities.Order) (entities.PaymentIntent, error) {
	total := order.TotalAmount.StringFixed(2)

	items := make([]item, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, item{
			Name:       truncate(it.Name, 127),
			Quantity:   strconv.Itoa(it.Quantity),
			UnitAmount: money{CurrencyCode: c.currency, Value: it.UnitPrice.StringFixed(2)},
			SKU:        truncate(it.ProductID, 127),
		})
	}

	req := createOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnitRequest{{
			ReferenceID: order.ID,
			CustomID:    order.ID,
			Amount: amount{
				money:     money{CurrencyCode: c.currency, Value: total},
				Breakdown: &breakdown{ItemTotal: money{CurrencyCode: c.currency, Value: total}},
			},
			Items: items,
		}},
		ApplicationContext: applicationContext{
			ReturnURL:  c.callbackBaseURL + "/checkout/success",
			CancelURL:  c.callbackBaseURL + "/checkout/cancel",
			UserAction: "PAY_NOW",
		},
	}

	// PayPal-Request-Id makes a repeated create for the same order return the same intent.
	headers := map[string]string{"PayPal-Request-Id": order.ID}

	var resp orderResponse
	if err := c.do(ctx, "create_intent", http.MethodPost, "/v2/checkout/orders", req, &resp, headers); err != nil {
		return entities.PaymentIntent{}, err
	}

	c.logger.DebugContext(ctx, "intent created", slog.String("intent_id", resp.ID), slog.String("order_id", order.ID))
	return toIntent(resp), nil
}

// CaptureIntent moves the funds of an approved intent. An intent that was captured
// before is reported as a success with AlreadyCaptured set.
func (c *Client) CaptureIntent(ctx context.Context, intentID string) (entities.CaptureResult, error) {
	path := "/v2/checkout/orders/" + url.PathEscape(intentID) + "/capture"

	var resp orderResponse
	err := c.do(ctx, "capture_intent", http.MethodPost, path, struct{}{}, &resp, nil)
	if isAlreadyCaptured(err) {
		c.logger.InfoContext(ctx, "intent already captured", slog.String("intent_id", intentID))
		res, getErr := c.GetIntent(ctx, intentID)
		if getErr != nil {
			return entities.CaptureResult{}, getErr
		}
		res.AlreadyCaptured = true
		return res, nil
	}
	if err != nil {
		return entities.CaptureResult{}, err
	}

	return toCaptureResult(resp), nil
}

// GetIntent reads the current state of an intent without changing it.
func (c *Client) GetIntent(ctx context.Context, intentID string) (entities.CaptureResult, error) {
	var resp orderResponse
	if err := c.do(ctx, "get_intent", http.MethodGet, "/v2/checkout/orders/"+url.PathEscape(intentID), nil, &resp, nil); err != nil {
		return entities.CaptureResult{}, err
	}
	return toCaptureResult(resp), nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any, headers map[string]string) (err error) {
	start := time.Now()
	defer func() { observe(op, start, err) }()

	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &entities.GatewayError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if res.StatusCode == http.StatusUnauthorized {
			c.dropToken()
		}
		raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return &entities.GatewayError{Op: op, Status: res.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &entities.GatewayError{Op: op, Status: res.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	if !c.cacheTokens {
		return c.AcquireAccessToken(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	tok, err := c.requestToken(ctx)
	if err != nil {
		return "", err
	}
	c.token = tok.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpiryMargin)
	return c.token, nil
}

func (c *Client) dropToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.tokenExpiry = time.Time{}
}

func (c *Client) requestToken(ctx context.Context) (tokenResponse, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return tokenResponse{}, entities.ErrCredentialsMissing
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return tokenResponse{}, fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return tokenResponse{}, &entities.GatewayError{Op: "token", Err: errors.Join(entities.ErrTokenAcquisition, err)}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return tokenResponse{}, &entities.GatewayError{
			Op:     "token",
			Status: res.StatusCode,
			Body:   string(raw),
			Err:    entities.ErrTokenAcquisition,
		}
	}

	var tok tokenResponse
	if err := json.NewDecoder(res.Body).Decode(&tok); err != nil || tok.AccessToken == "" {
		return tokenResponse{}, &entities.GatewayError{
			Op:     "token",
			Status: res.StatusCode,
			Err:    errors.Join(entities.ErrTokenAcquisition, err),
		}
	}
	return tok, nil
}

func isAlreadyCaptured(err error) bool {
	var gwErr *entities.GatewayError
	if !errors.As(err, &gwErr) || gwErr.Status != http.StatusUnprocessableEntity {
		return false
	}
	var body errorResponse
	if json.Unmarshal([]byte(gwErr.Body), &body) != nil {
		return false
	}
	for _, d := range body.Details {
		if d.Issue == issueAlreadyCaptured {
			return true
		}
	}
	return false
}

func toIntent(resp orderResponse) entities.PaymentIntent {
	links := make([]entities.Link, 0, len(resp.Links))
	for _, l := range resp.Links {
		links = append(links, entities.Link{Href: l.Href, Rel: l.Rel, Method: l.Method})
	}
	return entities.PaymentIntent{ID: resp.ID, Status: resp.Status, Links: links}
}

// toCaptureResult prefers the capture's own status over the order status: an order can be
// COMPLETED while its capture is still PENDING.
func toCaptureResult(resp orderResponse) entities.CaptureResult {
	res := entities.CaptureResult{
		IntentID:   resp.ID,
		Status:     resp.Status,
		PayerEmail: resp.Payer.EmailAddress,
	}
	if len(resp.PurchaseUnits) == 0 {
		return res
	}

	unit := resp.PurchaseUnits[0]
	res.CorrelationID = unit.CustomID
	if res.CorrelationID == "" {
		res.CorrelationID = unit.ReferenceID
	}
	if captures := unit.Payments.Captures; len(captures) > 0 {
		last := captures[len(captures)-1]
		res.TransactionID = last.ID
		res.Status = last.Status
		if last.CustomID != "" {
			res.CorrelationID = last.CustomID
		}
	}
	return res
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
