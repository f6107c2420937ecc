package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripeProvider drives Stripe Checkout over its REST API.
type StripeProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewStripeProvider creates a provider using the given secret key.
func NewStripeProvider(apiKey string) *StripeProvider {
	return &StripeProvider{
		apiKey:  apiKey,
		baseURL: "https://api.stripe.com/v1",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type stripeSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

// CreateSession opens a hosted checkout session.
func (p *StripeProvider) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][product_data][name]", req.Metadata["plan_name"])
	// Stripe takes minor units.
	cents := req.Amount.Mul(hundred).IntPart()
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(cents, 10))
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	var session stripeSession
	if err := p.post(ctx, "/checkout/sessions", form, &session); err != nil {
		return Session{}, err
	}
	return Session{SessionID: session.ID, URL: session.URL}, nil
}

// SessionStatus fetches the current state of a session.
func (p *StripeProvider) SessionStatus(ctx context.Context, sessionID string) (ProviderStatus, error) {
	var session stripeSession
	if err := p.get(ctx, "/checkout/sessions/"+url.PathEscape(sessionID), &session); err != nil {
		return ProviderStatus{}, err
	}
	return ProviderStatus{
		Status:        session.Status,
		PaymentStatus: session.PaymentStatus,
		AmountTotal:   session.AmountTotal,
		Currency:      session.Currency,
	}, nil
}

func (p *StripeProvider) post(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return p.do(req, out)
}

func (p *StripeProvider) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return err
	}
	return p.do(req, out)
}

func (p *StripeProvider) do(req *http.Request, out interface{}) error {
	req.SetBasicAuth(p.apiKey, "")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("stripe %d: %s", resp.StatusCode, apiErr.Error.Message)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
