package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTossBaseURL = "https://api.tosspayments.com"

// TossGateway confirms payments against the TossPayments REST API using the
// merchant secret key as HTTP Basic auth.
type TossGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewTossGateway(secretKey string) *TossGateway {
	return &TossGateway{
		secretKey: secretKey,
		baseURL:   defaultTossBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewTossGatewayWithBaseURL overrides the endpoint, for tests against a stub.
func NewTossGatewayWithBaseURL(secretKey, baseURL string) *TossGateway {
	g := NewTossGateway(secretKey)
	g.baseURL = baseURL
	return g
}

func (g *TossGateway) Confirm(ctx context.Context, paymentKey, orderRef string, amount int64) (*GatewayPayment, error) {
	body, err := json.Marshal(map[string]any{
		"paymentKey": paymentKey,
		"orderId":    orderRef,
		"amount":     amount,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payments/confirm", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(g.secretKey+":")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("toss confirm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ge struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&ge); err != nil || ge.Code == "" {
			return nil, fmt.Errorf("toss confirm: unexpected status %d", resp.StatusCode)
		}
		return nil, &GatewayError{Code: ge.Code, Message: ge.Message}
	}

	var out struct {
		Method     string `json:"method"`
		ApprovedAt string `json:"approvedAt"`
		Receipt    *struct {
			URL string `json:"url"`
		} `json:"receipt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("toss confirm: decode response: %w", err)
	}
	gp := &GatewayPayment{Method: out.Method}
	if t, err := time.Parse(time.RFC3339, out.ApprovedAt); err == nil {
		gp.ApprovedAt = t.UTC()
	}
	if out.Receipt != nil {
		gp.ReceiptURL = out.Receipt.URL
	}
	return gp, nil
}

var _ Gateway = (*TossGateway)(nil)
