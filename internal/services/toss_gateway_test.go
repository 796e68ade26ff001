package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTossGatewayConfirm(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payments/confirm" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"method":     "카드",
			"approvedAt": "2025-06-01T12:00:00+09:00",
			"receipt":    map[string]string{"url": "https://receipt.example"},
		})
	}))
	defer srv.Close()

	g := NewTossGatewayWithBaseURL("test_sk_abc", srv.URL)
	gp, err := g.Confirm(context.Background(), "pk-1", "ABO_1_x", 29000)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("test_sk_abc:"))
	if gotAuth != wantAuth {
		t.Fatalf("auth header %q want %q", gotAuth, wantAuth)
	}
	if gotBody["paymentKey"] != "pk-1" || gotBody["orderId"] != "ABO_1_x" || gotBody["amount"] != float64(29000) {
		t.Fatalf("bad request body: %v", gotBody)
	}
	if gp.Method != "카드" || gp.ReceiptURL != "https://receipt.example" {
		t.Fatalf("bad payment: %+v", gp)
	}
	if gp.ApprovedAt.IsZero() {
		t.Fatal("approvedAt not parsed")
	}
}

func TestTossGatewayDecline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "NOT_FOUND_PAYMENT",
			"message": "존재하지 않는 결제입니다.",
		})
	}))
	defer srv.Close()

	g := NewTossGatewayWithBaseURL("test_sk_abc", srv.URL)
	_, err := g.Confirm(context.Background(), "pk-bad", "ABO_1_x", 29000)
	ge, ok := err.(*GatewayError)
	if !ok {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if ge.Code != "NOT_FOUND_PAYMENT" {
		t.Fatalf("code=%s", ge.Code)
	}
}

func TestTossGatewayMalformedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewTossGatewayWithBaseURL("test_sk_abc", srv.URL)
	_, err := g.Confirm(context.Background(), "pk", "ref", 1)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*GatewayError); ok {
		t.Fatal("status without a code should not map to GatewayError")
	}
}
