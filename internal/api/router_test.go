package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/almostburnout/abo/internal/middleware"
	"github.com/almostburnout/abo/internal/services"
)

type fakeGateway struct {
	err error
}

func (g *fakeGateway) Confirm(ctx context.Context, paymentKey, orderRef string, amount int64) (*services.GatewayPayment, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &services.GatewayPayment{Method: "카드", ApprovedAt: time.Now().UTC(), ReceiptURL: "https://receipt"}, nil
}

func newTestServer(t *testing.T, gw services.Gateway) *httptest.Server {
	t.Helper()
	if gw == nil {
		gw = &fakeGateway{}
	}
	mux := http.NewServeMux()
	NewRouter(NewMemoryStore(), RouterConfig{
		SiteURL:   "https://almostburnout.com",
		Gateway:   gw,
		SignToken: middleware.SignToken,
	}).Register(mux)
	srv := httptest.NewServer(middleware.LocaleMiddleware(middleware.WithAuth(mux)))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func registerUser(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"email": "kim@example.com", "password": "secret123", "name": "Kim",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register status %d", resp.StatusCode)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("no token returned")
	}
	return token
}

func TestQuestionsEndpointLocalized(t *testing.T) {
	srv := newTestServer(t, nil)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/questions", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	defer resp.Body.Close()
	var body struct {
		Questions []struct {
			ID       int    `json:"id"`
			Category string `json:"category"`
			Text     string `json:"text"`
		} `json:"questions"`
		Categories map[string]map[string]string `json:"categories"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Questions) != 39 {
		t.Fatalf("want 39 questions, got %d", len(body.Questions))
	}
	if len(body.Categories) != 5 {
		t.Fatalf("want 5 categories, got %d", len(body.Categories))
	}
	if body.Questions[0].Text == "" {
		t.Fatal("question text empty")
	}
}

func TestSubmitAndHistoryFlow(t *testing.T) {
	srv := newTestServer(t, nil)
	token := registerUser(t, srv)

	answers := map[string]int{}
	for i := 1; i <= 39; i++ {
		answers[strconv.Itoa(i)] = 4
	}
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/assessments", token, map[string]any{
		"answers": answers,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status %d: %v", resp.StatusCode, body)
	}
	if body["id"] == "" || body["level"] == "" {
		t.Fatalf("bad submit response: %v", body)
	}
	if _, ok := body["quick_wins"].([]any); !ok {
		t.Fatalf("quick wins missing: %v", body)
	}

	resp, list := doJSON(t, http.MethodGet, srv.URL+"/api/assessments", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status %d", resp.StatusCode)
	}
	results, _ := list["results"].([]any)
	if len(results) != 1 {
		t.Fatalf("want 1 result, got %d", len(results))
	}

	// detail fetch with ownership
	id := body["id"].(string)
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/assessments/"+id, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("detail status %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/assessments/"+id, "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous detail should be 401, got %d", resp.StatusCode)
	}
}

func TestAnonymousSubmitAndMigrate(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/assessments", "", map[string]any{
		"answers":    map[string]int{"1": 5},
		"session_id": "sess-1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("anonymous submit status %d", resp.StatusCode)
	}

	// without a session id the submission is rejected
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/assessments", "", map[string]any{
		"answers": map[string]int{"1": 5},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("sessionless submit should be 400, got %d", resp.StatusCode)
	}

	token := registerUser(t, srv)
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/assessments/migrate", token, map[string]string{
		"session_id": "sess-1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("migrate status %d", resp.StatusCode)
	}
	if n, _ := body["migrated"].(float64); n != 1 {
		t.Fatalf("migrated=%v want 1", body["migrated"])
	}

	resp, list := doJSON(t, http.MethodGet, srv.URL+"/api/assessments", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status %d", resp.StatusCode)
	}
	if results, _ := list["results"].([]any); len(results) != 1 {
		t.Fatalf("migrated result missing: %v", list)
	}
}

func TestCheckoutAndConfirmFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/checkout", "", map[string]string{
		"programType":   "basic",
		"customerName":  "김철수",
		"customerEmail": "kim@example.com",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("checkout status %d: %v", resp.StatusCode, body)
	}
	pd, _ := body["paymentData"].(map[string]any)
	if pd == nil {
		t.Fatalf("paymentData missing: %v", body)
	}
	orderRef, _ := pd["orderId"].(string)
	amount, _ := pd["amount"].(float64)
	if orderRef == "" || amount != 29000 {
		t.Fatalf("bad payment data: %v", pd)
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/payment/confirm", "", map[string]any{
		"paymentKey": "pk-1",
		"orderId":    orderRef,
		"amount":     29000,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm status %d: %v", resp.StatusCode, body)
	}
	if body["success"] != true {
		t.Fatalf("confirm not successful: %v", body)
	}

	// tampered amount is rejected
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/payment/confirm", "", map[string]any{
		"paymentKey": "pk-2",
		"orderId":    orderRef,
		"amount":     100,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("amount mismatch should be 400, got %d", resp.StatusCode)
	}
}

func TestShareFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/share", "", map[string]any{
		"result": map[string]any{
			"categoryScores": map[string]float64{"em": 60, "pe": 40, "ph": 50, "or": 30, "im": 20},
			"aboIndex":       44,
			"level":          "caution",
			"timestamp":      "2025-06-01T00:00:00Z",
		},
		"demographics": map[string]string{"gender": "female", "ageGroup": "30s"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("share status %d: %v", resp.StatusCode, body)
	}
	shareID, _ := body["shareId"].(string)
	if shareID == "" {
		t.Fatalf("shareId missing: %v", body)
	}

	resp, got := doJSON(t, http.MethodGet, srv.URL+"/api/share/"+shareID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("share get status %d", resp.StatusCode)
	}
	if idx, _ := got["abo_index"].(float64); idx != 44 {
		t.Fatalf("abo_index=%v want 44", got["abo_index"])
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/share/nope", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown share should be 404, got %d", resp.StatusCode)
	}
}

func TestApplicationFlow(t *testing.T) {
	srv := newTestServer(t, nil)
	token := registerUser(t, srv)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/applications", token, map[string]any{
		"program_id":       "premium",
		"program_title":    "Premium 코칭",
		"application_type": "apply",
		"applicant_info":   map[string]string{"name": "김철수", "email": "kim@example.com", "phone": "010-1234-5678"},
		"program_details":  map[string]string{"price": "49,000원", "sessions": "8회"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("application status %d: %v", resp.StatusCode, body)
	}
	appID, _ := body["id"].(string)
	if appID == "" || body["status"] != "pending" {
		t.Fatalf("bad application: %v", body)
	}

	resp, body = doJSON(t, http.MethodPut, srv.URL+"/api/applications/"+appID+"/status", token, map[string]string{
		"status": "confirmed",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status update %d: %v", resp.StatusCode, body)
	}
	if body["status"] != "confirmed" {
		t.Fatalf("status=%v", body["status"])
	}

	resp, list := doJSON(t, http.MethodGet, srv.URL+"/api/applications", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status %d", resp.StatusCode)
	}
	if apps, _ := list["applications"].([]any); len(apps) != 1 {
		t.Fatalf("want 1 application: %v", list)
	}
}

func TestProgramsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/programs", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("programs status %d", resp.StatusCode)
	}
	if programs, _ := body["programs"].([]any); len(programs) != 3 {
		t.Fatalf("want 3 programs: %v", body)
	}
}

