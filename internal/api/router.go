package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/almostburnout/abo/internal/middleware"
	"github.com/almostburnout/abo/internal/services"
)

// RouterConfig carries the collaborators selected at startup.
type RouterConfig struct {
	SiteURL    string
	Gateway    services.Gateway
	SignToken  services.TokenSigner
	ShareStore services.ShareStore // optional decorator (e.g. Redis cache); defaults to the store adapter
}

type Router struct {
	store        Store
	auth         *services.AuthService
	assessments  *services.AssessmentService
	checkout     *services.CheckoutService
	payments     *services.PaymentService
	shares       *services.ShareService
	applications *services.ApplicationService
}

func NewRouter(store Store, cfg RouterConfig) *Router {
	shareStore := cfg.ShareStore
	if shareStore == nil {
		shareStore = NewShareStoreAdapter(store)
	}
	orders := newOrderStoreAdapter(store)
	return &Router{
		store:        store,
		auth:         services.NewAuthService(newAuthStoreAdapter(store), cfg.SignToken),
		assessments:  services.NewAssessmentService(newAssessmentStoreAdapter(store)),
		checkout:     services.NewCheckoutService(orders, cfg.SiteURL),
		payments:     services.NewPaymentService(orders, cfg.Gateway),
		shares:       services.NewShareService(shareStore, cfg.SiteURL),
		applications: services.NewApplicationService(newApplicationStoreAdapter(store)),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/questions", rt.handleQuestions)            // GET
	mux.HandleFunc("/api/assessments", rt.handleAssessments)        // POST, GET
	mux.HandleFunc("/api/assessments/", rt.handleAssessmentScoped)  // GET /api/assessments/{id}
	mux.HandleFunc("/api/assessments/migrate", rt.handleMigrate)    // POST
	mux.HandleFunc("/api/auth/register", rt.handleRegister)         // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)               // POST
	mux.HandleFunc("/api/me", rt.handleMe)                          // GET
	mux.HandleFunc("/api/programs", rt.handlePrograms)              // GET
	mux.HandleFunc("/api/checkout", rt.handleCheckout)              // POST
	mux.HandleFunc("/api/payment/confirm", rt.handlePaymentConfirm) // POST
	mux.HandleFunc("/api/share", rt.handleShareCreate)              // POST
	mux.HandleFunc("/api/share/", rt.handleShareGet)                // GET /api/share/{id}
	mux.HandleFunc("/api/applications", rt.handleApplications)      // POST, GET
	mux.HandleFunc("/api/applications/", rt.handleApplicationScoped)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeServiceError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusInternalServerError
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorBadGateway:
			status = http.StatusBadGateway
		case services.ErrorTooManyRequests:
			status = http.StatusTooManyRequests
		}
		http.Error(w, se.Message, status)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// GET /api/questions?lang=xx
func (rt *Router) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	type outQuestion struct {
		ID       int    `json:"id"`
		Category string `json:"category"`
		Reversed bool   `json:"reversed,omitempty"`
		Text     string `json:"text"`
	}
	out := make([]outQuestion, 0, len(services.Questions))
	for _, q := range services.Questions {
		text := q.StemI18n[locale]
		if text == "" {
			text = q.StemI18n["ko"]
		}
		out = append(out, outQuestion{ID: q.ID, Category: string(q.Category), Reversed: q.Reversed, Text: text})
	}
	categories := map[string]map[string]string{}
	for _, c := range services.Categories {
		name := services.CategoryNameI18n[c][locale]
		if name == "" {
			name = services.CategoryNameI18n[c]["ko"]
		}
		desc := services.CategoryDescriptionI18n[c][locale]
		if desc == "" {
			desc = services.CategoryDescriptionI18n[c]["ko"]
		}
		categories[string(c)] = map[string]string{"name": name, "description": desc}
	}
	writeJSON(w, map[string]any{"questions": out, "categories": categories})
}

type resultView struct {
	ID             string                   `json:"id"`
	CategoryScores services.CategoryScores  `json:"category_scores"`
	ABOIndex       int                      `json:"abo_index"`
	Level          string                   `json:"level"`
	Timestamp      string                   `json:"timestamp"`
	Demographics   *services.Demographics   `json:"demographics,omitempty"`
	QuickWins      []services.QuickWinView  `json:"quick_wins,omitempty"`
}

func recordView(rec *services.AssessmentRecord) resultView {
	return resultView{
		ID:             rec.ID,
		CategoryScores: rec.Result.CategoryScores,
		ABOIndex:       rec.Result.ABOIndex,
		Level:          string(rec.Result.Level),
		Timestamp:      rec.Result.Timestamp.UTC().Format(time.RFC3339),
		Demographics:   rec.Result.Demographics,
	}
}

// POST /api/assessments — submit answers; GET /api/assessments — own history.
func (rt *Router) handleAssessments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req struct {
			Answers      map[int]int            `json:"answers"`
			Demographics *services.Demographics `json:"demographics"`
			SessionID    string                 `json:"session_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		uid, _ := middleware.UserIDFromContext(r.Context())
		out, err := rt.assessments.Submit(services.SubmitInput{
			Answers:      req.Answers,
			Demographics: req.Demographics,
			UserID:       uid,
			SessionID:    req.SessionID,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		locale := middleware.LocaleFromContext(r.Context())
		view := recordView(out.Record)
		for _, qw := range out.QuickWins {
			view.QuickWins = append(view.QuickWins, qw.Localize(locale))
		}
		writeJSON(w, view)
	case http.MethodGet:
		uid, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		recs, err := rt.assessments.ListByUser(uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]resultView, 0, len(recs))
		for _, rec := range recs {
			out = append(out, recordView(rec))
		}
		writeJSON(w, map[string]any{"results": out})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/assessments/{id}
func (rt *Router) handleAssessmentScoped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/assessments/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	rec, err := rt.assessments.GetByID(id, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, recordView(rec))
}

// POST /api/assessments/migrate — attach anonymous session results to the
// authenticated user.
func (rt *Router) handleMigrate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	moved, err := rt.assessments.MigrateSession(req.SessionID, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true, "migrated": moved})
}

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Name      string `json:"name"`
		Gender    string `json:"gender"`
		BirthDate string `json:"birth_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Register(services.SignUpInput{Email: req.Email, Password: req.Password, Name: req.Name, Gender: req.Gender, BirthDate: req.BirthDate})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"token": res.Token, "user_id": res.UserID, "name": res.Name})
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"token": res.Token, "user_id": res.UserID, "name": res.Name})
}

// GET /api/me
func (rt *Router) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	u := rt.store.GetUser(uid)
	if u == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"gender":     u.Gender,
		"birth_date": u.BirthDate,
		"created_at": u.CreatedAt,
	})
}

// GET /api/programs
func (rt *Router) handlePrograms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]any{"programs": services.Programs()})
}

// POST /api/checkout
// Field names mirror the hosted checkout's wire format.
func (rt *Router) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		ProgramType   string `json:"programType"`
		CustomerName  string `json:"customerName"`
		CustomerEmail string `json:"customerEmail"`
		CustomerPhone string `json:"customerPhone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	uid, _ := middleware.UserIDFromContext(r.Context())
	res, err := rt.checkout.CreateOrder(services.CheckoutInput{
		ProgramType:   req.ProgramType,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		UserID:        uid,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "orderId": res.Order.ID, "paymentData": res.PaymentData})
}

// POST /api/payment/confirm
func (rt *Router) handlePaymentConfirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		PaymentKey string `json:"paymentKey"`
		OrderID    string `json:"orderId"`
		Amount     int64  `json:"amount"`
		Currency   string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.payments.Confirm(r.Context(), services.ConfirmInput{
		PaymentKey: req.PaymentKey,
		OrderRef:   req.OrderID,
		Amount:     req.Amount,
		Currency:   req.Currency,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"success": true,
		"orderId": res.Order.ID,
		"payment": map[string]any{
			"method":      res.Payment.Method,
			"approved_at": res.Payment.ApprovedAt,
			"receipt_url": res.Payment.ReceiptURL,
		},
	})
}

// POST /api/share
func (rt *Router) handleShareCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Result struct {
			CategoryScores services.CategoryScores `json:"categoryScores"`
			ABOIndex       int                     `json:"aboIndex"`
			Level          string                  `json:"level"`
			Timestamp      string                  `json:"timestamp"`
		} `json:"result"`
		Demographics *services.Demographics `json:"demographics"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result := services.AssessmentResult{
		CategoryScores: req.Result.CategoryScores,
		ABOIndex:       req.Result.ABOIndex,
		Level:          services.Level(req.Result.Level),
	}
	if ts, err := time.Parse(time.RFC3339, req.Result.Timestamp); err == nil {
		result.Timestamp = ts
	} else {
		result.Timestamp = time.Now().UTC()
	}
	res, err := rt.shares.Create(result, req.Demographics)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "shareId": res.ShareID, "shareUrl": res.ShareURL})
}

// GET /api/share/{id}
func (rt *Router) handleShareGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/share/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	share, err := rt.shares.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"id":              share.ID,
		"category_scores": share.Result.CategoryScores,
		"abo_index":       share.Result.ABOIndex,
		"level":           string(share.Result.Level),
		"timestamp":       share.Result.Timestamp,
		"demographics":    share.Demographics,
	})
}

// POST /api/applications; GET /api/applications
func (rt *Router) handleApplications(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req struct {
			ProgramID    string                  `json:"program_id"`
			ProgramTitle string                  `json:"program_title"`
			Type         string                  `json:"application_type"`
			SessionID    string                  `json:"session_id"`
			Applicant    services.ApplicantInfo  `json:"applicant_info"`
			Details      services.ProgramDetails `json:"program_details"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		uid, _ := middleware.UserIDFromContext(r.Context())
		app, err := rt.applications.Save(services.ApplicationInput{
			UserID:       uid,
			SessionID:    req.SessionID,
			ProgramID:    req.ProgramID,
			ProgramTitle: req.ProgramTitle,
			Type:         req.Type,
			Applicant:    req.Applicant,
			Details:      req.Details,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, app)
	case http.MethodGet:
		uid, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		apps, err := rt.applications.ListByUser(uid)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, map[string]any{"applications": apps})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// PUT /api/applications/{id}/status
func (rt *Router) handleApplicationScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/applications/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "status" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	app, err := rt.applications.UpdateStatus(parts[0], req.Status, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, app)
}
