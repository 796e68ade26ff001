package services

import (
	"fmt"
	"strings"
	"time"
)

// Program catalog. Prices are KRW, fixed at build time.
const (
	ProgramBasic      = "basic"
	ProgramPremium    = "premium"
	ProgramEnterprise = "enterprise"
)

var programPrices = map[string]int64{
	ProgramBasic:      29000,
	ProgramPremium:    49000,
	ProgramEnterprise: 99000,
}

// ProgramPrice returns the catalog price for a program type.
func ProgramPrice(programType string) (int64, bool) {
	p, ok := programPrices[programType]
	return p, ok
}

// Programs returns the catalog as (type, price) pairs in ascending price order.
func Programs() []ProgramInfo {
	return []ProgramInfo{
		{Type: ProgramBasic, Amount: programPrices[ProgramBasic], Currency: "KRW"},
		{Type: ProgramPremium, Amount: programPrices[ProgramPremium], Currency: "KRW"},
		{Type: ProgramEnterprise, Amount: programPrices[ProgramEnterprise], Currency: "KRW"},
	}
}

type ProgramInfo struct {
	Type     string `json:"type"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Order is a pending or settled purchase of a coaching program.
type Order struct {
	ID            string // internal id
	OrderRef      string // gateway-facing reference (ABO_<ms>_<rand>)
	UserID        string
	ProgramType   string
	Amount        int64
	Currency      string
	Status        string // pending|completed|failed
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CreatedAt     time.Time
}

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
)

// OrderStore abstracts order persistence for checkout.
type OrderStore interface {
	AddOrder(o *Order) error
}

// CheckoutService creates orders for the fixed program catalog.
type CheckoutService struct {
	store   OrderStore
	siteURL string
	now     func() time.Time
	idGen   func() string
}

func NewCheckoutService(store OrderStore, siteURL string) *CheckoutService {
	return &CheckoutService{
		store:   store,
		siteURL: strings.TrimRight(siteURL, "/"),
		now:     func() time.Time { return time.Now().UTC() },
		idGen:   func() string { return shortID(8) },
	}
}

type CheckoutInput struct {
	ProgramType   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	UserID        string
}

// PaymentData is what the hosted checkout UI needs to start a payment.
type PaymentData struct {
	OrderID       string `json:"orderId"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	OrderName     string `json:"orderName"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	SuccessURL    string `json:"successUrl"`
	FailURL       string `json:"failUrl"`
}

type CheckoutResult struct {
	Order       *Order
	PaymentData PaymentData
}

// CreateOrder validates the request, quotes the catalog price and persists a
// pending order. The returned payment data is handed to the gateway's hosted
// checkout on the client.
func (s *CheckoutService) CreateOrder(in CheckoutInput) (*CheckoutResult, error) {
	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.CustomerEmail) == "" {
		return nil, NewInvalidError("customer name/email required")
	}
	amount, ok := ProgramPrice(in.ProgramType)
	if !ok {
		return nil, NewInvalidError("unknown program type")
	}

	now := s.now()
	order := &Order{
		ID:            shortID(12),
		OrderRef:      fmt.Sprintf("ABO_%d_%s", now.UnixMilli(), s.idGen()),
		UserID:        in.UserID,
		ProgramType:   in.ProgramType,
		Amount:        amount,
		Currency:      "KRW",
		Status:        OrderStatusPending,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		CreatedAt:     now,
	}
	if err := s.store.AddOrder(order); err != nil {
		return nil, err
	}

	orderName := fmt.Sprintf("AlmostBurnOut %s%s 프로그램", strings.ToUpper(in.ProgramType[:1]), in.ProgramType[1:])
	return &CheckoutResult{
		Order: order,
		PaymentData: PaymentData{
			OrderID:       order.OrderRef,
			Amount:        order.Amount,
			Currency:      order.Currency,
			OrderName:     orderName,
			CustomerName:  order.CustomerName,
			CustomerEmail: order.CustomerEmail,
			SuccessURL:    s.siteURL + "/payment/success",
			FailURL:       s.siteURL + "/payment/fail",
		},
	}, nil
}
