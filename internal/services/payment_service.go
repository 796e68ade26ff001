package services

import (
	"context"
	"time"
)

// Payment records one confirm attempt against the gateway, settled or aborted.
type Payment struct {
	ID             string
	OrderID        string // internal order id
	PaymentKey     string
	GatewayOrderID string // the order ref echoed by the gateway
	Amount         int64
	Method         string
	Status         string // done|aborted
	FailureCode    string
	FailureMessage string
	ApprovedAt     time.Time
	ReceiptURL     string
	CreatedAt      time.Time
}

const (
	PaymentStatusDone    = "done"
	PaymentStatusAborted = "aborted"
)

// GatewayPayment is the gateway's view of a settled payment.
type GatewayPayment struct {
	Method     string
	ApprovedAt time.Time
	ReceiptURL string
}

// GatewayError carries the gateway's (code, message) pair for a declined
// confirmation.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string { return e.Code + ": " + e.Message }

// Gateway is the payment collaborator's confirm call.
type Gateway interface {
	Confirm(ctx context.Context, paymentKey, orderRef string, amount int64) (*GatewayPayment, error)
}

// PaymentStore abstracts persistence for payment confirmation.
type PaymentStore interface {
	GetOrderByRef(orderRef string) (*Order, error)
	UpdateOrderStatus(orderID, status string) error
	AddPayment(p *Payment) error
}

// PaymentService confirms payments against the gateway and reconciles the
// order. The quoted amount must match the confirmed amount before a payment
// is treated as settled.
type PaymentService struct {
	store   PaymentStore
	gateway Gateway
	now     func() time.Time
	idGen   func() string
}

func NewPaymentService(store PaymentStore, gateway Gateway) *PaymentService {
	return &PaymentService{
		store:   store,
		gateway: gateway,
		now:     func() time.Time { return time.Now().UTC() },
		idGen:   func() string { return shortID(12) },
	}
}

type ConfirmInput struct {
	PaymentKey string
	OrderRef   string
	Amount     int64
	Currency   string
}

type ConfirmResult struct {
	Order   *Order
	Payment *Payment
}

// Confirm verifies the order against the quoted amount and currency, then
// asks the gateway to settle. Declines are recorded as aborted payments and
// surfaced with the gateway's code and message.
func (s *PaymentService) Confirm(ctx context.Context, in ConfirmInput) (*ConfirmResult, error) {
	if in.PaymentKey == "" || in.OrderRef == "" || in.Amount <= 0 {
		return nil, NewInvalidError("paymentKey/orderId/amount required")
	}
	order, err := s.store.GetOrderByRef(in.OrderRef)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, NewNotFoundError("order not found")
	}
	if order.Amount != in.Amount {
		return nil, NewInvalidError("payment amount does not match order")
	}
	currency := in.Currency
	if currency == "" {
		currency = "KRW"
	}
	if order.Currency != currency {
		return nil, NewInvalidError("payment currency does not match order")
	}

	now := s.now()
	gp, err := s.gateway.Confirm(ctx, in.PaymentKey, in.OrderRef, in.Amount)
	if err != nil {
		p := &Payment{
			ID:             s.idGen(),
			OrderID:        order.ID,
			PaymentKey:     in.PaymentKey,
			GatewayOrderID: in.OrderRef,
			Amount:         in.Amount,
			Status:         PaymentStatusAborted,
			CreatedAt:      now,
		}
		if ge, ok := err.(*GatewayError); ok {
			p.FailureCode = ge.Code
			p.FailureMessage = ge.Message
			if serr := s.store.AddPayment(p); serr != nil {
				return nil, serr
			}
			return nil, NewInvalidError(ge.Message)
		}
		if serr := s.store.AddPayment(p); serr != nil {
			return nil, serr
		}
		return nil, NewBadGatewayError("payment gateway unavailable")
	}

	payment := &Payment{
		ID:             s.idGen(),
		OrderID:        order.ID,
		PaymentKey:     in.PaymentKey,
		GatewayOrderID: in.OrderRef,
		Amount:         in.Amount,
		Method:         gp.Method,
		Status:         PaymentStatusDone,
		ApprovedAt:     gp.ApprovedAt,
		ReceiptURL:     gp.ReceiptURL,
		CreatedAt:      now,
	}
	if err := s.store.AddPayment(payment); err != nil {
		return nil, err
	}
	if err := s.store.UpdateOrderStatus(order.ID, OrderStatusCompleted); err != nil {
		return nil, err
	}
	order.Status = OrderStatusCompleted
	return &ConfirmResult{Order: order, Payment: payment}, nil
}
