package api

import (
	"github.com/almostburnout/abo/internal/services"
)

type orderStoreAdapter struct {
	store Store
}

func newOrderStoreAdapter(store Store) *orderStoreAdapter {
	return &orderStoreAdapter{store: store}
}

func orderToStorage(o *services.Order) *Order {
	return &Order{
		ID:            o.ID,
		OrderRef:      o.OrderRef,
		UserID:        o.UserID,
		ProgramType:   o.ProgramType,
		Amount:        o.Amount,
		Currency:      o.Currency,
		Status:        o.Status,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		CreatedAt:     o.CreatedAt,
	}
}

func orderFromStorage(o *Order) *services.Order {
	return &services.Order{
		ID:            o.ID,
		OrderRef:      o.OrderRef,
		UserID:        o.UserID,
		ProgramType:   o.ProgramType,
		Amount:        o.Amount,
		Currency:      o.Currency,
		Status:        o.Status,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		CreatedAt:     o.CreatedAt,
	}
}

func (a *orderStoreAdapter) AddOrder(o *services.Order) error {
	if o == nil {
		return services.NewInvalidError("order required")
	}
	a.store.AddOrder(orderToStorage(o))
	return nil
}

func (a *orderStoreAdapter) GetOrderByRef(orderRef string) (*services.Order, error) {
	o := a.store.GetOrderByRef(orderRef)
	if o == nil {
		return nil, nil
	}
	return orderFromStorage(o), nil
}

func (a *orderStoreAdapter) UpdateOrderStatus(orderID, status string) error {
	if !a.store.UpdateOrderStatus(orderID, status) {
		return services.NewNotFoundError("order not found")
	}
	return nil
}

func (a *orderStoreAdapter) AddPayment(p *services.Payment) error {
	if p == nil {
		return services.NewInvalidError("payment required")
	}
	a.store.AddPayment(&Payment{
		ID:             p.ID,
		OrderID:        p.OrderID,
		PaymentKey:     p.PaymentKey,
		GatewayOrderID: p.GatewayOrderID,
		Amount:         p.Amount,
		Method:         p.Method,
		Status:         p.Status,
		FailureCode:    p.FailureCode,
		FailureMessage: p.FailureMessage,
		ApprovedAt:     p.ApprovedAt,
		ReceiptURL:     p.ReceiptURL,
		CreatedAt:      p.CreatedAt,
	})
	return nil
}

var (
	_ services.OrderStore   = (*orderStoreAdapter)(nil)
	_ services.PaymentStore = (*orderStoreAdapter)(nil)
)
