package api

import "time"

type Store interface {
	AddUser(u *User)
	FindUserByEmail(email string) *User
	GetUser(id string) *User

	AddResult(r *AssessmentRecord)
	GetResult(id string) *AssessmentRecord
	ListResultsByUser(userID string) []*AssessmentRecord
	ReassignSessionResults(sessionID, userID string) int

	AddOrder(o *Order)
	GetOrderByRef(orderRef string) *Order
	UpdateOrderStatus(orderID, status string) bool
	AddPayment(p *Payment)
	ListPaymentsByOrder(orderID string) []*Payment

	AddShare(sh *ResultShare)
	GetShare(id string) *ResultShare

	AddApplication(a *ProgramApplication)
	GetApplication(id string) *ProgramApplication
	ListApplicationsByUser(userID string) []*ProgramApplication
	UpdateApplicationStatus(id, status string, updatedAt time.Time) bool
}

var _ Store = (*memoryStore)(nil)
