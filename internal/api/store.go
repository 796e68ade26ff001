package api

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/almostburnout/abo/internal/services"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"pass_hash"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender,omitempty"`
	BirthDate string    `json:"birth_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AssessmentRecord struct {
	ID             string                  `json:"id"`
	UserID         string                  `json:"user_id,omitempty"`
	SessionID      string                  `json:"session_id,omitempty"`
	CategoryScores services.CategoryScores `json:"category_scores"`
	ABOIndex       int                     `json:"abo_index"`
	Level          string                  `json:"level"`
	Timestamp      time.Time               `json:"timestamp"`
	Demographics   *services.Demographics  `json:"demographics,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

type Order struct {
	ID            string    `json:"id"`
	OrderRef      string    `json:"order_ref"`
	UserID        string    `json:"user_id,omitempty"`
	ProgramType   string    `json:"program_type"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type Payment struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	PaymentKey     string    `json:"payment_key"`
	GatewayOrderID string    `json:"gateway_order_id"`
	Amount         int64     `json:"amount"`
	Method         string    `json:"method,omitempty"`
	Status         string    `json:"status"`
	FailureCode    string    `json:"failure_code,omitempty"`
	FailureMessage string    `json:"failure_message,omitempty"`
	ApprovedAt     time.Time `json:"approved_at,omitempty"`
	ReceiptURL     string    `json:"receipt_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type ResultShare struct {
	ID             string                  `json:"id"`
	CategoryScores services.CategoryScores `json:"category_scores"`
	ABOIndex       int                     `json:"abo_index"`
	Level          string                  `json:"level"`
	Timestamp      time.Time               `json:"timestamp"`
	Demographics   *services.Demographics  `json:"demographics,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

type ProgramApplication struct {
	ID            string                  `json:"id"`
	UserID        string                  `json:"user_id,omitempty"`
	SessionID     string                  `json:"session_id,omitempty"`
	ProgramID     string                  `json:"program_id"`
	ProgramTitle  string                  `json:"program_title"`
	Type          string                  `json:"application_type"`
	Status        string                  `json:"status"`
	ApplicantInfo services.ApplicantInfo  `json:"applicant_info"`
	Details       services.ProgramDetails `json:"program_details"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

type memoryStore struct {
	mu           sync.RWMutex
	usersByID    map[string]*User
	usersByEmail map[string]*User
	results      map[string]*AssessmentRecord
	orders       map[string]*Order
	ordersByRef  map[string]*Order
	payments     []*Payment
	shares       map[string]*ResultShare
	applications map[string]*ProgramApplication
}

// NewMemoryStore returns an empty in-memory store, for tests and no-database
// dev runs.
func NewMemoryStore() Store { return newMemoryStore() }

func newMemoryStore() *memoryStore {
	return &memoryStore{
		usersByID:    map[string]*User{},
		usersByEmail: map[string]*User{},
		results:      map[string]*AssessmentRecord{},
		orders:       map[string]*Order{},
		ordersByRef:  map[string]*Order{},
		payments:     []*Payment{},
		shares:       map[string]*ResultShare{},
		applications: map[string]*ProgramApplication{},
	}
}

func (s *memoryStore) AddUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByID[u.ID] = u
	s.usersByEmail[strings.ToLower(u.Email)] = u
}

func (s *memoryStore) FindUserByEmail(email string) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByEmail[strings.ToLower(email)]
}

func (s *memoryStore) GetUser(id string) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByID[id]
}

func (s *memoryStore) AddResult(r *AssessmentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[r.ID] = r
}

func (s *memoryStore) GetResult(id string) *AssessmentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results[id]
}

func (s *memoryStore) ListResultsByUser(userID string) []*AssessmentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*AssessmentRecord{}
	for _, r := range s.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	// newest first
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memoryStore) ReassignSessionResults(sessionID, userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := 0
	for _, r := range s.results {
		if r.UserID == "" && r.SessionID == sessionID {
			r.UserID = userID
			r.SessionID = ""
			moved++
		}
	}
	return moved
}

func (s *memoryStore) AddOrder(o *Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
	s.ordersByRef[o.OrderRef] = o
}

func (s *memoryStore) GetOrderByRef(orderRef string) *Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ordersByRef[orderRef]
}

func (s *memoryStore) UpdateOrderStatus(orderID, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[orderID]
	if o == nil {
		return false
	}
	o.Status = status
	return true
}

func (s *memoryStore) AddPayment(p *Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, p)
}

func (s *memoryStore) ListPaymentsByOrder(orderID string) []*Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Payment{}
	for _, p := range s.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out
}

func (s *memoryStore) AddShare(sh *ResultShare) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shares[sh.ID] = sh
}

func (s *memoryStore) GetShare(id string) *ResultShare {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shares[id]
}

func (s *memoryStore) AddApplication(a *ProgramApplication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications[a.ID] = a
}

func (s *memoryStore) GetApplication(id string) *ProgramApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applications[id]
}

func (s *memoryStore) ListApplicationsByUser(userID string) []*ProgramApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*ProgramApplication{}
	for _, a := range s.applications {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memoryStore) UpdateApplicationStatus(id, status string, updatedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.applications[id]
	if a == nil {
		return false
	}
	a.Status = status
	a.UpdatedAt = updatedAt
	return true
}

// Snapshot is the JSON shape of a local data dump, used for one-time imports
// of results cached client-side before a database was configured.
type Snapshot struct {
	Users        []*User               `json:"users,omitempty"`
	Results      []*AssessmentRecord   `json:"results,omitempty"`
	Orders       []*Order              `json:"orders,omitempty"`
	Payments     []*Payment            `json:"payments,omitempty"`
	Shares       []*ResultShare        `json:"shares,omitempty"`
	Applications []*ProgramApplication `json:"applications,omitempty"`
}

// NewMemoryStoreFromPath loads a JSON snapshot file into a memory store.
func NewMemoryStoreFromPath(path string) (*memoryStore, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	s := newMemoryStore()
	for _, u := range snap.Users {
		if u != nil {
			s.AddUser(u)
		}
	}
	for _, r := range snap.Results {
		if r != nil {
			s.AddResult(r)
		}
	}
	for _, o := range snap.Orders {
		if o != nil {
			s.AddOrder(o)
		}
	}
	for _, p := range snap.Payments {
		if p != nil {
			s.AddPayment(p)
		}
	}
	for _, sh := range snap.Shares {
		if sh != nil {
			s.AddShare(sh)
		}
	}
	for _, a := range snap.Applications {
		if a != nil {
			s.AddApplication(a)
		}
	}
	return s, nil
}

// MemoryStoreSnapshot dumps a memory store for migration into another store.
func MemoryStoreSnapshot(s *memoryStore) *Snapshot {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := &Snapshot{}
	for _, u := range s.usersByID {
		snap.Users = append(snap.Users, u)
	}
	for _, r := range s.results {
		snap.Results = append(snap.Results, r)
	}
	for _, o := range s.orders {
		snap.Orders = append(snap.Orders, o)
	}
	snap.Payments = append(snap.Payments, s.payments...)
	for _, sh := range s.shares {
		snap.Shares = append(snap.Shares, sh)
	}
	for _, a := range s.applications {
		snap.Applications = append(snap.Applications, a)
	}
	return snap
}
