package api

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryStoreUsers(t *testing.T) {
	s := NewMemoryStore()
	s.AddUser(&User{ID: "u1", Email: "Kim@Example.com", Name: "Kim", CreatedAt: time.Now()})

	if got := s.FindUserByEmail("kim@example.com"); got == nil || got.ID != "u1" {
		t.Fatalf("email lookup must be case-insensitive, got %+v", got)
	}
	if got := s.GetUser("u1"); got == nil {
		t.Fatal("GetUser failed")
	}
	if got := s.GetUser("missing"); got != nil {
		t.Fatalf("missing user should be nil, got %+v", got)
	}
}

func TestMemoryStoreResultsOrdering(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s.AddResult(&AssessmentRecord{
			ID:        string(rune('a' + i)),
			UserID:    "u1",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	recs := s.ListResultsByUser("u1")
	if len(recs) != 3 {
		t.Fatalf("want 3 records, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].CreatedAt.After(recs[i-1].CreatedAt) {
			t.Fatal("results must be newest first")
		}
	}
}

func TestMemoryStoreReassignSession(t *testing.T) {
	s := NewMemoryStore()
	s.AddResult(&AssessmentRecord{ID: "r1", SessionID: "sess"})
	s.AddResult(&AssessmentRecord{ID: "r2", SessionID: "sess"})
	s.AddResult(&AssessmentRecord{ID: "r3", UserID: "u2", SessionID: "sess"}) // already owned

	if moved := s.ReassignSessionResults("sess", "u1"); moved != 2 {
		t.Fatalf("moved=%d want 2", moved)
	}
	if len(s.ListResultsByUser("u1")) != 2 {
		t.Fatal("reassigned results not listed under the user")
	}
	if r := s.GetResult("r3"); r.UserID != "u2" {
		t.Fatal("owned results must not be reassigned")
	}
}

func TestMemoryStoreOrders(t *testing.T) {
	s := NewMemoryStore()
	s.AddOrder(&Order{ID: "o1", OrderRef: "ABO_1_x", Status: "pending"})

	if got := s.GetOrderByRef("ABO_1_x"); got == nil || got.ID != "o1" {
		t.Fatalf("order ref lookup failed: %+v", got)
	}
	if !s.UpdateOrderStatus("o1", "completed") {
		t.Fatal("update should succeed")
	}
	if s.UpdateOrderStatus("missing", "completed") {
		t.Fatal("update of missing order should fail")
	}
	if got := s.GetOrderByRef("ABO_1_x"); got.Status != "completed" {
		t.Fatalf("status not updated: %s", got.Status)
	}

	s.AddPayment(&Payment{ID: "p1", OrderID: "o1"})
	s.AddPayment(&Payment{ID: "p2", OrderID: "o2"})
	if got := s.ListPaymentsByOrder("o1"); len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("payments by order: %+v", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := newMemoryStore()
	src.AddUser(&User{ID: "u1", Email: "a@b.c", Name: "Kim"})
	src.AddResult(&AssessmentRecord{ID: "r1", UserID: "u1", ABOIndex: 42, Level: "caution"})
	src.AddOrder(&Order{ID: "o1", OrderRef: "ABO_1_x"})
	src.AddShare(&ResultShare{ID: "sh1", ABOIndex: 42, Level: "caution"})
	src.AddApplication(&ProgramApplication{ID: "app1", UserID: "u1"})

	snap := MemoryStoreSnapshot(src)
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	dst, err := NewMemoryStoreFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dst.GetUser("u1") == nil || dst.GetResult("r1") == nil {
		t.Fatal("users/results lost in round trip")
	}
	if dst.GetOrderByRef("ABO_1_x") == nil || dst.GetShare("sh1") == nil || dst.GetApplication("app1") == nil {
		t.Fatal("orders/shares/applications lost in round trip")
	}
	if dst.GetResult("r1").ABOIndex != 42 {
		t.Fatal("result fields lost")
	}
}
