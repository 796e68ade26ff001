package services

import (
	"testing"
)

type stubAssessmentStore struct {
	records map[string]*AssessmentRecord
}

func newStubAssessmentStore() *stubAssessmentStore {
	return &stubAssessmentStore{records: map[string]*AssessmentRecord{}}
}

func (s *stubAssessmentStore) AddResult(r *AssessmentRecord) error {
	s.records[r.ID] = r
	return nil
}

func (s *stubAssessmentStore) GetResult(id string) (*AssessmentRecord, error) {
	return s.records[id], nil
}

func (s *stubAssessmentStore) ListResultsByUser(userID string) ([]*AssessmentRecord, error) {
	out := []*AssessmentRecord{}
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubAssessmentStore) ReassignSessionResults(sessionID, userID string) (int, error) {
	moved := 0
	for _, r := range s.records {
		if r.UserID == "" && r.SessionID == sessionID {
			r.UserID = userID
			r.SessionID = ""
			moved++
		}
	}
	return moved, nil
}

func TestSubmitAnonymousRequiresSession(t *testing.T) {
	svc := NewAssessmentService(newStubAssessmentStore())
	_, err := svc.Submit(SubmitInput{Answers: answersAll(3)})
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid error, got %v", err)
	}
}

func TestSubmitScoresAndPersists(t *testing.T) {
	store := newStubAssessmentStore()
	svc := NewAssessmentService(store)
	out, err := svc.Submit(SubmitInput{Answers: answersAll(5), SessionID: "sess-1"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	rec := out.Record
	if rec.ID == "" || rec.SessionID != "sess-1" {
		t.Fatalf("bad record: %+v", rec)
	}
	if rec.Result.Level != LevelDanger {
		t.Fatalf("all 5s should land in danger, got %s", rec.Result.Level)
	}
	if store.records[rec.ID] == nil {
		t.Fatal("record not persisted")
	}
	if n := len(out.QuickWins); n < 1 || n > 3 {
		t.Fatalf("quick wins out of range: %d", n)
	}
	if out.QuickWins[len(out.QuickWins)-1].Emoji != universalQuickWin.Emoji {
		t.Fatal("quick wins must end with the universal mission")
	}
}

func TestGetByIDOwnership(t *testing.T) {
	store := newStubAssessmentStore()
	svc := NewAssessmentService(store)
	out, err := svc.Submit(SubmitInput{Answers: answersAll(2), UserID: "u1"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.GetByID(out.Record.ID, "u1"); err != nil {
		t.Fatalf("owner should read own record: %v", err)
	}
	_, err = svc.GetByID(out.Record.ID, "u2")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	_, err = svc.GetByID("missing", "u1")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMigrateSession(t *testing.T) {
	store := newStubAssessmentStore()
	svc := NewAssessmentService(store)
	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(SubmitInput{Answers: answersAll(3), SessionID: "sess-9"}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if _, err := svc.Submit(SubmitInput{Answers: answersAll(3), SessionID: "other"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	moved, err := svc.MigrateSession("sess-9", "u1")
	if err != nil {
		t.Fatalf("MigrateSession: %v", err)
	}
	if moved != 2 {
		t.Fatalf("moved=%d want 2", moved)
	}
	recs, err := svc.ListByUser("u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("user should own 2 records, got %d", len(recs))
	}
	// second migration is a no-op
	moved, err = svc.MigrateSession("sess-9", "u1")
	if err != nil || moved != 0 {
		t.Fatalf("second migration should move 0, got %d %v", moved, err)
	}
}

func TestMigrateSessionValidation(t *testing.T) {
	svc := NewAssessmentService(newStubAssessmentStore())
	if _, err := svc.MigrateSession("sess", ""); err == nil {
		t.Fatal("missing user must fail")
	}
	if _, err := svc.MigrateSession("  ", "u1"); err == nil {
		t.Fatal("blank session must fail")
	}
}
