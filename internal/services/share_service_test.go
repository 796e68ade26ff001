package services

import (
	"testing"
	"time"
)

type stubShareStore struct {
	shares map[string]*ResultShare
}

func newStubShareStore() *stubShareStore {
	return &stubShareStore{shares: map[string]*ResultShare{}}
}

func (s *stubShareStore) AddShare(sh *ResultShare) error {
	s.shares[sh.ID] = sh
	return nil
}

func (s *stubShareStore) GetShare(id string) (*ResultShare, error) {
	return s.shares[id], nil
}

func shareResult() AssessmentResult {
	return AssessmentResult{
		CategoryScores: CategoryScores{Em: 60, Pe: 40, Ph: 50, Or: 30, Im: 20},
		ABOIndex:       44,
		Level:          LevelCaution,
		Timestamp:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestShareCreateAndGet(t *testing.T) {
	store := newStubShareStore()
	svc := NewShareService(store, "https://almostburnout.com/")

	res, err := svc.Create(shareResult(), &Demographics{Gender: "female", AgeGroup: "30s"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.ShareID == "" {
		t.Fatal("share id empty")
	}
	if res.ShareURL != "https://almostburnout.com/share/"+res.ShareID {
		t.Fatalf("share url: %s", res.ShareURL)
	}

	got, err := svc.Get(res.ShareID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Result.ABOIndex != 44 || got.Result.Level != LevelCaution {
		t.Fatalf("bad snapshot: %+v", got.Result)
	}
	if got.Demographics == nil || got.Demographics.AgeGroup != "30s" {
		t.Fatalf("demographics lost: %+v", got.Demographics)
	}
}

func TestShareCreateValidation(t *testing.T) {
	svc := NewShareService(newStubShareStore(), "https://x")

	bad := shareResult()
	bad.ABOIndex = 101
	if _, err := svc.Create(bad, nil); err == nil {
		t.Fatal("index out of range must fail")
	}

	bad = shareResult()
	bad.Level = ""
	if _, err := svc.Create(bad, nil); err == nil {
		t.Fatal("missing level must fail")
	}
}

func TestShareGetMissing(t *testing.T) {
	svc := NewShareService(newStubShareStore(), "https://x")
	_, err := svc.Get("nope")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Get(" "); err == nil {
		t.Fatal("blank id must fail")
	}
}
