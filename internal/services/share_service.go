package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResultShare is a PII-free snapshot of a result published under a random id.
type ResultShare struct {
	ID           string
	Result       AssessmentResult
	Demographics *Demographics
	CreatedAt    time.Time
}

// ShareStore abstracts persistence for shared results.
type ShareStore interface {
	AddShare(s *ResultShare) error
	GetShare(id string) (*ResultShare, error)
}

// ShareService publishes assessment results under shareable links.
type ShareService struct {
	store   ShareStore
	siteURL string
	now     func() time.Time
	idGen   func() string
}

func NewShareService(store ShareStore, siteURL string) *ShareService {
	return &ShareService{
		store:   store,
		siteURL: strings.TrimRight(siteURL, "/"),
		now:     func() time.Time { return time.Now().UTC() },
		idGen:   uuid.NewString,
	}
}

type ShareResult struct {
	ShareID  string
	ShareURL string
}

// Create stores the snapshot and returns the public URL. Only the scores,
// index, level, timestamp and the optional demographic tags are published.
func (s *ShareService) Create(result AssessmentResult, demographics *Demographics) (*ShareResult, error) {
	if result.ABOIndex < 0 || result.ABOIndex > 100 {
		return nil, NewInvalidError("invalid result")
	}
	if result.Level == "" {
		return nil, NewInvalidError("result level required")
	}
	share := &ResultShare{
		ID:           s.idGen(),
		Result:       result,
		Demographics: demographics,
		CreatedAt:    s.now(),
	}
	if err := s.store.AddShare(share); err != nil {
		return nil, err
	}
	return &ShareResult{ShareID: share.ID, ShareURL: s.siteURL + "/share/" + share.ID}, nil
}

// Get returns a shared snapshot by id.
func (s *ShareService) Get(id string) (*ResultShare, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewInvalidError("share id required")
	}
	share, err := s.store.GetShare(id)
	if err != nil {
		return nil, err
	}
	if share == nil {
		return nil, NewNotFoundError("share not found")
	}
	return share, nil
}
