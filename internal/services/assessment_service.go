package services

import (
	"strings"
	"time"
)

// AssessmentRecord is a persisted assessment result attributed to either an
// authenticated user or an anonymous session.
type AssessmentRecord struct {
	ID        string
	UserID    string
	SessionID string
	Result    AssessmentResult
	CreatedAt time.Time
}

// AssessmentStore abstracts persistence for assessment records.
type AssessmentStore interface {
	AddResult(r *AssessmentRecord) error
	GetResult(id string) (*AssessmentRecord, error)
	ListResultsByUser(userID string) ([]*AssessmentRecord, error)
	ReassignSessionResults(sessionID, userID string) (int, error)
}

// AssessmentService runs the scoring engine over submitted answers and
// manages the resulting records.
type AssessmentService struct {
	store    AssessmentStore
	selector *QuickWinSelector
	now      func() time.Time
	idGen    func() string
}

func NewAssessmentService(store AssessmentStore) *AssessmentService {
	return &AssessmentService{
		store:    store,
		selector: NewQuickWinSelector(),
		now:      func() time.Time { return time.Now().UTC() },
		idGen:    func() string { return shortID(12) },
	}
}

// SubmitInput carries one completed (or partial) questionnaire.
type SubmitInput struct {
	Answers      map[int]int
	Demographics *Demographics
	UserID       string
	SessionID    string
}

// SubmitOutput is the stored record plus the selected quick wins.
type SubmitOutput struct {
	Record    *AssessmentRecord
	QuickWins []QuickWin
}

// Submit scores the answers, persists the result and returns it together
// with 1-3 quick wins. Pre-auth submissions must carry a session id so the
// result can later be migrated to an account.
func (s *AssessmentService) Submit(in SubmitInput) (*SubmitOutput, error) {
	if in.UserID == "" && strings.TrimSpace(in.SessionID) == "" {
		return nil, NewInvalidError("session_id required for anonymous submissions")
	}

	scores := CalculateScores(in.Answers)
	index := CalculateABOIndex(scores)
	now := s.now()
	rec := &AssessmentRecord{
		ID:        s.idGen(),
		UserID:    in.UserID,
		SessionID: strings.TrimSpace(in.SessionID),
		Result: AssessmentResult{
			CategoryScores: scores,
			ABOIndex:       index,
			Level:          BurnoutLevel(index),
			Timestamp:      now,
			Demographics:   in.Demographics,
		},
		CreatedAt: now,
	}
	if err := s.store.AddResult(rec); err != nil {
		return nil, err
	}
	return &SubmitOutput{Record: rec, QuickWins: s.selector.Select(scores)}, nil
}

// ListByUser returns the user's assessment history, newest first.
func (s *AssessmentService) ListByUser(userID string) ([]*AssessmentRecord, error) {
	if userID == "" {
		return nil, NewUnauthorizedError("login required")
	}
	return s.store.ListResultsByUser(userID)
}

// GetByID returns a single record after an ownership check.
func (s *AssessmentService) GetByID(id, userID string) (*AssessmentRecord, error) {
	if id == "" {
		return nil, NewInvalidError("id required")
	}
	rec, err := s.store.GetResult(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, NewNotFoundError("result not found")
	}
	if rec.UserID != userID {
		return nil, NewForbiddenError("forbidden")
	}
	return rec, nil
}

// MigrateSession re-attributes anonymous session results to the given user.
// Returns the number of migrated records.
func (s *AssessmentService) MigrateSession(sessionID, userID string) (int, error) {
	if userID == "" {
		return 0, NewUnauthorizedError("login required")
	}
	if strings.TrimSpace(sessionID) == "" {
		return 0, NewInvalidError("session_id required")
	}
	return s.store.ReassignSessionResults(strings.TrimSpace(sessionID), userID)
}
