package api

import (
	"github.com/almostburnout/abo/internal/services"
)

type assessmentStoreAdapter struct {
	store Store
}

func newAssessmentStoreAdapter(store Store) services.AssessmentStore {
	return &assessmentStoreAdapter{store: store}
}

func recordToStorage(r *services.AssessmentRecord) *AssessmentRecord {
	return &AssessmentRecord{
		ID:             r.ID,
		UserID:         r.UserID,
		SessionID:      r.SessionID,
		CategoryScores: r.Result.CategoryScores,
		ABOIndex:       r.Result.ABOIndex,
		Level:          string(r.Result.Level),
		Timestamp:      r.Result.Timestamp,
		Demographics:   r.Result.Demographics,
		CreatedAt:      r.CreatedAt,
	}
}

func recordFromStorage(r *AssessmentRecord) *services.AssessmentRecord {
	return &services.AssessmentRecord{
		ID:        r.ID,
		UserID:    r.UserID,
		SessionID: r.SessionID,
		Result: services.AssessmentResult{
			CategoryScores: r.CategoryScores,
			ABOIndex:       r.ABOIndex,
			Level:          services.Level(r.Level),
			Timestamp:      r.Timestamp,
			Demographics:   r.Demographics,
		},
		CreatedAt: r.CreatedAt,
	}
}

func (a *assessmentStoreAdapter) AddResult(r *services.AssessmentRecord) error {
	if r == nil {
		return services.NewInvalidError("result required")
	}
	a.store.AddResult(recordToStorage(r))
	return nil
}

func (a *assessmentStoreAdapter) GetResult(id string) (*services.AssessmentRecord, error) {
	r := a.store.GetResult(id)
	if r == nil {
		return nil, nil
	}
	return recordFromStorage(r), nil
}

func (a *assessmentStoreAdapter) ListResultsByUser(userID string) ([]*services.AssessmentRecord, error) {
	rs := a.store.ListResultsByUser(userID)
	out := make([]*services.AssessmentRecord, 0, len(rs))
	for _, r := range rs {
		out = append(out, recordFromStorage(r))
	}
	return out, nil
}

func (a *assessmentStoreAdapter) ReassignSessionResults(sessionID, userID string) (int, error) {
	return a.store.ReassignSessionResults(sessionID, userID), nil
}

var _ services.AssessmentStore = (*assessmentStoreAdapter)(nil)
