package api

import (
	"github.com/almostburnout/abo/internal/services"
)

type shareStoreAdapter struct {
	store Store
}

// NewShareStoreAdapter exposes the share slice of the store as the service
// port, so callers can layer a cache in front.
func NewShareStoreAdapter(store Store) services.ShareStore {
	return &shareStoreAdapter{store: store}
}

func (a *shareStoreAdapter) AddShare(s *services.ResultShare) error {
	if s == nil {
		return services.NewInvalidError("share required")
	}
	a.store.AddShare(&ResultShare{
		ID:             s.ID,
		CategoryScores: s.Result.CategoryScores,
		ABOIndex:       s.Result.ABOIndex,
		Level:          string(s.Result.Level),
		Timestamp:      s.Result.Timestamp,
		Demographics:   s.Demographics,
		CreatedAt:      s.CreatedAt,
	})
	return nil
}

func (a *shareStoreAdapter) GetShare(id string) (*services.ResultShare, error) {
	sh := a.store.GetShare(id)
	if sh == nil {
		return nil, nil
	}
	return &services.ResultShare{
		ID: sh.ID,
		Result: services.AssessmentResult{
			CategoryScores: sh.CategoryScores,
			ABOIndex:       sh.ABOIndex,
			Level:          services.Level(sh.Level),
			Timestamp:      sh.Timestamp,
		},
		Demographics: sh.Demographics,
		CreatedAt:    sh.CreatedAt,
	}, nil
}

var _ services.ShareStore = (*shareStoreAdapter)(nil)
