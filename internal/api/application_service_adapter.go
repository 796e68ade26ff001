package api

import (
	"time"

	"github.com/almostburnout/abo/internal/services"
)

type applicationStoreAdapter struct {
	store Store
}

func newApplicationStoreAdapter(store Store) services.ApplicationStore {
	return &applicationStoreAdapter{store: store}
}

func applicationToStorage(a *services.ProgramApplication) *ProgramApplication {
	return &ProgramApplication{
		ID:            a.ID,
		UserID:        a.UserID,
		SessionID:     a.SessionID,
		ProgramID:     a.ProgramID,
		ProgramTitle:  a.ProgramTitle,
		Type:          a.Type,
		Status:        a.Status,
		ApplicantInfo: a.ApplicantInfo,
		Details:       a.Details,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func applicationFromStorage(a *ProgramApplication) *services.ProgramApplication {
	return &services.ProgramApplication{
		ID:            a.ID,
		UserID:        a.UserID,
		SessionID:     a.SessionID,
		ProgramID:     a.ProgramID,
		ProgramTitle:  a.ProgramTitle,
		Type:          a.Type,
		Status:        a.Status,
		ApplicantInfo: a.ApplicantInfo,
		Details:       a.Details,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (a *applicationStoreAdapter) AddApplication(app *services.ProgramApplication) error {
	if app == nil {
		return services.NewInvalidError("application required")
	}
	a.store.AddApplication(applicationToStorage(app))
	return nil
}

func (a *applicationStoreAdapter) GetApplication(id string) (*services.ProgramApplication, error) {
	app := a.store.GetApplication(id)
	if app == nil {
		return nil, nil
	}
	return applicationFromStorage(app), nil
}

func (a *applicationStoreAdapter) ListApplicationsByUser(userID string) ([]*services.ProgramApplication, error) {
	apps := a.store.ListApplicationsByUser(userID)
	out := make([]*services.ProgramApplication, 0, len(apps))
	for _, app := range apps {
		out = append(out, applicationFromStorage(app))
	}
	return out, nil
}

func (a *applicationStoreAdapter) UpdateApplicationStatus(id, status string, updatedAt time.Time) error {
	if !a.store.UpdateApplicationStatus(id, status, updatedAt) {
		return services.NewNotFoundError("application not found")
	}
	return nil
}

var _ services.ApplicationStore = (*applicationStoreAdapter)(nil)
