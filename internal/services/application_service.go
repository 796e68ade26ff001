package services

import (
	"strings"
	"time"
)

// ApplicantInfo is the contact block of a program application.
type ApplicantInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"`
}

// ProgramDetails captures the quoted program shape at application time.
type ProgramDetails struct {
	Price    string `json:"price,omitempty"`
	Sessions string `json:"sessions,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// ProgramApplication tracks a coaching-program signup through its lifecycle.
type ProgramApplication struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id,omitempty"`
	SessionID     string         `json:"session_id,omitempty"`
	ProgramID     string         `json:"program_id"`
	ProgramTitle  string         `json:"program_title"`
	Type          string         `json:"application_type"` // apply|custom
	Status        string         `json:"status"`
	ApplicantInfo ApplicantInfo  `json:"applicant_info"`
	Details       ProgramDetails `json:"program_details"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

const (
	ApplicationTypeApply  = "apply"
	ApplicationTypeCustom = "custom"

	ApplicationStatusPending    = "pending"
	ApplicationStatusConfirmed  = "confirmed"
	ApplicationStatusInProgress = "in_progress"
	ApplicationStatusCompleted  = "completed"
	ApplicationStatusCancelled  = "cancelled"
)

var applicationStatuses = map[string]bool{
	ApplicationStatusPending:    true,
	ApplicationStatusConfirmed:  true,
	ApplicationStatusInProgress: true,
	ApplicationStatusCompleted:  true,
	ApplicationStatusCancelled:  true,
}

// ApplicationStore abstracts persistence for program applications.
type ApplicationStore interface {
	AddApplication(a *ProgramApplication) error
	GetApplication(id string) (*ProgramApplication, error)
	ListApplicationsByUser(userID string) ([]*ProgramApplication, error)
	UpdateApplicationStatus(id, status string, updatedAt time.Time) error
}

// ApplicationService manages coaching-program applications.
type ApplicationService struct {
	store ApplicationStore
	now   func() time.Time
	idGen func() string
}

func NewApplicationService(store ApplicationStore) *ApplicationService {
	return &ApplicationService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(12) },
	}
}

type ApplicationInput struct {
	UserID       string
	SessionID    string
	ProgramID    string
	ProgramTitle string
	Type         string
	Applicant    ApplicantInfo
	Details      ProgramDetails
}

// Save validates and persists a new application with status pending.
func (s *ApplicationService) Save(in ApplicationInput) (*ProgramApplication, error) {
	if strings.TrimSpace(in.ProgramID) == "" || strings.TrimSpace(in.ProgramTitle) == "" {
		return nil, NewInvalidError("program id/title required")
	}
	if in.Type != ApplicationTypeApply && in.Type != ApplicationTypeCustom {
		return nil, NewInvalidError("application type must be apply or custom")
	}
	if strings.TrimSpace(in.Applicant.Name) == "" || strings.TrimSpace(in.Applicant.Email) == "" {
		return nil, NewInvalidError("applicant name/email required")
	}

	now := s.now()
	app := &ProgramApplication{
		ID:            s.idGen(),
		UserID:        in.UserID,
		SessionID:     in.SessionID,
		ProgramID:     in.ProgramID,
		ProgramTitle:  in.ProgramTitle,
		Type:          in.Type,
		Status:        ApplicationStatusPending,
		ApplicantInfo: in.Applicant,
		Details:       in.Details,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.AddApplication(app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListByUser returns the user's applications, newest first.
func (s *ApplicationService) ListByUser(userID string) ([]*ProgramApplication, error) {
	if userID == "" {
		return nil, NewUnauthorizedError("login required")
	}
	return s.store.ListApplicationsByUser(userID)
}

// GetByID returns a single application after an ownership check.
func (s *ApplicationService) GetByID(id, userID string) (*ProgramApplication, error) {
	app, err := s.store.GetApplication(id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, NewNotFoundError("application not found")
	}
	if app.UserID != userID {
		return nil, NewForbiddenError("forbidden")
	}
	return app, nil
}

// UpdateStatus moves an owned application to a new lifecycle status.
func (s *ApplicationService) UpdateStatus(id, status, userID string) (*ProgramApplication, error) {
	if !applicationStatuses[status] {
		return nil, NewInvalidError("unknown status")
	}
	app, err := s.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.store.UpdateApplicationStatus(app.ID, status, now); err != nil {
		return nil, err
	}
	app.Status = status
	app.UpdatedAt = now
	return app, nil
}
