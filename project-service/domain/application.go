package domain

import (
	"context"
	"strings"

	"github.com/collabhub/platform/shared/models"
	"github.com/pkg/errors"
)

// ApplicationStatus represents the status of an application
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "PENDING"
	ApplicationStatusAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn ApplicationStatus = "WITHDRAWN"
)

// ParseApplicationStatus accepts any letter case.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return status, nil
	}
	return "", errors.Wrapf(ErrInvalidInput, "unknown application status %q", s)
}

// Application is a user's request to join a project in a position
type Application struct {
	ID           int64             `json:"id"`
	ProjectID    int64             `json:"project_id"`
	UserID       string            `json:"user_id"`
	PositionType PositionType      `json:"position_type"`
	Message      string            `json:"message,omitempty"`
	Status       ApplicationStatus `json:"status"`
	Timestamps   models.Timestamps `json:"-"`
}

// NewApplication creates a pending application
func NewApplication(projectID int64, userID string, positionType PositionType, message string) (*Application, error) {
	if userID == "" {
		return nil, errors.Wrap(ErrInvalidInput, "user ID is required")
	}
	if positionType == "" {
		positionType = PositionEtc
	}
	if !positionType.Valid() {
		return nil, errors.Wrapf(ErrInvalidInput, "unknown position type %q", positionType)
	}

	return &Application{
		ProjectID:    projectID,
		UserID:       userID,
		PositionType: positionType,
		Message:      message,
		Status:       ApplicationStatusPending,
		Timestamps:   models.NewTimestamps(),
	}, nil
}

func (a *Application) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

// Acceptance records what a tentative approval changed so it can be undone
// exactly.
type Acceptance struct {
	ApplicationID       int64        `json:"application_id"`
	ProjectID           int64        `json:"project_id"`
	PositionType        PositionType `json:"position_type"`
	PositionIncremented bool         `json:"position_incremented"`
}

// ApplicationRepository persists applications. The status-changing methods
// check the expected current status in the same statement that changes it,
// so concurrent deciders cannot both succeed.
type ApplicationRepository interface {
	// Create returns ErrDuplicateApplication if the user already applied.
	Create(ctx context.Context, application *Application) error
	FindByID(ctx context.Context, id int64) (*Application, error)
	FindByProjectAndUser(ctx context.Context, projectID int64, userID string) (*Application, error)
	ListByProject(ctx context.Context, projectID int64) ([]*Application, error)

	// Accept moves a PENDING application to ACCEPTED and increments its
	// position's filled count in one transaction. It returns
	// ErrApplicationNotPending if the application was no longer pending.
	Accept(ctx context.Context, application *Application) (*Acceptance, error)
	// RevertAcceptance restores PENDING and undoes the increment.
	RevertAcceptance(ctx context.Context, acceptance *Acceptance) error
	// Reject moves a PENDING application to REJECTED.
	Reject(ctx context.Context, id int64) error
	// Withdraw moves the user's ACCEPTED application to WITHDRAWN and
	// decrements the filled count. It returns nil if there is none.
	Withdraw(ctx context.Context, projectID int64, userID string) (*Application, error)
}
