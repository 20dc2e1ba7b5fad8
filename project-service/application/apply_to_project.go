package application

import (
	"context"
	"fmt"

	"github.com/collabhub/platform/project-service/domain"
	"github.com/collabhub/platform/shared/events"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// ApplyToProjectCommand represents a user applying to a project
type ApplyToProjectCommand struct {
	ProjectID    int64  `json:"-"`
	UserID       string `json:"user_id"`
	PositionType string `json:"position_type"`
	Message      string `json:"message"`
}

// ApplyToProject records a pending application and tells the project owner.
type ApplyToProject struct {
	projectRepository     domain.ProjectRepository
	applicationRepository domain.ApplicationRepository
	notifier              domain.Notifier
	eventPublisher        events.Publisher
}

func NewApplyToProject(
	projectRepository domain.ProjectRepository,
	applicationRepository domain.ApplicationRepository,
	notifier domain.Notifier,
	eventPublisher events.Publisher,
) *ApplyToProject {
	return &ApplyToProject{
		projectRepository:     projectRepository,
		applicationRepository: applicationRepository,
		notifier:              notifier,
		eventPublisher:        eventPublisher,
	}
}

func (uc *ApplyToProject) Execute(ctx context.Context, cmd *ApplyToProjectCommand) (application *domain.Application, err error) {
	ctx, op := startOperation(ctx, "apply_to_project",
		attribute.Int64("project_id", cmd.ProjectID),
		attribute.String("user_id", cmd.UserID),
	)
	defer op.end(ctx, &err)

	application, err = domain.NewApplication(cmd.ProjectID, cmd.UserID, domain.PositionType(cmd.PositionType), cmd.Message)
	if err != nil {
		return nil, err
	}

	project, err := uc.projectRepository.FindByID(ctx, cmd.ProjectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find project")
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	if project.Status != domain.ProjectStatusRecruiting {
		return nil, domain.ErrProjectNotRecruiting
	}

	existing, err := uc.applicationRepository.FindByProjectAndUser(ctx, project.ID, cmd.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existing application")
	}
	if existing != nil {
		return nil, domain.ErrDuplicateApplication
	}

	if err := uc.applicationRepository.Create(ctx, application); err != nil {
		if errors.Is(err, domain.ErrDuplicateApplication) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to save application")
	}

	uc.notifier.Notify(ctx, project.OwnerID,
		fmt.Sprintf("New applicant for %q.", project.Title),
		projectLink(project.ID),
	)
	publish(ctx, uc.eventPublisher,
		events.NewEvent(projectAggregateID(project.ID), events.ApplicationSubmittedEvent, applicationPayload(application)),
	)

	return application, nil
}
