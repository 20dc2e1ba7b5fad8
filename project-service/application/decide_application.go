package application

import (
	"context"
	"fmt"

	"github.com/collabhub/platform/project-service/domain"
	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/saga"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const (
	ApproveApplicationSaga = "approve_application_and_add_member"

	stepAcceptApplication = "accept application"
	stepAddTeamMember     = "add team member"
)

// DecideApplicationCommand accepts or rejects an application
type DecideApplicationCommand struct {
	ProjectID     int64  `json:"-"`
	ApplicationID int64  `json:"-"`
	Status        string `json:"status"`
}

// DecideApplicationResponse is the application after the decision
type DecideApplicationResponse struct {
	Application *domain.Application `json:"application"`
	TeamID      int64               `json:"team_id,omitempty"`
}

// DecideApplication approves an application by adding the applicant to the
// project's team, or rejects it locally.
type DecideApplication struct {
	projectRepository     domain.ProjectRepository
	applicationRepository domain.ApplicationRepository
	teams                 domain.TeamGateway
	notifier              domain.Notifier
	orchestrator          *saga.Orchestrator
	eventPublisher        events.Publisher
}

func NewDecideApplication(
	projectRepository domain.ProjectRepository,
	applicationRepository domain.ApplicationRepository,
	teams domain.TeamGateway,
	notifier domain.Notifier,
	orchestrator *saga.Orchestrator,
	eventPublisher events.Publisher,
) *DecideApplication {
	return &DecideApplication{
		projectRepository:     projectRepository,
		applicationRepository: applicationRepository,
		teams:                 teams,
		notifier:              notifier,
		orchestrator:          orchestrator,
		eventPublisher:        eventPublisher,
	}
}

// Execute applies the decision. Preconditions are checked before any remote
// call is made.
func (uc *DecideApplication) Execute(ctx context.Context, cmd *DecideApplicationCommand) (resp *DecideApplicationResponse, err error) {
	ctx, op := startOperation(ctx, "decide_application",
		attribute.Int64("project_id", cmd.ProjectID),
		attribute.Int64("application_id", cmd.ApplicationID),
		attribute.String("decision", cmd.Status),
	)
	defer op.end(ctx, &err)

	status, err := domain.ParseApplicationStatus(cmd.Status)
	if err != nil {
		return nil, err
	}
	if status != domain.ApplicationStatusAccepted && status != domain.ApplicationStatusRejected {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "status must be accepted or rejected, got %q", cmd.Status)
	}

	project, err := uc.projectRepository.FindByID(ctx, cmd.ProjectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find project")
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}

	application, err := uc.applicationRepository.FindByID(ctx, cmd.ApplicationID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find application")
	}
	if application == nil || application.ProjectID != project.ID {
		return nil, domain.ErrApplicationNotFound
	}
	if !application.IsPending() {
		return nil, domain.ErrApplicationNotPending
	}

	if status == domain.ApplicationStatusRejected {
		return uc.reject(ctx, project, application)
	}

	return uc.approve(ctx, project, application)
}

func (uc *DecideApplication) approve(ctx context.Context, project *domain.Project, application *domain.Application) (*DecideApplicationResponse, error) {
	result, err := uc.orchestrator.Run(ctx, saga.Definition{
		Name:                 ApproveApplicationSaga,
		AbortOnRemoteFailure: true,
		Steps: []saga.Step{
			saga.Local(stepAcceptApplication,
				func(ctx context.Context) (interface{}, error) {
					return uc.applicationRepository.Accept(ctx, application)
				},
				func(ctx context.Context, result interface{}) error {
					acceptance, ok := result.(*domain.Acceptance)
					if !ok {
						return errors.Errorf("unexpected accept result %T", result)
					}
					return uc.applicationRepository.RevertAcceptance(ctx, acceptance)
				},
			),
			saga.Remote(stepAddTeamMember, func(ctx context.Context) (interface{}, error) {
				return uc.teams.AddMember(ctx, domain.AddMemberRequest{
					ProjectID:    project.ID,
					UserID:       application.UserID,
					PositionType: application.PositionType,
					Role:         domain.MemberRoleMember,
				})
			}),
		},
	})
	if err != nil {
		return nil, err
	}

	application.Status = domain.ApplicationStatusAccepted
	resp := &DecideApplicationResponse{Application: application}
	if member, ok := result.Output(stepAddTeamMember).(*domain.TeamMember); ok && member != nil {
		resp.TeamID = member.TeamID
	}

	uc.notifier.Notify(ctx, application.UserID,
		fmt.Sprintf("Your application to %q was accepted.", project.Title),
		projectLink(project.ID),
	)
	publish(ctx, uc.eventPublisher,
		events.NewEvent(projectAggregateID(project.ID), events.ApplicationAcceptedEvent, applicationPayload(application)).
			WithCorrelationID(result.RunID),
	)

	return resp, nil
}

func (uc *DecideApplication) reject(ctx context.Context, project *domain.Project, application *domain.Application) (*DecideApplicationResponse, error) {
	if err := uc.applicationRepository.Reject(ctx, application.ID); err != nil {
		return nil, errors.Wrap(err, "failed to reject application")
	}
	application.Status = domain.ApplicationStatusRejected

	uc.notifier.Notify(ctx, application.UserID,
		fmt.Sprintf("Your application to %q was not accepted.", project.Title),
		projectLink(project.ID),
	)
	publish(ctx, uc.eventPublisher,
		events.NewEvent(projectAggregateID(project.ID), events.ApplicationRejectedEvent, applicationPayload(application)),
	)

	return &DecideApplicationResponse{Application: application}, nil
}

func applicationPayload(a *domain.Application) map[string]interface{} {
	return map[string]interface{}{
		"application_id": a.ID,
		"project_id":     a.ProjectID,
		"user_id":        a.UserID,
		"position_type":  string(a.PositionType),
		"status":         string(a.Status),
	}
}
