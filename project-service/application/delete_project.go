package application

import (
	"context"

	"github.com/collabhub/platform/project-service/domain"
	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/saga"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DeleteProjectSaga = "delete_project_with_team"

	stepDeleteTeam    = "delete team"
	stepDeleteProject = "delete project"
)

// DeleteProjectCommand deletes a project. RequestedBy is optional; when set
// it must be the project owner.
type DeleteProjectCommand struct {
	ProjectID   int64
	RequestedBy string
}

type DeleteProjectResponse struct {
	ProjectID   int64 `json:"project_id"`
	TeamDeleted bool  `json:"team_deleted"`
}

// DeleteProject deletes the project's team first and the project after it.
// A failed team deletion leaves an orphaned team but does not stop the
// project from being deleted.
type DeleteProject struct {
	projectRepository domain.ProjectRepository
	teams             domain.TeamGateway
	orchestrator      *saga.Orchestrator
	eventPublisher    events.Publisher
}

func NewDeleteProject(
	projectRepository domain.ProjectRepository,
	teams domain.TeamGateway,
	orchestrator *saga.Orchestrator,
	eventPublisher events.Publisher,
) *DeleteProject {
	return &DeleteProject{
		projectRepository: projectRepository,
		teams:             teams,
		orchestrator:      orchestrator,
		eventPublisher:    eventPublisher,
	}
}

func (uc *DeleteProject) Execute(ctx context.Context, cmd *DeleteProjectCommand) (resp *DeleteProjectResponse, err error) {
	ctx, op := startOperation(ctx, "delete_project",
		attribute.Int64("project_id", cmd.ProjectID),
	)
	defer op.end(ctx, &err)

	project, err := uc.projectRepository.FindByID(ctx, cmd.ProjectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find project")
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	if cmd.RequestedBy != "" && !project.IsOwnedBy(cmd.RequestedBy) {
		return nil, domain.ErrForbidden
	}

	result, err := uc.orchestrator.Run(ctx, saga.Definition{
		Name:                 DeleteProjectSaga,
		AbortOnRemoteFailure: false,
		Steps: []saga.Step{
			saga.Remote(stepDeleteTeam, func(ctx context.Context) (interface{}, error) {
				return nil, uc.teams.DeleteTeamByProject(ctx, project.ID)
			}),
			saga.Local(stepDeleteProject,
				func(ctx context.Context) (interface{}, error) {
					if err := uc.projectRepository.Delete(ctx, project.ID); err != nil {
						return nil, errors.Wrap(err, "failed to delete project")
					}
					return nil, nil
				},
				nil,
			),
		},
	})
	if err != nil {
		return nil, err
	}

	resp = &DeleteProjectResponse{
		ProjectID:   project.ID,
		TeamDeleted: len(result.Skipped) == 0,
	}

	publish(ctx, uc.eventPublisher,
		events.NewEvent(projectAggregateID(project.ID), events.ProjectDeletedEvent, map[string]interface{}{
			"project_id":   project.ID,
			"team_deleted": resp.TeamDeleted,
		}).WithCorrelationID(result.RunID),
	)

	return resp, nil
}
