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
	CreateProjectSaga = "create_project_with_team"

	stepCreateProject = "create project"
	stepCreateTeam    = "create team"
)

// PositionRequest is a recruitment position in a CreateProjectCommand
type PositionRequest struct {
	PositionType string `json:"position_type"`
	TargetCount  int    `json:"target_count"`
}

// CreateProjectCommand represents the command to create a project
type CreateProjectCommand struct {
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	ProjectType    string            `json:"project_type"`
	OwnerID        string            `json:"owner_id"`
	LeaderPosition string            `json:"leader_position,omitempty"`
	Positions      []PositionRequest `json:"positions"`
}

// CreateProjectResponse carries the confirmed project and its team
type CreateProjectResponse struct {
	Project *domain.Project `json:"project"`
	TeamID  int64           `json:"team_id"`
}

// CreateProject creates a project together with its team in the team service
type CreateProject struct {
	projectRepository domain.ProjectRepository
	teams             domain.TeamGateway
	orchestrator      *saga.Orchestrator
	eventPublisher    events.Publisher
}

func NewCreateProject(
	projectRepository domain.ProjectRepository,
	teams domain.TeamGateway,
	orchestrator *saga.Orchestrator,
	eventPublisher events.Publisher,
) *CreateProject {
	return &CreateProject{
		projectRepository: projectRepository,
		teams:             teams,
		orchestrator:      orchestrator,
		eventPublisher:    eventPublisher,
	}
}

// Execute writes the project tentatively, then creates the team. If the team
// cannot be created the project row is deleted again.
func (uc *CreateProject) Execute(ctx context.Context, cmd *CreateProjectCommand) (resp *CreateProjectResponse, err error) {
	ctx, op := startOperation(ctx, "create_project",
		attribute.String("owner_id", cmd.OwnerID),
		attribute.String("project_type", cmd.ProjectType),
	)
	defer op.end(ctx, &err)

	positions := make([]domain.RecruitmentPosition, len(cmd.Positions))
	for i, p := range cmd.Positions {
		positions[i] = domain.RecruitmentPosition{
			PositionType: domain.PositionType(p.PositionType),
			TargetCount:  p.TargetCount,
		}
	}

	project, err := domain.NewProject(cmd.Title, cmd.Description, domain.ProjectType(cmd.ProjectType), cmd.OwnerID, positions)
	if err != nil {
		return nil, err
	}

	leaderPosition := domain.PositionBackend
	if cmd.LeaderPosition != "" {
		leaderPosition = domain.PositionType(cmd.LeaderPosition)
		if !leaderPosition.Valid() {
			return nil, errors.Wrapf(domain.ErrInvalidInput, "unknown leader position %q", cmd.LeaderPosition)
		}
	}

	result, err := uc.orchestrator.Run(ctx, saga.Definition{
		Name:                 CreateProjectSaga,
		AbortOnRemoteFailure: true,
		Steps: []saga.Step{
			saga.Local(stepCreateProject,
				func(ctx context.Context) (interface{}, error) {
					if err := uc.projectRepository.Create(ctx, project); err != nil {
						return nil, errors.Wrap(err, "failed to save project")
					}
					return project.ID, nil
				},
				func(ctx context.Context, _ interface{}) error {
					return uc.projectRepository.Delete(ctx, project.ID)
				},
			),
			saga.Remote(stepCreateTeam, func(ctx context.Context) (interface{}, error) {
				return uc.teams.CreateTeam(ctx, domain.CreateTeamRequest{
					ProjectID:      project.ID,
					Name:           project.TeamName(),
					LeaderID:       project.OwnerID,
					LeaderPosition: leaderPosition,
				})
			}),
		},
	})
	if err != nil {
		return nil, err
	}

	team, _ := result.Output(stepCreateTeam).(*domain.Team)
	resp = &CreateProjectResponse{Project: project}
	if team != nil {
		resp.TeamID = team.TeamID
	}

	publish(ctx, uc.eventPublisher,
		events.NewEvent(projectAggregateID(project.ID), events.ProjectCreatedEvent, map[string]interface{}{
			"project_id": project.ID,
			"owner_id":   project.OwnerID,
			"title":      project.Title,
			"team_id":    resp.TeamID,
		}).WithCorrelationID(result.RunID),
	)

	return resp, nil
}
