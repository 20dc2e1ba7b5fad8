package application

import (
	"context"

	"github.com/collabhub/platform/project-service/domain"
	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/logger"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// TeamMemberRemoved is the payload of team.member.removed
type TeamMemberRemoved struct {
	ProjectID int64  `json:"project_id"`
	UserID    string `json:"user_id"`
}

// ReleaseTeamMember frees the seat of a member who left the team. Replays are
// harmless: without an accepted application there is nothing to release.
type ReleaseTeamMember struct {
	applicationRepository domain.ApplicationRepository
	eventPublisher        events.Publisher
}

func NewReleaseTeamMember(applicationRepository domain.ApplicationRepository, eventPublisher events.Publisher) *ReleaseTeamMember {
	return &ReleaseTeamMember{
		applicationRepository: applicationRepository,
		eventPublisher:        eventPublisher,
	}
}

func (uc *ReleaseTeamMember) Execute(ctx context.Context, cmd *TeamMemberRemoved) (err error) {
	ctx, op := startOperation(ctx, "release_team_member",
		attribute.Int64("project_id", cmd.ProjectID),
		attribute.String("user_id", cmd.UserID),
	)
	defer op.end(ctx, &err)

	if cmd.ProjectID == 0 || cmd.UserID == "" {
		return errors.Wrap(domain.ErrInvalidInput, "project_id and user_id are required")
	}

	application, err := uc.applicationRepository.Withdraw(ctx, cmd.ProjectID, cmd.UserID)
	if err != nil {
		return errors.Wrap(err, "failed to withdraw application")
	}
	if application == nil {
		logger.Debug("no accepted application to release",
			zap.Int64("project_id", cmd.ProjectID),
			zap.String("user_id", cmd.UserID),
		)
		return nil
	}

	publish(ctx, uc.eventPublisher,
		events.NewEvent(projectAggregateID(cmd.ProjectID), events.ApplicationWithdrawnEvent, applicationPayload(application)),
	)

	return nil
}
