package handlers

import (
	"context"

	"github.com/collabhub/platform/project-service/application"
	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ProjectEventHandlers handles events from other services
type ProjectEventHandlers struct {
	releaseTeamMember *application.ReleaseTeamMember
}

func NewProjectEventHandlers(releaseTeamMember *application.ReleaseTeamMember) *ProjectEventHandlers {
	return &ProjectEventHandlers{releaseTeamMember: releaseTeamMember}
}

// Handle implements the events.EventHandler interface
func (h *ProjectEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.TeamMemberRemovedEvent:
		return h.HandleTeamMemberRemoved(ctx, event)
	default:
		return nil
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *ProjectEventHandlers) HandlerID() string {
	return "project-service-event-handler"
}

// HandleTeamMemberRemoved releases the seat of a member who left a team.
func (h *ProjectEventHandlers) HandleTeamMemberRemoved(ctx context.Context, event *events.Event) error {
	var cmd application.TeamMemberRemoved
	if err := event.UnmarshalPayload(&cmd); err != nil {
		return errors.Wrap(err, "invalid team.member.removed payload")
	}

	if err := h.releaseTeamMember.Execute(ctx, &cmd); err != nil {
		logger.Error("failed to release team member",
			zap.String("event_id", event.ID.String()),
			zap.Int64("project_id", cmd.ProjectID),
			zap.String("user_id", cmd.UserID),
			zap.Error(err),
		)
		return err
	}

	return nil
}
