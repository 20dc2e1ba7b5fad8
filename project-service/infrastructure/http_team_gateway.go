package infrastructure

import (
	"context"
	"net/http"
	"strconv"

	"github.com/collabhub/platform/project-service/domain"
	"github.com/collabhub/platform/shared/resilience"
	"github.com/pkg/errors"
)

var _ domain.TeamGateway = (*HTTPTeamGateway)(nil)

// HTTPTeamGateway calls the team service through a breaker-guarded client.
// Errors keep their resilience.CallError so callers can tell an open circuit
// from a failed call.
type HTTPTeamGateway struct {
	client resilience.Caller
}

func NewHTTPTeamGateway(client resilience.Caller) *HTTPTeamGateway {
	return &HTTPTeamGateway{client: client}
}

// CreateTeam calls POST /teams
func (g *HTTPTeamGateway) CreateTeam(ctx context.Context, req domain.CreateTeamRequest) (*domain.Team, error) {
	resp, err := g.client.Call(ctx, resilience.Request{
		Method: http.MethodPost,
		Path:   "/teams",
		Body:   req,
	})
	if err != nil {
		return nil, err
	}

	var team domain.Team
	if err := resp.Decode(&team); err != nil {
		return nil, errors.Wrap(err, "failed to decode created team")
	}

	return &team, nil
}

// AddMember calls POST /teams/members
func (g *HTTPTeamGateway) AddMember(ctx context.Context, req domain.AddMemberRequest) (*domain.TeamMember, error) {
	resp, err := g.client.Call(ctx, resilience.Request{
		Method: http.MethodPost,
		Path:   "/teams/members",
		Body:   req,
	})
	if err != nil {
		return nil, err
	}

	var member domain.TeamMember
	if err := resp.Decode(&member); err != nil {
		return nil, errors.Wrap(err, "failed to decode team member")
	}

	return &member, nil
}

// DeleteTeamByProject calls DELETE /teams/by-project/{project_id}
func (g *HTTPTeamGateway) DeleteTeamByProject(ctx context.Context, projectID int64) error {
	_, err := g.client.Call(ctx, resilience.Request{
		Method: http.MethodDelete,
		Path:   "/teams/by-project/" + strconv.FormatInt(projectID, 10),
	})
	return err
}
