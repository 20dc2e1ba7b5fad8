package domain

import "context"

// MemberRole is a role inside a team
type MemberRole string

const (
	MemberRoleLeader MemberRole = "LEADER"
	MemberRoleMember MemberRole = "MEMBER"
)

// Team is owned by the team service; only its identity is kept here.
type Team struct {
	TeamID    int64  `json:"team_id"`
	ProjectID int64  `json:"project_id"`
	Name      string `json:"name"`
}

// TeamMember as returned by the team service
type TeamMember struct {
	TeamID       int64        `json:"team_id"`
	UserID       string       `json:"user_id"`
	Role         MemberRole   `json:"role"`
	PositionType PositionType `json:"position_type"`
}

type CreateTeamRequest struct {
	ProjectID      int64        `json:"project_id"`
	Name           string       `json:"name"`
	LeaderID       string       `json:"leader_id"`
	LeaderPosition PositionType `json:"leader_position"`
}

type AddMemberRequest struct {
	ProjectID    int64        `json:"project_id"`
	UserID       string       `json:"user_id"`
	PositionType PositionType `json:"position_type"`
	Role         MemberRole   `json:"role"`
}

// TeamGateway performs the remote steps against the team service.
type TeamGateway interface {
	CreateTeam(ctx context.Context, req CreateTeamRequest) (*Team, error)
	AddMember(ctx context.Context, req AddMemberRequest) (*TeamMember, error)
	// DeleteTeamByProject succeeds when the team was deleted or never existed.
	DeleteTeamByProject(ctx context.Context, projectID int64) error
}

// Notifier delivers best-effort user notifications. It never fails.
type Notifier interface {
	Notify(ctx context.Context, userID, message, link string)
}
