package domain

import (
	"context"
	"strings"

	"github.com/collabhub/platform/shared/models"
	"github.com/pkg/errors"
)

// ProjectType distinguishes projects from study groups
type ProjectType string

const (
	ProjectTypeProject ProjectType = "PROJECT"
	ProjectTypeStudy   ProjectType = "STUDY"
)

// ProjectStatus represents the lifecycle of a project
type ProjectStatus string

const (
	ProjectStatusRecruiting ProjectStatus = "RECRUITING"
	ProjectStatusProceeding ProjectStatus = "PROCEEDING"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
)

// PositionType is a role a member fills in a team
type PositionType string

const (
	PositionFrontend PositionType = "FRONTEND"
	PositionBackend  PositionType = "BACKEND"
	PositionDesign   PositionType = "DESIGN"
	PositionDB       PositionType = "DB"
	PositionInfra    PositionType = "INFRA"
	PositionEtc      PositionType = "ETC"
)

func (p PositionType) Valid() bool {
	switch p {
	case PositionFrontend, PositionBackend, PositionDesign, PositionDB, PositionInfra, PositionEtc:
		return true
	}
	return false
}

func (t ProjectType) Valid() bool {
	return t == ProjectTypeProject || t == ProjectTypeStudy
}

// RecruitmentPosition tracks how many members a project wants for a position
// and how many it has accepted so far.
type RecruitmentPosition struct {
	ID           int64        `json:"id"`
	ProjectID    int64        `json:"project_id"`
	PositionType PositionType `json:"position_type"`
	TargetCount  int          `json:"target_count"`
	CurrentCount int          `json:"current_count"`
}

// Project aggregate root
type Project struct {
	ID          int64                 `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	ProjectType ProjectType           `json:"project_type"`
	Status      ProjectStatus         `json:"status"`
	OwnerID     string                `json:"owner_id"`
	Positions   []RecruitmentPosition `json:"positions"`
	Timestamps  models.Timestamps     `json:"-"`
}

// NewProject creates a recruiting project. Each position type may appear once.
func NewProject(title, description string, projectType ProjectType, ownerID string, positions []RecruitmentPosition) (*Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.Wrap(ErrInvalidInput, "title is required")
	}
	if ownerID == "" {
		return nil, errors.Wrap(ErrInvalidInput, "owner ID is required")
	}
	if projectType == "" {
		projectType = ProjectTypeProject
	}
	if !projectType.Valid() {
		return nil, errors.Wrapf(ErrInvalidInput, "unknown project type %q", projectType)
	}

	seen := make(map[PositionType]bool, len(positions))
	for i := range positions {
		pos := &positions[i]
		if !pos.PositionType.Valid() {
			return nil, errors.Wrapf(ErrInvalidInput, "unknown position type %q", pos.PositionType)
		}
		if seen[pos.PositionType] {
			return nil, errors.Wrapf(ErrInvalidInput, "position %s listed twice", pos.PositionType)
		}
		if pos.TargetCount < 1 {
			return nil, errors.Wrapf(ErrInvalidInput, "position %s needs a target count of at least 1", pos.PositionType)
		}
		seen[pos.PositionType] = true
		pos.CurrentCount = 0
	}

	return &Project{
		Title:       title,
		Description: description,
		ProjectType: projectType,
		Status:      ProjectStatusRecruiting,
		OwnerID:     ownerID,
		Positions:   positions,
		Timestamps:  models.NewTimestamps(),
	}, nil
}

// TeamName is the name of the team created for the project.
func (p *Project) TeamName() string {
	if p.ProjectType == ProjectTypeStudy {
		return p.Title + " Study"
	}
	return p.Title + " Team"
}

func (p *Project) IsOwnedBy(userID string) bool {
	return p.OwnerID == userID
}

// Position returns the recruitment position of the given type, if any.
func (p *Project) Position(positionType PositionType) *RecruitmentPosition {
	for i := range p.Positions {
		if p.Positions[i].PositionType == positionType {
			return &p.Positions[i]
		}
	}
	return nil
}

// ProjectRepository persists projects together with their positions.
type ProjectRepository interface {
	// Create inserts the project and its positions atomically and assigns IDs.
	Create(ctx context.Context, project *Project) error
	// Delete removes the project with its positions and applications.
	Delete(ctx context.Context, id int64) error
	// FindByID returns nil when the project does not exist.
	FindByID(ctx context.Context, id int64) (*Project, error)
}
