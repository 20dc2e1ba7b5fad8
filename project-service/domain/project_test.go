package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		projectType   ProjectType
		ownerID       string
		positions     []RecruitmentPosition
		expectedError string
	}{
		{
			name:      "defaults to a project",
			title:     "  Atlas  ",
			ownerID:   "owner-1",
			positions: []RecruitmentPosition{{PositionType: PositionFrontend, TargetCount: 2, CurrentCount: 5}},
		},
		{
			name:          "title required",
			title:         "   ",
			ownerID:       "owner-1",
			expectedError: "title is required",
		},
		{
			name:          "owner required",
			title:         "Atlas",
			expectedError: "owner ID is required",
		},
		{
			name:          "unknown project type",
			title:         "Atlas",
			projectType:   "HACKATHON",
			ownerID:       "owner-1",
			expectedError: `unknown project type "HACKATHON"`,
		},
		{
			name:          "duplicate position",
			title:         "Atlas",
			ownerID:       "owner-1",
			positions:     []RecruitmentPosition{{PositionType: PositionDB, TargetCount: 1}, {PositionType: PositionDB, TargetCount: 1}},
			expectedError: "position DB listed twice",
		},
		{
			name:          "zero target",
			title:         "Atlas",
			ownerID:       "owner-1",
			positions:     []RecruitmentPosition{{PositionType: PositionInfra}},
			expectedError: "position INFRA needs a target count of at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := NewProject(tt.title, "", tt.projectType, tt.ownerID, tt.positions)

			if tt.expectedError != "" {
				assert.True(t, errors.Is(err, ErrInvalidInput))
				assert.ErrorIs(t, err, ErrPreconditionFailed)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, project)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Atlas", project.Title)
			assert.Equal(t, ProjectTypeProject, project.ProjectType)
			assert.Equal(t, ProjectStatusRecruiting, project.Status)
			assert.Equal(t, 0, project.Positions[0].CurrentCount)
			assert.False(t, project.Timestamps.CreatedAt.IsZero())
		})
	}
}

func TestProject_TeamName(t *testing.T) {
	assert.Equal(t, "Atlas Team", (&Project{Title: "Atlas", ProjectType: ProjectTypeProject}).TeamName())
	assert.Equal(t, "Go Study", (&Project{Title: "Go", ProjectType: ProjectTypeStudy}).TeamName())
}

func TestProject_Position(t *testing.T) {
	project := &Project{Positions: []RecruitmentPosition{{PositionType: PositionDesign, TargetCount: 1}}}

	require.NotNil(t, project.Position(PositionDesign))
	project.Position(PositionDesign).CurrentCount++
	assert.Equal(t, 1, project.Positions[0].CurrentCount)
	assert.Nil(t, project.Position(PositionBackend))
}
