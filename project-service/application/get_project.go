package application

import (
	"context"

	"github.com/collabhub/platform/project-service/domain"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// GetProjectResponse is a project with its applications
type GetProjectResponse struct {
	Project      *domain.Project       `json:"project"`
	Applications []*domain.Application `json:"applications"`
}

type GetProject struct {
	projectRepository     domain.ProjectRepository
	applicationRepository domain.ApplicationRepository
}

func NewGetProject(projectRepository domain.ProjectRepository, applicationRepository domain.ApplicationRepository) *GetProject {
	return &GetProject{
		projectRepository:     projectRepository,
		applicationRepository: applicationRepository,
	}
}

// Execute loads the project and its applications concurrently.
func (uc *GetProject) Execute(ctx context.Context, projectID int64) (resp *GetProjectResponse, err error) {
	ctx, op := startOperation(ctx, "get_project", attribute.Int64("project_id", projectID))
	defer op.end(ctx, &err)

	var (
		project      *domain.Project
		applications []*domain.Application
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := uc.projectRepository.FindByID(gctx, projectID)
		if err != nil {
			return errors.Wrap(err, "failed to find project")
		}
		project = p
		return nil
	})
	g.Go(func() error {
		a, err := uc.applicationRepository.ListByProject(gctx, projectID)
		if err != nil {
			return errors.Wrap(err, "failed to list applications")
		}
		applications = a
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	if applications == nil {
		applications = []*domain.Application{}
	}

	return &GetProjectResponse{Project: project, Applications: applications}, nil
}
