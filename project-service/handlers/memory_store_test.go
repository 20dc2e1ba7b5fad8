package handlers

import (
	"context"
	"sync"

	"github.com/collabhub/platform/project-service/domain"
)

// memoryStore backs both repositories with the same locking rules as the
// Postgres ones.
type memoryStore struct {
	mu           sync.Mutex
	nextID       int64
	projects     map[int64]*domain.Project
	applications map[int64]*domain.Application
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		nextID:       100,
		projects:     make(map[int64]*domain.Project),
		applications: make(map[int64]*domain.Application),
	}
}

func (s *memoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

type memoryProjects struct{ *memoryStore }

func (s memoryProjects) Create(_ context.Context, project *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project.ID = s.id()
	for i := range project.Positions {
		project.Positions[i].ID = s.id()
		project.Positions[i].ProjectID = project.ID
	}
	cp := *project
	cp.Positions = append([]domain.RecruitmentPosition(nil), project.Positions...)
	s.projects[project.ID] = &cp
	return nil
}

func (s memoryProjects) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	for aid, a := range s.applications {
		if a.ProjectID == id {
			delete(s.applications, aid)
		}
	}
	return nil
}

func (s memoryProjects) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Positions = append([]domain.RecruitmentPosition(nil), p.Positions...)
	return &cp, nil
}

type memoryApplications struct{ *memoryStore }

func (s memoryApplications) Create(_ context.Context, application *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.applications {
		if a.ProjectID == application.ProjectID && a.UserID == application.UserID {
			return domain.ErrDuplicateApplication
		}
	}
	application.ID = s.id()
	cp := *application
	s.applications[application.ID] = &cp
	return nil
}

func (s memoryApplications) FindByID(_ context.Context, id int64) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applications[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s memoryApplications) FindByProjectAndUser(_ context.Context, projectID int64, userID string) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.applications {
		if a.ProjectID == projectID && a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s memoryApplications) ListByProject(_ context.Context, projectID int64) ([]*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*domain.Application
	for _, a := range s.applications {
		if a.ProjectID == projectID {
			cp := *a
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (s memoryApplications) position(projectID int64, pt domain.PositionType) *domain.RecruitmentPosition {
	if p, ok := s.projects[projectID]; ok {
		return p.Position(pt)
	}
	return nil
}

func (s memoryApplications) Accept(_ context.Context, application *domain.Application) (*domain.Acceptance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applications[application.ID]
	if !ok || a.Status != domain.ApplicationStatusPending {
		return nil, domain.ErrApplicationNotPending
	}
	a.Status = domain.ApplicationStatusAccepted

	acceptance := &domain.Acceptance{ApplicationID: a.ID, ProjectID: a.ProjectID, PositionType: a.PositionType}
	if pos := s.position(a.ProjectID, a.PositionType); pos != nil {
		pos.CurrentCount++
		acceptance.PositionIncremented = true
	}
	return acceptance, nil
}

func (s memoryApplications) RevertAcceptance(_ context.Context, acceptance *domain.Acceptance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.applications[acceptance.ApplicationID]; ok && a.Status == domain.ApplicationStatusAccepted {
		a.Status = domain.ApplicationStatusPending
	}
	if acceptance.PositionIncremented {
		if pos := s.position(acceptance.ProjectID, acceptance.PositionType); pos != nil && pos.CurrentCount > 0 {
			pos.CurrentCount--
		}
	}
	return nil
}

func (s memoryApplications) Reject(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applications[id]
	if !ok || a.Status != domain.ApplicationStatusPending {
		return domain.ErrApplicationNotPending
	}
	a.Status = domain.ApplicationStatusRejected
	return nil
}

func (s memoryApplications) Withdraw(_ context.Context, projectID int64, userID string) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.applications {
		if a.ProjectID == projectID && a.UserID == userID && a.Status == domain.ApplicationStatusAccepted {
			a.Status = domain.ApplicationStatusWithdrawn
			if pos := s.position(projectID, a.PositionType); pos != nil && pos.CurrentCount > 0 {
				pos.CurrentCount--
			}
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}
