package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/collabhub/platform/project-service/domain"
	"github.com/collabhub/platform/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ domain.ProjectRepository = (*PostgresProjectRepository)(nil)

// PostgresProjectRepository implements ProjectRepository using PostgreSQL
type PostgresProjectRepository struct {
	db *sqlx.DB
}

func NewPostgresProjectRepository(db *sqlx.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

type postgresProject struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	ProjectType string    `db:"project_type"`
	Status      string    `db:"status"`
	OwnerID     string    `db:"owner_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type postgresPosition struct {
	ID           int64  `db:"id"`
	ProjectID    int64  `db:"project_id"`
	PositionType string `db:"position_type"`
	TargetCount  int    `db:"target_count"`
	CurrentCount int    `db:"current_count"`
}

// Create inserts the project and its positions in one transaction.
func (r *PostgresProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO projects (title, description, project_type, status, owner_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			project.Title,
			project.Description,
			string(project.ProjectType),
			string(project.Status),
			project.OwnerID,
			project.Timestamps.CreatedAt,
			project.Timestamps.UpdatedAt,
		).Scan(&project.ID)
		if err != nil {
			return errors.Wrap(err, "failed to insert project")
		}

		for i := range project.Positions {
			pos := &project.Positions[i]
			pos.ProjectID = project.ID

			err := tx.QueryRowxContext(ctx, `
				INSERT INTO recruitment_positions (project_id, position_type, target_count, current_count)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				pos.ProjectID,
				string(pos.PositionType),
				pos.TargetCount,
				pos.CurrentCount,
			).Scan(&pos.ID)
			if err != nil {
				return errors.Wrapf(err, "failed to insert %s position", pos.PositionType)
			}
		}

		return nil
	})
}

// Delete removes the project. Positions and applications cascade.
func (r *PostgresProjectRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return errors.Wrapf(err, "failed to delete project %d", id)
	}
	return nil
}

// FindByID finds a project and its positions
func (r *PostgresProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	var pgProject postgresProject
	err := r.db.GetContext(ctx, &pgProject, `
		SELECT id, title, description, project_type, status, owner_id, created_at, updated_at
		FROM projects
		WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find project")
	}

	var pgPositions []postgresPosition
	err = r.db.SelectContext(ctx, &pgPositions, `
		SELECT id, project_id, position_type, target_count, current_count
		FROM recruitment_positions
		WHERE project_id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find project positions")
	}

	return r.toDomain(&pgProject, pgPositions), nil
}

func (r *PostgresProjectRepository) toDomain(p *postgresProject, positions []postgresPosition) *domain.Project {
	project := &domain.Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ProjectType: domain.ProjectType(p.ProjectType),
		Status:      domain.ProjectStatus(p.Status),
		OwnerID:     p.OwnerID,
		Positions:   make([]domain.RecruitmentPosition, len(positions)),
		Timestamps: models.Timestamps{
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
	}

	for i, pos := range positions {
		project.Positions[i] = domain.RecruitmentPosition{
			ID:           pos.ID,
			ProjectID:    pos.ProjectID,
			PositionType: domain.PositionType(pos.PositionType),
			TargetCount:  pos.TargetCount,
			CurrentCount: pos.CurrentCount,
		}
	}

	return project
}
