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

var _ domain.ApplicationRepository = (*PostgresApplicationRepository)(nil)

// PostgresApplicationRepository implements ApplicationRepository using PostgreSQL
type PostgresApplicationRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

type postgresApplication struct {
	ID           int64     `db:"id"`
	ProjectID    int64     `db:"project_id"`
	UserID       string    `db:"user_id"`
	PositionType string    `db:"position_type"`
	Message      string    `db:"message"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const selectApplicationColumns = `
	SELECT id, project_id, user_id, position_type, message, status, created_at, updated_at
	FROM applications`

const (
	incrementPositionQuery = `
		UPDATE recruitment_positions
		SET current_count = current_count + 1
		WHERE project_id = $1 AND position_type = $2`

	decrementPositionQuery = `
		UPDATE recruitment_positions
		SET current_count = current_count - 1
		WHERE project_id = $1 AND position_type = $2 AND current_count > 0`
)

// Create inserts a pending application
func (r *PostgresApplicationRepository) Create(ctx context.Context, application *domain.Application) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO applications (project_id, user_id, position_type, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		application.ProjectID,
		application.UserID,
		string(application.PositionType),
		application.Message,
		string(application.Status),
		application.Timestamps.CreatedAt,
		application.Timestamps.UpdatedAt,
	).Scan(&application.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateApplication
		}
		return errors.Wrap(err, "failed to insert application")
	}

	return nil
}

// FindByID finds an application by ID
func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id int64) (*domain.Application, error) {
	var pgApplication postgresApplication
	err := r.db.GetContext(ctx, &pgApplication, selectApplicationColumns+" WHERE id = $1", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find application")
	}

	return r.toDomain(&pgApplication), nil
}

// FindByProjectAndUser finds a user's application to a project
func (r *PostgresApplicationRepository) FindByProjectAndUser(ctx context.Context, projectID int64, userID string) (*domain.Application, error) {
	var pgApplication postgresApplication
	err := r.db.GetContext(ctx, &pgApplication,
		selectApplicationColumns+" WHERE project_id = $1 AND user_id = $2", projectID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find application by project and user")
	}

	return r.toDomain(&pgApplication), nil
}

// ListByProject lists a project's applications, oldest first
func (r *PostgresApplicationRepository) ListByProject(ctx context.Context, projectID int64) ([]*domain.Application, error) {
	var pgApplications []postgresApplication
	err := r.db.SelectContext(ctx, &pgApplications,
		selectApplicationColumns+" WHERE project_id = $1 ORDER BY id", projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}

	applications := make([]*domain.Application, len(pgApplications))
	for i := range pgApplications {
		applications[i] = r.toDomain(&pgApplications[i])
	}

	return applications, nil
}

// Accept is the tentative write of an approval.
func (r *PostgresApplicationRepository) Accept(ctx context.Context, application *domain.Application) (*domain.Acceptance, error) {
	acceptance := &domain.Acceptance{
		ApplicationID: application.ID,
		ProjectID:     application.ProjectID,
		PositionType:  application.PositionType,
	}

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.transition(ctx, tx, application.ID, domain.ApplicationStatusPending, domain.ApplicationStatusAccepted); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, incrementPositionQuery, application.ProjectID, string(application.PositionType))
		if err != nil {
			return errors.Wrap(err, "failed to increment position count")
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "failed to read affected rows")
		}
		acceptance.PositionIncremented = affected > 0

		return nil
	})
	if err != nil {
		return nil, err
	}

	return acceptance, nil
}

// RevertAcceptance undoes Accept in its own transaction.
func (r *PostgresApplicationRepository) RevertAcceptance(ctx context.Context, acceptance *domain.Acceptance) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.transition(ctx, tx, acceptance.ApplicationID, domain.ApplicationStatusAccepted, domain.ApplicationStatusPending); err != nil {
			return errors.Wrap(err, "failed to revert application status")
		}

		if !acceptance.PositionIncremented {
			return nil
		}

		if _, err := tx.ExecContext(ctx, decrementPositionQuery, acceptance.ProjectID, string(acceptance.PositionType)); err != nil {
			return errors.Wrap(err, "failed to decrement position count")
		}

		return nil
	})
}

// Reject moves a pending application to REJECTED
func (r *PostgresApplicationRepository) Reject(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return r.transition(ctx, tx, id, domain.ApplicationStatusPending, domain.ApplicationStatusRejected)
	})
}

// Withdraw releases an accepted member's seat.
func (r *PostgresApplicationRepository) Withdraw(ctx context.Context, projectID int64, userID string) (*domain.Application, error) {
	var pgApplication postgresApplication

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &pgApplication, `
			UPDATE applications
			SET status = $1, updated_at = $2
			WHERE project_id = $3 AND user_id = $4 AND status = $5
			RETURNING id, project_id, user_id, position_type, message, status, created_at, updated_at`,
			string(domain.ApplicationStatusWithdrawn),
			r.now(),
			projectID,
			userID,
			string(domain.ApplicationStatusAccepted),
		)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, decrementPositionQuery, projectID, pgApplication.PositionType); err != nil {
			return errors.Wrap(err, "failed to decrement position count")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to withdraw application")
	}

	return r.toDomain(&pgApplication), nil
}

// transition changes status only if the application is currently in from.
func (r *PostgresApplicationRepository) transition(ctx context.Context, tx *sqlx.Tx, id int64, from, to domain.ApplicationStatus) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE applications
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4`,
		string(to), r.now(), id, string(from))
	if err != nil {
		return errors.Wrapf(err, "failed to update application %d", id)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}

	if affected == 0 {
		if from == domain.ApplicationStatusPending {
			return domain.ErrApplicationNotPending
		}
		return errors.Errorf("application %d is not %s", id, from)
	}

	return nil
}

func (r *PostgresApplicationRepository) toDomain(a *postgresApplication) *domain.Application {
	return &domain.Application{
		ID:           a.ID,
		ProjectID:    a.ProjectID,
		UserID:       a.UserID,
		PositionType: domain.PositionType(a.PositionType),
		Message:      a.Message,
		Status:       domain.ApplicationStatus(a.Status),
		Timestamps: models.Timestamps{
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		},
	}
}
