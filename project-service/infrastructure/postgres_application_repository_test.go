package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/collabhub/platform/project-service/domain"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var applicationColumns = []string{"id", "project_id", "user_id", "position_type", "message", "status", "created_at", "updated_at"}

func TestPostgresApplicationRepository_Create(t *testing.T) {
	t.Run("inserted", func(t *testing.T) {
		db, mock := newMockDB(t)
		application, err := domain.NewApplication(7, "user-2", domain.PositionDesign, "hi")
		require.NoError(t, err)

		mock.ExpectQuery("INSERT INTO applications").
			WithArgs(int64(7), "user-2", "DESIGN", "hi", "PENDING", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))

		err = NewPostgresApplicationRepository(db).Create(context.Background(), application)

		require.NoError(t, err)
		assert.Equal(t, int64(21), application.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation is a duplicate application", func(t *testing.T) {
		db, mock := newMockDB(t)
		application, err := domain.NewApplication(7, "user-2", "", "")
		require.NoError(t, err)

		mock.ExpectQuery("INSERT INTO applications").
			WillReturnError(&pq.Error{Code: "23505"})

		err = NewPostgresApplicationRepository(db).Create(context.Background(), application)

		assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresApplicationRepository_Accept(t *testing.T) {
	application := &domain.Application{ID: 21, ProjectID: 7, UserID: "user-2", PositionType: domain.PositionFrontend}

	tests := []struct {
		name              string
		setupMock         func(mock sqlmock.Sqlmock)
		expectedError     error
		expectedIncrement bool
	}{
		{
			name: "status and count change together",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE applications").
					WithArgs("ACCEPTED", sqlmock.AnyArg(), int64(21), "PENDING").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("UPDATE recruitment_positions SET current_count = current_count \\+ 1").
					WithArgs(int64(7), "FRONTEND").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			expectedIncrement: true,
		},
		{
			name: "position not recruited",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE applications").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("UPDATE recruitment_positions").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
			expectedIncrement: false,
		},
		{
			name: "no longer pending",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE applications").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			expectedError: domain.ErrApplicationNotPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setupMock(mock)

			acceptance, err := NewPostgresApplicationRepository(db).Accept(context.Background(), application)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, acceptance)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(21), acceptance.ApplicationID)
				assert.Equal(t, tt.expectedIncrement, acceptance.PositionIncremented)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresApplicationRepository_RevertAcceptance(t *testing.T) {
	t.Run("restores pending and the count", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE applications").
			WithArgs("PENDING", sqlmock.AnyArg(), int64(21), "ACCEPTED").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE recruitment_positions SET current_count = current_count - 1").
			WithArgs(int64(7), "FRONTEND").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewPostgresApplicationRepository(db).RevertAcceptance(context.Background(), &domain.Acceptance{
			ApplicationID:       21,
			ProjectID:           7,
			PositionType:        domain.PositionFrontend,
			PositionIncremented: true,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("leaves the count alone when it was not incremented", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE applications").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewPostgresApplicationRepository(db).RevertAcceptance(context.Background(), &domain.Acceptance{
			ApplicationID: 21,
			ProjectID:     7,
			PositionType:  domain.PositionEtc,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresApplicationRepository_Withdraw(t *testing.T) {
	now := time.Now().UTC()

	t.Run("accepted application withdrawn", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE applications").
			WithArgs("WITHDRAWN", sqlmock.AnyArg(), int64(7), "user-2", "ACCEPTED").
			WillReturnRows(sqlmock.NewRows(applicationColumns).
				AddRow(21, 7, "user-2", "DESIGN", "", "WITHDRAWN", now, now))
		mock.ExpectExec("UPDATE recruitment_positions").
			WithArgs(int64(7), "DESIGN").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		application, err := NewPostgresApplicationRepository(db).Withdraw(context.Background(), 7, "user-2")

		require.NoError(t, err)
		require.NotNil(t, application)
		assert.Equal(t, domain.ApplicationStatusWithdrawn, application.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing to withdraw", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE applications").
			WillReturnRows(sqlmock.NewRows(applicationColumns))
		mock.ExpectRollback()

		application, err := NewPostgresApplicationRepository(db).Withdraw(context.Background(), 7, "user-2")

		assert.NoError(t, err)
		assert.Nil(t, application)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresApplicationRepository_Reject(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE applications").
		WithArgs("REJECTED", sqlmock.AnyArg(), int64(21), "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := NewPostgresApplicationRepository(db).Reject(context.Background(), 21)

	assert.ErrorIs(t, err, domain.ErrApplicationNotPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}
