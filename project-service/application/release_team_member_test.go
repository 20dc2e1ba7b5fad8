package application

import (
	"context"
	"testing"

	"github.com/collabhub/platform/project-service/domain"
	"github.com/collabhub/platform/project-service/mocks"
	"github.com/collabhub/platform/shared/events"
	sharedmocks "github.com/collabhub/platform/shared/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReleaseTeamMember_Execute(t *testing.T) {
	t.Run("accepted application withdrawn", func(t *testing.T) {
		applications := mocks.NewMockApplicationRepository(t)
		publisher := sharedmocks.NewMockPublisher(t)

		withdrawn := pendingApplication()
		withdrawn.Status = domain.ApplicationStatusWithdrawn
		applications.EXPECT().Withdraw(mock.Anything, int64(7), "user-2").Return(withdrawn, nil).Once()
		publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
			return evt.EventType == events.ApplicationWithdrawnEvent
		})).Return(nil).Once()

		err := NewReleaseTeamMember(applications, publisher).Execute(context.Background(), &TeamMemberRemoved{ProjectID: 7, UserID: "user-2"})

		require.NoError(t, err)
	})

	t.Run("nothing to release", func(t *testing.T) {
		applications := mocks.NewMockApplicationRepository(t)
		publisher := sharedmocks.NewMockPublisher(t)
		applications.EXPECT().Withdraw(mock.Anything, int64(7), "user-2").Return(nil, nil).Once()

		err := NewReleaseTeamMember(applications, publisher).Execute(context.Background(), &TeamMemberRemoved{ProjectID: 7, UserID: "user-2"})

		require.NoError(t, err)
		publisher.AssertNotCalled(t, "Publish")
	})

	t.Run("incomplete payload", func(t *testing.T) {
		applications := mocks.NewMockApplicationRepository(t)

		err := NewReleaseTeamMember(applications, nil).Execute(context.Background(), &TeamMemberRemoved{ProjectID: 7})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
