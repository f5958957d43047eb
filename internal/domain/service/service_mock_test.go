package service

import (
	"testing"

	"github.com/diegoclair/availability-bot/internal/domain/contract"
	"github.com/diegoclair/availability-bot/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type allMocks struct {
	mockDataManager *mocks.MockDataManager
	mockPollRepo    *mocks.MockPollRepo
	mockChatClient  *mocks.MockChatClient
	mockPollService *mocks.MockPollService
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	pollRepo := mocks.NewMockPollRepo(ctrl)
	dm.EXPECT().Poll().Return(pollRepo).AnyTimes()

	m = allMocks{
		mockDataManager: dm,
		mockPollRepo:    pollRepo,
		mockChatClient:  mocks.NewMockChatClient(ctrl),
		mockPollService: mocks.NewMockPollService(ctrl),
	}

	// validate service creation
	pollService := newPoll(dm, m.mockChatClient, testChannelID)
	require.NotNil(t, pollService)

	return
}

// expectTransaction makes WithTransaction run fn against the same mocked data manager
func expectTransaction(m allMocks) *gomock.Call {
	return m.mockDataManager.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx interface{}, fn func(contract.DataManager) error) error {
			return fn(m.mockDataManager)
		})
}
