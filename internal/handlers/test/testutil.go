package test

import (
	"net/http/httptest"
	"testing"

	"github.com/diegoclair/availability-bot/internal/handlers"
	"github.com/diegoclair/availability-bot/mocks"
	"go.uber.org/mock/gomock"
)

type ServiceMocks struct {
	PollServiceMock *mocks.MockPollService
}

func GetHandlerTest(t *testing.T) (m ServiceMocks, handler *handlers.PollHandler, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)
	m = ServiceMocks{
		PollServiceMock: mocks.NewMockPollService(ctrl),
	}

	handler = handlers.NewPollHandler(m.PollServiceMock)

	return
}

// Serve runs a request through the handler's router and returns the recorded response
func Serve(handler *handlers.PollHandler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, req)
	return recorder
}

func GetReactionHandlerTest(t *testing.T) (m ServiceMocks, handler *handlers.ReactionHandler, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)
	m = ServiceMocks{
		PollServiceMock: mocks.NewMockPollService(ctrl),
	}

	handler = handlers.NewReactionHandler(m.PollServiceMock)

	return
}
