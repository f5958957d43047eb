package contract

//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=../../../mocks/service_mock.go -package=mocks

import (
	"context"

	"github.com/diegoclair/availability-bot/internal/domain/entity"
)

type PollService interface {
	Publish(ctx context.Context) (int64, error)
	HandleReaction(ctx context.Context, ev entity.ReactionEvent) error
	Polls(ctx context.Context) ([]*entity.PollMessage, error)
}
