package contract

//go:generate go run go.uber.org/mock/mockgen -source=repo.go -destination=../../../mocks/repo_mock.go -package=mocks

import (
	"context"

	"github.com/diegoclair/availability-bot/internal/domain"
	"github.com/diegoclair/availability-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Poll() PollRepo
}

// PollRepo defines the contract for the poll message repository
type PollRepo interface {
	Create(ctx context.Context, messageID int64) error
	GetByMessageID(ctx context.Context, messageID int64) (*entity.PollMessage, error)
	ListMessageIDs(ctx context.Context) ([]int64, error)
	List(ctx context.Context) ([]*entity.PollMessage, error)
	Delete(ctx context.Context, messageID int64) error
	AddMember(ctx context.Context, messageID int64, day domain.Day, memberID int64) error
	RemoveMember(ctx context.Context, messageID int64, day domain.Day, memberID int64) error
}
