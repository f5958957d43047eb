package contract

//go:generate go run go.uber.org/mock/mockgen -source=chat.go -destination=../../../mocks/chat_mock.go -package=mocks

import (
	"context"

	"github.com/diegoclair/availability-bot/internal/domain/entity"
)

// ChatClient defines the chat platform operations the bot needs.
// Ids are platform ids encoded as int64 by each adapter.
type ChatClient interface {
	// BotUserID is the bot's own member id, valid once WaitReady returns
	BotUserID() int64

	// WaitReady blocks until the platform connection is fully established
	WaitReady(ctx context.Context) error

	SendMessage(ctx context.Context, channelID int64, content string) (int64, error)
	AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error
	FetchMessage(ctx context.Context, channelID, messageID int64) (*entity.ChatMessage, error)
	EditMessage(ctx context.Context, channelID, messageID int64, content string) error

	// DeleteMessage returns domain.ErrMessageNotFound if the message is already gone
	DeleteMessage(ctx context.Context, channelID, messageID int64) error

	// MemberName resolves a member's display name within a guild
	MemberName(ctx context.Context, guildID, memberID int64) (string, bool)
}

// ReactionFunc receives reaction events from a Gateway
type ReactionFunc func(ctx context.Context, ev entity.ReactionEvent)

// Gateway is a ChatClient with a connection lifecycle and event delivery
type Gateway interface {
	ChatClient

	Open(ctx context.Context) error
	Close() error
	OnReaction(fn ReactionFunc)
	ParseChannelID(channelID string) (int64, error)
}
