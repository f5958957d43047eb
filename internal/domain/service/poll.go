package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/diegoclair/availability-bot/internal/domain"
	"github.com/diegoclair/availability-bot/internal/domain/contract"
	"github.com/diegoclair/availability-bot/internal/domain/entity"
	"github.com/sirupsen/logrus"
)

type pollService struct {
	dm        contract.DataManager
	chat      contract.ChatClient
	channelID int64
}

func newPoll(dm contract.DataManager, chat contract.ChatClient, channelID int64) *pollService {
	return &pollService{
		dm:        dm,
		chat:      chat,
		channelID: channelID,
	}
}

// Publish posts a fresh poll, removes every previously tracked poll and
// starts tracking the new message. It returns the new message id.
func (s *pollService) Publish(ctx context.Context) (int64, error) {
	messageID, err := s.chat.SendMessage(ctx, s.channelID, domain.EmptyPoll())
	if err != nil {
		return 0, fmt.Errorf("failed to send poll message: %w", err)
	}

	log := logger.WithFields(logrus.Fields{"channel_id": s.channelID, "message_id": messageID})
	log.Info("Poll message sent")

	for _, day := range domain.PollDays {
		if err := s.chat.AddReaction(ctx, s.channelID, messageID, domain.ToEmoji(day)); err != nil {
			return messageID, fmt.Errorf("failed to add %s reaction: %w", day, err)
		}
	}

	previous, err := s.dm.Poll().ListMessageIDs(ctx)
	if err != nil {
		return messageID, fmt.Errorf("failed to list previous polls: %w", err)
	}

	// A reaction may already have created the row for the new message
	var stale []int64
	for _, id := range previous {
		if id != messageID {
			stale = append(stale, id)
		}
	}

	for _, id := range stale {
		err := s.chat.DeleteMessage(ctx, s.channelID, id)
		if errors.Is(err, domain.ErrMessageNotFound) {
			log.WithField("stale_message_id", id).Warn("Previous poll message already gone")
			continue
		}
		if err != nil {
			return messageID, fmt.Errorf("failed to delete previous poll %d: %w", id, err)
		}
	}

	err = s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		for _, id := range stale {
			if err := tx.Poll().Delete(ctx, id); err != nil {
				return err
			}
		}
		return tx.Poll().Create(ctx, messageID)
	})
	if err != nil {
		return messageID, fmt.Errorf("failed to track poll: %w", err)
	}

	log.WithField("removed", len(stale)).Info("Poll published")
	return messageID, nil
}

// HandleReaction applies one reaction add/remove to the poll it targets and
// re-renders the poll message. Events that do not concern a poll are ignored.
func (s *pollService) HandleReaction(ctx context.Context, ev entity.ReactionEvent) error {
	botID := s.chat.BotUserID()
	if ev.MemberID == botID {
		return nil
	}

	msg, err := s.chat.FetchMessage(ctx, ev.ChannelID, ev.MessageID)
	if err != nil {
		return fmt.Errorf("failed to fetch message %d: %w", ev.MessageID, err)
	}
	if msg.AuthorID != botID {
		return nil
	}

	day, ok := domain.FromEmoji(ev.Emoji)
	if !ok {
		return nil
	}

	log := logger.WithFields(logrus.Fields{
		"message_id": ev.MessageID,
		"member_id":  ev.MemberID,
		"day":        day.String(),
		"action":     ev.Action.String(),
	})

	switch ev.Action {
	case entity.ReactionAdded:
		err = s.dm.Poll().AddMember(ctx, ev.MessageID, day, ev.MemberID)
	case entity.ReactionRemoved:
		err = s.dm.Poll().RemoveMember(ctx, ev.MessageID, day, ev.MemberID)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	poll, err := s.dm.Poll().GetByMessageID(ctx, ev.MessageID)
	if err != nil {
		return err
	}
	if poll == nil {
		// deleted by a newer publish in the meantime
		log.Debug("Poll row gone before render")
		return nil
	}

	content := domain.RenderPoll(poll, func(memberID int64) (string, bool) {
		return s.chat.MemberName(ctx, ev.GuildID, memberID)
	})

	if err := s.chat.EditMessage(ctx, ev.ChannelID, ev.MessageID, content); err != nil {
		return fmt.Errorf("failed to edit poll message: %w", err)
	}

	log.Debug("Poll updated")
	return nil
}

func (s *pollService) Polls(ctx context.Context) ([]*entity.PollMessage, error) {
	return s.dm.Poll().List(ctx)
}
