package handlers

import (
	"context"

	"github.com/diegoclair/availability-bot/internal/domain/contract"
	"github.com/diegoclair/availability-bot/internal/domain/entity"
	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("component", "handlers")

type ReactionHandler struct {
	pollService contract.PollService
}

func NewReactionHandler(pollService contract.PollService) *ReactionHandler {
	return &ReactionHandler{
		pollService: pollService,
	}
}

// Handle processes one reaction event. A failure is logged and ends only
// this event.
func (h *ReactionHandler) Handle(ctx context.Context, ev entity.ReactionEvent) {
	if err := h.pollService.HandleReaction(ctx, ev); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"message_id": ev.MessageID,
			"member_id":  ev.MemberID,
			"action":     ev.Action.String(),
		}).Error("Failed to handle reaction")
	}
}
