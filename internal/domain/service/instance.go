package service

import (
	"fmt"

	"github.com/diegoclair/availability-bot/internal/domain/contract"
)

type Instance struct {
	Poll      *pollService
	Scheduler *scheduler
}

func NewInstance(dm contract.DataManager, chat contract.ChatClient, opts Options) (*Instance, error) {
	pollService := newPoll(dm, chat, opts.ChannelID)

	sched, err := newScheduler(pollService, chat, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Instance{
		Poll:      pollService,
		Scheduler: sched,
	}, nil
}
