package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/diegoclair/availability-bot/internal/domain"
	"github.com/diegoclair/availability-bot/internal/domain/contract"
	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

type scheduler struct {
	polls    contract.PollService
	chat     contract.ChatClient
	pollDay  string
	schedule cron.Schedule
	cron     *cron.Cron
	now      func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	entryID cron.EntryID
}

// cronSpec builds a seconds-enabled spec firing once a day at the given time
func cronSpec(hour, minute, second int) string {
	return fmt.Sprintf("%d %d %d * * *", second, minute, hour)
}

func newScheduler(polls contract.PollService, chat contract.ChatClient, opts Options) (*scheduler, error) {
	if _, ok := weekdayByName[opts.PollDay]; !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidWeekday, opts.PollDay)
	}

	schedule, err := cronParser.Parse(cronSpec(opts.Hour, opts.Minute, opts.Second))
	if err != nil {
		return nil, fmt.Errorf("invalid fire time %02d:%02d:%02d: %w", opts.Hour, opts.Minute, opts.Second, err)
	}

	cronLogger := cron.PrintfLogger(logger.WithField("component", "cron"))

	s := &scheduler{
		polls:    polls,
		chat:     chat,
		pollDay:  opts.PollDay,
		schedule: schedule,
		now:      time.Now,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithParser(cronParser),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
	}

	return s, nil
}

var weekdayByName = map[string]time.Weekday{
	time.Sunday.String():    time.Sunday,
	time.Monday.String():    time.Monday,
	time.Tuesday.String():   time.Tuesday,
	time.Wednesday.String(): time.Wednesday,
	time.Thursday.String():  time.Thursday,
	time.Friday.String():    time.Friday,
	time.Saturday.String():  time.Saturday,
}

// Start waits for the chat client in the background, then begins firing daily.
func (s *scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	ctx, s.cancel = context.WithCancel(ctx)
	logger.Info("Scheduler starting...")

	go func() {
		if err := s.chat.WaitReady(ctx); err != nil {
			logger.WithError(err).Warn("Scheduler not started, chat client never became ready")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.running || ctx.Err() != nil {
			return
		}

		if s.entryID != 0 {
			s.cron.Remove(s.entryID)
		}
		s.entryID = s.cron.Schedule(s.schedule, cron.FuncJob(func() { s.fire(ctx) }))
		s.cron.Start()

		logger.Infof("Next poll check at %s", s.Next(s.now()).Format("2006-01-02 15:04:05 UTC"))
	}()
}

// Stop halts the timer and waits for a running fire to finish.
func (s *scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	logger.Info("Scheduler stopping...")
	<-s.cron.Stop().Done()
	s.cancel()
	s.running = false
}

// Next returns the first fire time strictly after t
func (s *scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t.UTC())
}

// fire runs once per day. It publishes only on the configured weekday, and a
// missed day is not made up later.
func (s *scheduler) fire(ctx context.Context) {
	today := s.now().UTC().Weekday().String()
	logger.WithField("today", today).Info("Poll task running")

	if today != s.pollDay {
		return
	}

	messageID, err := s.polls.Publish(ctx)
	if err != nil {
		logger.WithError(err).Error("Failed to publish poll")
		return
	}

	logger.WithField("message_id", messageID).Infof("Next poll check at %s", s.Next(s.now()).Format("2006-01-02 15:04:05 UTC"))
}
