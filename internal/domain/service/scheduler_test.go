package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diegoclair/availability-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_newScheduler(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{
			name: "Should create scheduler",
			opts: Options{PollDay: "Monday", Hour: 9, Minute: 30, Second: 15},
		},
		{
			name:    "Should reject lowercase weekday",
			opts:    Options{PollDay: "monday"},
			wantErr: domain.ErrInvalidWeekday,
		},
		{
			name:    "Should reject unknown weekday",
			opts:    Options{PollDay: "Funday"},
			wantErr: domain.ErrInvalidWeekday,
		},
		{
			name: "Should reject hour out of range",
			opts: Options{PollDay: "Monday", Hour: 24},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			s, err := newScheduler(m.mockPollService, m.mockChatClient, tt.opts)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.opts.Hour > 23:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				require.NotNil(t, s)
				assert.Equal(t, tt.opts.PollDay, s.pollDay)
				assert.False(t, s.running)
			}
		})
	}
}

func Test_cronSpec(t *testing.T) {
	assert.Equal(t, "0 0 0 * * *", cronSpec(0, 0, 0))
	assert.Equal(t, "50 30 12 * * *", cronSpec(12, 30, 50))
}

func Test_scheduler_Next(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		now  time.Time
		want time.Time
	}{
		{
			name: "Should return today if time hasn't passed",
			opts: Options{PollDay: "Monday", Hour: 15},
			now:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), // Monday 10:00
			want: time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC),
		},
		{
			name: "Should return tomorrow if time has passed",
			opts: Options{PollDay: "Monday", Hour: 9},
			now:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "Should fire every day, not only on the poll day",
			opts: Options{PollDay: "Monday", Hour: 9},
			now:  time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), // Friday
			want: time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC),  // Saturday
		},
		{
			name: "Should honour minutes and seconds",
			opts: Options{PollDay: "Monday", Hour: 12, Minute: 30, Second: 50},
			now:  time.Date(2024, 1, 1, 12, 30, 49, 0, time.UTC),
			want: time.Date(2024, 1, 1, 12, 30, 50, 0, time.UTC),
		},
		{
			name: "Should use UTC regardless of the caller's zone",
			opts: Options{PollDay: "Monday"},
			now:  time.Date(2024, 1, 1, 23, 0, 0, 0, time.FixedZone("UTC-3", -3*3600)), // 02:00 UTC Jan 2
			want: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			s, err := newScheduler(m.mockPollService, m.mockChatClient, tt.opts)
			require.NoError(t, err)

			assert.Equal(t, tt.want, s.Next(tt.now))
		})
	}
}

func Test_scheduler_fire(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	tests := []struct {
		name      string
		pollDay   string
		now       time.Time
		buildMock func(m allMocks)
	}{
		{
			name:    "Should publish on the poll day",
			pollDay: "Monday",
			now:     monday,
			buildMock: func(m allMocks) {
				m.mockPollService.EXPECT().Publish(gomock.Any()).Return(int64(123), nil).Times(1)
			},
		},
		{
			name:    "Should do nothing on other days",
			pollDay: "Monday",
			now:     tuesday,
			buildMock: func(m allMocks) {
				m.mockPollService.EXPECT().Publish(gomock.Any()).Times(0)
			},
		},
		{
			name:    "Should compare the UTC weekday",
			pollDay: "Tuesday",
			now:     time.Date(2024, 1, 1, 22, 0, 0, 0, time.FixedZone("UTC-3", -3*3600)), // Tuesday 01:00 UTC
			buildMock: func(m allMocks) {
				m.mockPollService.EXPECT().Publish(gomock.Any()).Return(int64(123), nil).Times(1)
			},
		},
		{
			name:    "Should swallow publish errors",
			pollDay: "Tuesday",
			now:     tuesday,
			buildMock: func(m allMocks) {
				m.mockPollService.EXPECT().Publish(gomock.Any()).Return(int64(0), errors.New("unknown channel")).Times(1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			tt.buildMock(m)

			s, err := newScheduler(m.mockPollService, m.mockChatClient, Options{PollDay: tt.pollDay})
			require.NoError(t, err)
			s.now = func() time.Time { return tt.now }

			s.fire(context.Background())
		})
	}
}

func Test_scheduler_StartWaitsForReady(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	ready := make(chan struct{})
	m.mockChatClient.EXPECT().WaitReady(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		close(ready)
		<-ctx.Done()
		return ctx.Err()
	})

	s, err := newScheduler(m.mockPollService, m.mockChatClient, Options{PollDay: "Monday"})
	require.NoError(t, err)

	s.Start(context.Background())
	s.Start(context.Background()) // second call is a no-op

	select {
	case <-ready:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not wait for the chat client")
	}

	s.Stop()
	assert.False(t, s.running)
	assert.Empty(t, s.cron.Entries(), "no job should be registered before the client is ready")
}
