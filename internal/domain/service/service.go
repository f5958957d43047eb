package service

import "github.com/sirupsen/logrus"

var logger = logrus.WithField("component", "service")

// Options configures the poll services
type Options struct {
	// ChannelID is the channel polls are posted to
	ChannelID int64

	// PollDay is the English weekday name ("Monday") on which a new poll is published
	PollDay string

	// Hour, Minute and Second give the daily fire time in UTC
	Hour   int
	Minute int
	Second int
}
