package domain

import "errors"

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrInvalidID       = errors.New("invalid platform id")
	ErrInvalidWeekday  = errors.New("invalid weekday")
	ErrUnknownPlatform = errors.New("unknown chat platform")
)
