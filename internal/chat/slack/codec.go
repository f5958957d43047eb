package slack

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/diegoclair/availability-bot/internal/domain"
)

// Slack ids such as U024BE7LH or C0123ABCD are upper-case base-36 numbers
// that never start with a digit zero, so they map onto int64 without loss.
func parseID(id string) (int64, error) {
	if id == "" || id[0] == '0' || id != strings.ToUpper(id) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}

	n, err := strconv.ParseInt(id, 36, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return n, nil
}

func formatID(id int64) string {
	return strings.ToUpper(strconv.FormatInt(id, 36))
}

const tsFractionDigits = 6

// parseTS turns a message timestamp ("1712345678.123456") into microseconds.
func parseTS(ts string) (int64, error) {
	sec, frac, ok := strings.Cut(ts, ".")
	if !ok || len(frac) != tsFractionDigits {
		return 0, fmt.Errorf("%w: timestamp %q", domain.ErrInvalidID, ts)
	}

	s, err := strconv.ParseUint(sec, 10, 64)
	if err != nil || s > math.MaxInt64/1_000_000 {
		return 0, fmt.Errorf("%w: timestamp %q", domain.ErrInvalidID, ts)
	}
	f, err := strconv.ParseUint(frac, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: timestamp %q", domain.ErrInvalidID, ts)
	}

	return int64(s)*1_000_000 + int64(f), nil
}

func formatTS(micros int64) string {
	return fmt.Sprintf("%d.%06d", micros/1_000_000, micros%1_000_000)
}

var reactionNames = map[domain.Day]string{
	domain.Monday:    "one",
	domain.Tuesday:   "two",
	domain.Wednesday: "three",
	domain.Thursday:  "four",
	domain.Friday:    "five",
	domain.Saturday:  "six",
}

// reactionName maps a keycap glyph to the Slack reaction name.
func reactionName(emoji string) (string, bool) {
	day, ok := domain.FromEmoji(emoji)
	if !ok {
		return "", false
	}
	return reactionNames[day], true
}

// reactionEmoji maps a Slack reaction name back to its keycap glyph. Names
// outside the poll pass through unchanged.
func reactionEmoji(name string) string {
	for day, n := range reactionNames {
		if n == name {
			return domain.ToEmoji(day)
		}
	}
	return name
}
