package domain

import (
	"strconv"
	"strings"

	"github.com/diegoclair/availability-bot/internal/domain/entity"
)

// NameResolver returns the display name of a member, or false when the
// member no longer resolves (for example after leaving the guild).
type NameResolver func(memberID int64) (string, bool)

// RenderPoll builds the poll message body from stored state. Members that do
// not resolve are left out of the text but stay in the stored sets.
func RenderPoll(poll *entity.PollMessage, resolve NameResolver) string {
	var b strings.Builder
	for _, day := range PollDays {
		b.WriteString(strconv.Itoa(int(day)))
		b.WriteString(") ")
		b.WriteString(DayNames[day])
		b.WriteString(": ")
		if poll != nil {
			b.WriteString(joinMembers(poll.Members(int(day)), resolve))
		}
		b.WriteString("\n")
	}

	return "```\n" + b.String() + "\n```"
}

// EmptyPoll is the body posted for a new poll, before anyone has reacted.
func EmptyPoll() string {
	return RenderPoll(nil, nil)
}

func joinMembers(members []int64, resolve NameResolver) string {
	names := make([]string, 0, len(members))
	for _, id := range members {
		name, ok := resolve(id)
		if !ok {
			continue
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
