package entity

// ReactionAction tells whether a reaction was added or removed
type ReactionAction int

const (
	ReactionAdded ReactionAction = iota + 1
	ReactionRemoved
)

func (a ReactionAction) String() string {
	switch a {
	case ReactionAdded:
		return "add"
	case ReactionRemoved:
		return "remove"
	default:
		return "unknown"
	}
}

// ReactionEvent is a platform-neutral reaction add/remove notification
type ReactionEvent struct {
	MemberID  int64
	MessageID int64
	ChannelID int64
	GuildID   int64
	Emoji     string
	Action    ReactionAction
}

// ChatMessage is the subset of a platform message the bot cares about
type ChatMessage struct {
	ID        int64
	ChannelID int64
	AuthorID  int64
	Content   string
}
