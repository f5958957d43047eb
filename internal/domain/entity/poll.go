package entity

// PollMessage is one tracked availability poll, keyed by the platform id of
// the chat message that shows it. Days holds the member ids per poll day,
// Monday at index 0.
type PollMessage struct {
	MessageID int64      `json:"message_id"`
	Days      [6][]int64 `json:"days"`
}

// Members returns the member ids stored for a 1-based poll day, or nil for
// an index outside Monday..Saturday.
func (p *PollMessage) Members(day int) []int64 {
	if day < 1 || day > len(p.Days) {
		return nil
	}
	return p.Days[day-1]
}

// Has reports whether memberID is in the set for the given 1-based day.
func (p *PollMessage) Has(day int, memberID int64) bool {
	for _, id := range p.Members(day) {
		if id == memberID {
			return true
		}
	}
	return false
}
