package domain

import "time"

type EntryState string

const (
	EntryActive    EntryState = "active"
	EntryCompleted EntryState = "completed"
	EntryExpired   EntryState = "expired"
)

type Entry struct {
	ID            uint   `json:"id"`
	UserID        uint   `json:"userId"`
	CompetitionID uint   `json:"competitionId"`
	TicketNumber  string `json:"ticketNumber"`
	// Progress holds one flag per competition step.
	Progress   []bool    `json:"entryProgress"`
	Bookmarked bool      `json:"bookmarked"`
	Liked      bool      `json:"liked"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (e Entry) Complete() bool {
	if len(e.Progress) == 0 {
		return false
	}
	for _, done := range e.Progress {
		if !done {
			return false
		}
	}

	return true
}

// Classify buckets an entry for the entries page: completed once every
// step is done, expired when its competition ended first, active otherwise.
func (e Entry) Classify(competition Competition, now time.Time) EntryState {
	if e.Complete() {
		return EntryCompleted
	}
	if competition.Ended(now) {
		return EntryExpired
	}

	return EntryActive
}
