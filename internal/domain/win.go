package domain

import "time"

type Win struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"userId"`
	CompetitionID uint      `json:"competitionId"`
	EntryID       uint      `json:"entryId"`
	Place         int       `json:"place"`
	// PrizeValue is in minor currency units.
	PrizeValue int64     `json:"prizeValue"`
	DrawnAt    time.Time `json:"drawnAt"`
}
