package domain

import "time"

type CompetitionStatus string

const (
	CompetitionOpen   CompetitionStatus = "open"
	CompetitionClosed CompetitionStatus = "closed"
	CompetitionDrawn  CompetitionStatus = "drawn"
)

type Competition struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Organizer   string `json:"organizer"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	// TicketPrice is in minor currency units.
	TicketPrice  int64             `json:"ticketPrice"`
	TotalTickets int               `json:"totalTickets"`
	SoldTickets  int               `json:"soldTickets"`
	// Steps is the number of entry steps a participant completes.
	Steps        int               `json:"steps"`
	WinnersCount int               `json:"winnersCount"`
	Status       CompetitionStatus `json:"status"`
	EndDate      time.Time         `json:"endDate"`
	DrawDate     time.Time         `json:"drawDate"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func (c Competition) SoldOut() bool {
	return c.SoldTickets >= c.TotalTickets
}

func (c Competition) Ended(now time.Time) bool {
	return !now.Before(c.EndDate)
}

func (c Competition) DrawDue(now time.Time) bool {
	return c.Status != CompetitionDrawn && !now.Before(c.DrawDate)
}
