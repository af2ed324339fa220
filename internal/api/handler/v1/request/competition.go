package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCompetitionRequest struct {
	Title       string `json:"title"`
	Organizer   string `json:"organizer"`
	Description string `json:"description"`
	Category    string `json:"category"`
	// TicketPrice in minor currency units.
	TicketPrice  int64     `json:"ticketPrice"`
	TotalTickets int       `json:"totalTickets"`
	Steps        int       `json:"steps"`
	WinnersCount int       `json:"winnersCount"`
	EndDate      time.Time `json:"endDate"`
	DrawDate     time.Time `json:"drawDate"`
}

func (r CreateCompetitionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(3, 120)),
		validation.Field(&r.Organizer, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.TicketPrice, validation.Required, validation.Min(1)),
		validation.Field(&r.TotalTickets, validation.Required, validation.Min(1)),
		validation.Field(&r.Steps, validation.Min(0), validation.Max(10)),
		validation.Field(&r.WinnersCount, validation.Min(0), validation.Max(100)),
		validation.Field(&r.EndDate, validation.Required),
	)
}

type UpdateCompetitionRequest struct {
	Title        string    `json:"title"`
	Organizer    string    `json:"organizer"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	TicketPrice  int64     `json:"ticketPrice"`
	TotalTickets int       `json:"totalTickets"`
	EndDate      time.Time `json:"endDate"`
	DrawDate     time.Time `json:"drawDate"`
}

func (r UpdateCompetitionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(3, 120)),
		validation.Field(&r.Organizer, validation.Length(0, 120)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.TicketPrice, validation.Min(0)),
		validation.Field(&r.TotalTickets, validation.Min(0)),
	)
}
