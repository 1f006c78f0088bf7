package dto

import "time"

// CreateEventRequest представляет собой тело запроса на создание мероприятия
type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	EndDate     *time.Time `json:"endDate"`
	Location    string     `json:"location"`
	Organizer   string     `json:"organizer"`
	Status      string     `json:"status"`
	Attendees   int        `json:"attendees"`
}

// UpdateEventRequest перечисляет изменяемые поля мероприятия
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	EndDate     *time.Time `json:"endDate"`
	Location    *string    `json:"location"`
	Organizer   *string    `json:"organizer"`
	Status      *string    `json:"status"`
	Attendees   *int       `json:"attendees"`
}
