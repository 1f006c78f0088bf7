package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event представляет собой школьное мероприятие.
// Соотношение endDate и date не проверяется: клиент исторически присылает
// однодневные события с endDate == date, а иногда вовсе без endDate.
type Event struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Date        time.Time     `db:"date" json:"date"`
	EndDate     time.Time     `db:"end_date" json:"endDate"`
	Location    string        `db:"location" json:"location"`
	Organizer   string        `db:"organizer" json:"organizer"`
	Status      ContentStatus `db:"status" json:"status"`
	Attendees   int           `db:"attendees" json:"attendees"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}

// Validate проверяет обязательные поля мероприятия
func (e *Event) Validate() error {
	var missing []string

	if strings.TrimSpace(e.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(e.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(e.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(e.Organizer) == "" {
		missing = append(missing, "organizer")
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	if e.Status != "" && !e.Status.IsValid() {
		return &ValidationError{Fields: []string{"status"}}
	}

	return nil
}
