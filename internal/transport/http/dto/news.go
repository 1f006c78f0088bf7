package dto

import "time"

// CreateNewsRequest представляет собой тело запроса на создание статьи
type CreateNewsRequest struct {
	Title    string     `json:"title"`
	Summary  string     `json:"summary"`
	Content  string     `json:"content"`
	Date     *time.Time `json:"date"`
	Author   string     `json:"author"`
	Status   string     `json:"status"`
	Featured bool       `json:"featured"`
}

// UpdateNewsRequest перечисляет изменяемые поля статьи. Поля-указатели:
// nil означает "не трогать". Неизвестные ключи отклоняются на этапе
// декодирования.
type UpdateNewsRequest struct {
	Title    *string    `json:"title"`
	Summary  *string    `json:"summary"`
	Content  *string    `json:"content"`
	Date     *time.Time `json:"date"`
	Author   *string    `json:"author"`
	Status   *string    `json:"status"`
	Featured *bool      `json:"featured"`
}
