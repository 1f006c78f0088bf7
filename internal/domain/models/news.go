package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
	StatusScheduled ContentStatus = "scheduled"
)

// IsValid проверяет, что статус входит в допустимый набор
func (s ContentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusScheduled:
		return true
	}
	return false
}

// ValidationError перечисляет отсутствующие обязательные поля документа
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// IsValidationError сообщает, является ли ошибка ошибкой валидации
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NewsArticle представляет собой новостную статью
type NewsArticle struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	Title     string        `db:"title" json:"title"`
	Summary   string        `db:"summary" json:"summary"`
	Content   string        `db:"content" json:"content"`
	Date      time.Time     `db:"date" json:"date"`
	Author    string        `db:"author" json:"author"`
	Status    ContentStatus `db:"status" json:"status"`
	Featured  bool          `db:"featured" json:"featured"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `db:"updated_at" json:"updatedAt"`
}

// Validate проверяет обязательные поля статьи
func (n *NewsArticle) Validate() error {
	var missing []string

	if strings.TrimSpace(n.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(n.Summary) == "" {
		missing = append(missing, "summary")
	}
	if strings.TrimSpace(n.Content) == "" {
		missing = append(missing, "content")
	}
	if strings.TrimSpace(n.Author) == "" {
		missing = append(missing, "author")
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	if n.Status != "" && !n.Status.IsValid() {
		return &ValidationError{Fields: []string{"status"}}
	}

	return nil
}
