package repository

import (
	"context"
	"errors"
	"fmt"

	"school_portal/internal/domain/models"
	"school_portal/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type EventRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewEventRepository(db *pgxpool.Pool) *EventRepo {
	return &EventRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var eventColumns = []string{
	"id",
	"title",
	"description",
	"date",
	"end_date",
	"location",
	"organizer",
	"status",
	"attendees",
	"created_at",
	"updated_at",
}

func scanEvent(row pgx.Row) (models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Date,
		&e.EndDate,
		&e.Location,
		&e.Organizer,
		&e.Status,
		&e.Attendees,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// CreateEvent сохраняет мероприятие и возвращает его с серверными полями
func (r *EventRepo) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	const op = "repository.EventRepo.CreateEvent"

	query, args, err := r.sb.Insert("events").
		Columns("title", "description", "date", "end_date", "location", "organizer", "status", "attendees").
		Values(
			event.Title,
			event.Description,
			event.Date,
			event.EndDate,
			event.Location,
			event.Organizer,
			event.Status,
			event.Attendees,
		).
		Suffix("RETURNING " + joinColumns(eventColumns)).
		ToSql()
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// GetEvents возвращает все мероприятия, свежие первыми
func (r *EventRepo) GetEvents(ctx context.Context) ([]models.Event, error) {
	const op = "repository.EventRepo.GetEvents"

	query, args, err := r.sb.Select(eventColumns...).
		From("events").
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

// GetEventByID возвращает мероприятие по ID
func (r *EventRepo) GetEventByID(ctx context.Context, id uuid.UUID) (models.Event, error) {
	const op = "repository.EventRepo.GetEventByID"

	query, args, err := r.sb.Select(eventColumns...).
		From("events").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	e, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Event{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return e, nil
}

// UpdateEventFields обновляет только перечисленные поля (merge-patch)
func (r *EventRepo) UpdateEventFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.Event, error) {
	const op = "repository.EventRepo.UpdateEventFields"

	builder := r.sb.Update("events")
	for field, value := range updates {
		builder = builder.Set(field, value)
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(eventColumns)).
		ToSql()
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	e, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Event{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return e, nil
}

// DeleteEvent удаляет мероприятие по ID
func (r *EventRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "repository.EventRepo.DeleteEvent"

	query, args, err := r.sb.Delete("events").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
