package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"school_portal/internal/domain/models"
	"school_portal/internal/lib/logger/sl"
	"school_portal/internal/repository"
	"school_portal/internal/transport/http/dto"

	"github.com/google/uuid"
)

type EventService struct {
	log  *slog.Logger
	repo repository.EventRepository
}

func NewEventService(log *slog.Logger, repo repository.EventRepository) *EventService {
	return &EventService{log: log, repo: repo}
}

// CreateEvent создает мероприятие с валидацией обязательных полей
func (s *EventService) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (models.Event, error) {
	const op = "event_service.CreateEvent"
	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	log.Info("creating event")

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Organizer:   req.Organizer,
		Status:      models.ContentStatus(req.Status),
		Attendees:   req.Attendees,
	}

	if req.Date != nil {
		event.Date = *req.Date
	} else {
		event.Date = time.Now().UTC()
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	} else {
		event.EndDate = event.Date
	}
	if event.Status == "" {
		event.Status = models.StatusDraft
	}

	if err := event.Validate(); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return models.Event{}, err
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event created", slog.String("event_id", created.ID.String()))
	return created, nil
}

// GetEvents возвращает все мероприятия, свежие первыми
func (s *EventService) GetEvents(ctx context.Context) ([]models.Event, error) {
	const op = "event_service.GetEvents"
	log := s.log.With(slog.String("op", op))

	events, err := s.repo.GetEvents(ctx)
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("events listed", slog.Int("count", len(events)))
	return events, nil
}

// GetEventByID возвращает мероприятие по ID
func (s *EventService) GetEventByID(ctx context.Context, id uuid.UUID) (models.Event, error) {
	const op = "event_service.GetEventByID"
	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", id.String()),
	)

	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		log.Warn("failed to get event", sl.Err(err))
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

// UpdateEvent обновляет только присланные поля мероприятия
func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, req dto.UpdateEventRequest) (models.Event, error) {
	const op = "event_service.UpdateEvent"
	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", id.String()),
	)

	log.Info("updating event")

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Organizer != nil {
		updates["organizer"] = *req.Organizer
	}
	if req.Status != nil {
		if !models.ContentStatus(*req.Status).IsValid() {
			log.Warn("invalid status", slog.String("status", *req.Status))
			return models.Event{}, &models.ValidationError{Fields: []string{"status"}}
		}
		updates["status"] = *req.Status
	}
	if req.Attendees != nil {
		updates["attendees"] = *req.Attendees
	}

	if len(updates) == 0 {
		return s.repo.GetEventByID(ctx, id)
	}

	updated, err := s.repo.UpdateEventFields(ctx, id, updates)
	if err != nil {
		log.Error("failed to update event", sl.Err(err))
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event updated")
	return updated, nil
}

// DeleteEvent удаляет мероприятие по ID
func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "event_service.DeleteEvent"
	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", id.String()),
	)

	log.Info("deleting event")

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		log.Warn("failed to delete event", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("event deleted")
	return nil
}
