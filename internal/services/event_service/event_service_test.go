package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"school_portal/internal/domain/models"
	"school_portal/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventRepository) GetEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (models.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventRepository) UpdateEventFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.Event, error) {
	args := m.Called(ctx, id, updates)
	return args.Get(0).(models.Event), args.Error(1)
}

func (m *MockEventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockEventRepository)
	service := NewEventService(slog.Default(), mockRepo)

	start := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(6 * time.Hour)

	tests := []struct {
		name        string
		req         dto.CreateEventRequest
		mockSetup   func()
		wantError   bool
		expectedErr string
	}{
		{
			name: "successful creation",
			req: dto.CreateEventRequest{
				Title:       "Sports day",
				Description: "Annual competition",
				Date:        &start,
				EndDate:     &end,
				Location:    "Main field",
				Organizer:   "PE department",
				Status:      "scheduled",
			},
			mockSetup: func() {
				mockRepo.On("CreateEvent", ctx, mock.MatchedBy(func(e models.Event) bool {
					return e.Date.Equal(start) && e.EndDate.Equal(end) && e.Status == models.StatusScheduled
				})).Return(models.Event{ID: uuid.New()}, nil).Once()
			},
			wantError: false,
		},
		{
			name: "endDate defaults to date",
			req: dto.CreateEventRequest{
				Title:       "Lecture",
				Description: "d",
				Date:        &start,
				Location:    "Hall",
				Organizer:   "Admin",
			},
			mockSetup: func() {
				mockRepo.On("CreateEvent", ctx, mock.MatchedBy(func(e models.Event) bool {
					return e.EndDate.Equal(e.Date) && e.Status == models.StatusDraft
				})).Return(models.Event{ID: uuid.New()}, nil).Once()
			},
			wantError: false,
		},
		{
			name: "missing required fields",
			req:  dto.CreateEventRequest{Title: "Only title"},
			mockSetup: func() {
				// Нет вызова репозитория, так как валидация происходит до него
			},
			wantError:   true,
			expectedErr: "missing required fields: description, location, organizer",
		},
		{
			name: "repository error",
			req: dto.CreateEventRequest{
				Title:       "t",
				Description: "d",
				Location:    "l",
				Organizer:   "o",
			},
			mockSetup: func() {
				mockRepo.On("CreateEvent", ctx, mock.Anything).
					Return(models.Event{}, errors.New("repository error")).Once()
			},
			wantError:   true,
			expectedErr: "repository error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			_, err := service.CreateEvent(ctx, tt.req)

			if tt.wantError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockEventRepository)
	service := NewEventService(slog.Default(), mockRepo)

	id := uuid.New()
	attendees := 200
	badStatus := "cancelled"

	t.Run("updates only provided fields", func(t *testing.T) {
		mockRepo.On("UpdateEventFields", ctx, id, map[string]interface{}{
			"attendees": attendees,
		}).Return(models.Event{ID: id, Attendees: attendees}, nil).Once()

		updated, err := service.UpdateEvent(ctx, id, dto.UpdateEventRequest{Attendees: &attendees})

		assert.NoError(t, err)
		assert.Equal(t, attendees, updated.Attendees)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid status rejected before repository", func(t *testing.T) {
		_, err := service.UpdateEvent(ctx, id, dto.UpdateEventRequest{Status: &badStatus})

		assert.Error(t, err)
		assert.True(t, models.IsValidationError(err))
	})

	t.Run("empty body returns current document", func(t *testing.T) {
		mockRepo.On("GetEventByID", ctx, id).
			Return(models.Event{ID: id}, nil).Once()

		updated, err := service.UpdateEvent(ctx, id, dto.UpdateEventRequest{})

		assert.NoError(t, err)
		assert.Equal(t, id, updated.ID)
		mockRepo.AssertExpectations(t)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockEventRepository)
	service := NewEventService(slog.Default(), mockRepo)

	id := uuid.New()

	mockRepo.On("DeleteEvent", ctx, id).Return(nil).Once()
	assert.NoError(t, service.DeleteEvent(ctx, id))

	mockRepo.On("DeleteEvent", ctx, id).Return(errors.New("not found")).Once()
	assert.Error(t, service.DeleteEvent(ctx, id))

	mockRepo.AssertExpectations(t)
}
