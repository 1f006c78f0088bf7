package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"school_portal/internal/domain/models"
	"school_portal/internal/storage"
	"school_portal/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) CreateGalleryItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) GetGalleryItems(ctx context.Context, categories []string) ([]models.GalleryItem, error) {
	args := m.Called(ctx, categories)
	return args.Get(0).([]models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) GetGalleryItemByID(ctx context.Context, id uuid.UUID) (models.GalleryItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) UpdateGalleryItemFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.GalleryItem, error) {
	args := m.Called(ctx, id, updates)
	return args.Get(0).(models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) DeleteGalleryItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGalleryRepository) GalleryItemExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) CreatePhotos(ctx context.Context, photos []models.Photo) ([]models.Photo, error) {
	args := m.Called(ctx, photos)
	return args.Get(0).([]models.Photo), args.Error(1)
}

func (m *MockPhotoRepository) GetPhotosByGalleryItem(ctx context.Context, galleryItemID uuid.UUID) ([]models.Photo, error) {
	args := m.Called(ctx, galleryItemID)
	return args.Get(0).([]models.Photo), args.Error(1)
}

func (m *MockPhotoRepository) GetPhotoByID(ctx context.Context, id uuid.UUID) (models.Photo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Photo), args.Error(1)
}

func (m *MockPhotoRepository) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockImageLinkRepository struct {
	mock.Mock
}

func (m *MockImageLinkRepository) CreateImageLinks(ctx context.Context, links []models.ImageLink) ([]models.ImageLink, error) {
	args := m.Called(ctx, links)
	return args.Get(0).([]models.ImageLink), args.Error(1)
}

func (m *MockImageLinkRepository) GetImageLinksByGalleryItem(ctx context.Context, galleryItemID uuid.UUID) ([]models.ImageLink, error) {
	args := m.Called(ctx, galleryItemID)
	return args.Get(0).([]models.ImageLink), args.Error(1)
}

func (m *MockImageLinkRepository) GetImageLinkByID(ctx context.Context, id uuid.UUID) (models.ImageLink, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ImageLink), args.Error(1)
}

func (m *MockImageLinkRepository) DeleteImageLink(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo *MockGalleryRepository, photos *MockPhotoRepository, links *MockImageLinkRepository) *GalleryService {
	return NewGalleryService(slog.Default(), repo, photos, links)
}

func TestGalleryService_CreateGalleryItem(t *testing.T) {
	ctx := context.Background()

	validReq := dto.CreateGalleryItemRequest{
		Title:        "Graduation",
		ThumbnailURL: "http://img.local/thumb.jpg",
		Category:     "events",
	}

	tests := []struct {
		name        string
		req         dto.CreateGalleryItemRequest
		mockSetup   func(repo *MockGalleryRepository)
		wantError   bool
		expectedErr string
	}{
		{
			name: "successful creation, isPublic defaults to true",
			req:  validReq,
			mockSetup: func(repo *MockGalleryRepository) {
				repo.On("CreateGalleryItem", ctx, mock.MatchedBy(func(g models.GalleryItem) bool {
					return g.IsPublic && g.Category == models.CategoryEvents
				})).Return(models.GalleryItem{ID: uuid.New(), IsPublic: true}, nil).Once()
			},
			wantError: false,
		},
		{
			name: "explicit isPublic false is kept",
			req: dto.CreateGalleryItemRequest{
				Title:        "Private album",
				ThumbnailURL: "http://img.local/t.jpg",
				Category:     "sports",
				IsPublic:     boolPtr(false),
			},
			mockSetup: func(repo *MockGalleryRepository) {
				repo.On("CreateGalleryItem", ctx, mock.MatchedBy(func(g models.GalleryItem) bool {
					return !g.IsPublic
				})).Return(models.GalleryItem{ID: uuid.New()}, nil).Once()
			},
			wantError: false,
		},
		{
			name: "missing required fields",
			req:  dto.CreateGalleryItemRequest{},
			mockSetup: func(repo *MockGalleryRepository) {
				// Нет вызова репозитория, так как валидация происходит до него
			},
			wantError:   true,
			expectedErr: "missing required fields: title, thumbnail, category",
		},
		{
			name: "unknown category",
			req: dto.CreateGalleryItemRequest{
				Title:        "Album",
				ThumbnailURL: "http://img.local/t.jpg",
				Category:     "misc",
			},
			mockSetup:   func(repo *MockGalleryRepository) {},
			wantError:   true,
			expectedErr: "category",
		},
		{
			name: "repository error",
			req:  validReq,
			mockSetup: func(repo *MockGalleryRepository) {
				repo.On("CreateGalleryItem", ctx, mock.Anything).
					Return(models.GalleryItem{}, errors.New("repository error")).Once()
			},
			wantError:   true,
			expectedErr: "repository error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockGalleryRepository)
			service := newTestService(repo, new(MockPhotoRepository), new(MockImageLinkRepository))
			tt.mockSetup(repo)

			_, err := service.CreateGalleryItem(ctx, tt.req)

			if tt.wantError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestGalleryService_UpdateGalleryItem(t *testing.T) {
	ctx := context.Background()
	repo := new(MockGalleryRepository)
	service := newTestService(repo, new(MockPhotoRepository), new(MockImageLinkRepository))

	id := uuid.New()
	newTitle := "Renamed"
	badCategory := "misc"

	t.Run("updates only provided fields", func(t *testing.T) {
		repo.On("UpdateGalleryItemFields", ctx, id, map[string]interface{}{
			"title": newTitle,
		}).Return(models.GalleryItem{ID: id, Title: newTitle}, nil).Once()

		updated, err := service.UpdateGalleryItem(ctx, id, dto.UpdateGalleryItemRequest{Title: &newTitle})

		assert.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
		repo.AssertExpectations(t)
	})

	t.Run("unknown category rejected before repository", func(t *testing.T) {
		_, err := service.UpdateGalleryItem(ctx, id, dto.UpdateGalleryItemRequest{Category: &badCategory})

		assert.Error(t, err)
		assert.True(t, models.IsValidationError(err))
	})

	t.Run("empty body returns current document", func(t *testing.T) {
		repo.On("GetGalleryItemByID", ctx, id).
			Return(models.GalleryItem{ID: id}, nil).Once()

		updated, err := service.UpdateGalleryItem(ctx, id, dto.UpdateGalleryItemRequest{})

		assert.NoError(t, err)
		assert.Equal(t, id, updated.ID)
		repo.AssertExpectations(t)
	})
}

func TestGalleryService_GetGalleryMedia(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("uploads come before links", func(t *testing.T) {
		repo := new(MockGalleryRepository)
		photos := new(MockPhotoRepository)
		links := new(MockImageLinkRepository)
		service := newTestService(repo, photos, links)

		p1 := models.Photo{ID: uuid.New(), GalleryItem: id, ImageURL: "http://img.local/1.jpg"}
		p2 := models.Photo{ID: uuid.New(), GalleryItem: id, ImageURL: "http://img.local/2.jpg"}
		l1 := models.ImageLink{ID: uuid.New(), GalleryItem: id, ImageAddress: "http://ext.example/a.jpg"}

		repo.On("GetGalleryItemByID", ctx, id).Return(models.GalleryItem{ID: id}, nil).Once()
		photos.On("GetPhotosByGalleryItem", ctx, id).Return([]models.Photo{p1, p2}, nil).Once()
		links.On("GetImageLinksByGalleryItem", ctx, id).Return([]models.ImageLink{l1}, nil).Once()

		media, err := service.GetGalleryMedia(ctx, id)

		assert.NoError(t, err)
		assert.Len(t, media, 3)
		assert.Equal(t, models.MediaKindUpload, media[0].Kind)
		assert.Equal(t, p1.ImageURL, media[0].DisplayURL)
		assert.Equal(t, p2.ImageURL, media[1].DisplayURL)
		assert.Equal(t, models.MediaKindLink, media[2].Kind)
		assert.Equal(t, l1.ImageAddress, media[2].DisplayURL)
	})

	t.Run("empty sources give empty feed", func(t *testing.T) {
		repo := new(MockGalleryRepository)
		photos := new(MockPhotoRepository)
		links := new(MockImageLinkRepository)
		service := newTestService(repo, photos, links)

		repo.On("GetGalleryItemByID", ctx, id).Return(models.GalleryItem{ID: id}, nil).Once()
		photos.On("GetPhotosByGalleryItem", ctx, id).Return([]models.Photo{}, nil).Once()
		links.On("GetImageLinksByGalleryItem", ctx, id).Return([]models.ImageLink{}, nil).Once()

		media, err := service.GetGalleryMedia(ctx, id)

		assert.NoError(t, err)
		assert.Empty(t, media)
	})

	t.Run("missing album", func(t *testing.T) {
		repo := new(MockGalleryRepository)
		service := newTestService(repo, new(MockPhotoRepository), new(MockImageLinkRepository))

		repo.On("GetGalleryItemByID", ctx, id).
			Return(models.GalleryItem{}, storage.ErrNotFound).Once()

		_, err := service.GetGalleryMedia(ctx, id)

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestGalleryService_GetGalleryItems(t *testing.T) {
	ctx := context.Background()
	repo := new(MockGalleryRepository)
	service := newTestService(repo, new(MockPhotoRepository), new(MockImageLinkRepository))

	categories := []string{"events", "sports"}
	repo.On("GetGalleryItems", ctx, categories).
		Return([]models.GalleryItem{{ID: uuid.New()}}, nil).Once()

	items, err := service.GetGalleryItems(ctx, categories)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	repo.AssertExpectations(t)
}

func boolPtr(b bool) *bool { return &b }
