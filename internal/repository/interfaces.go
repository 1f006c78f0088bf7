package repository

import (
	"context"
	"time"

	"school_portal/internal/domain/models"

	"github.com/google/uuid"
)

type NewsRepository interface {
	CreateNews(ctx context.Context, article models.NewsArticle) (models.NewsArticle, error)
	GetNews(ctx context.Context) ([]models.NewsArticle, error)
	GetNewsByID(ctx context.Context, id uuid.UUID) (models.NewsArticle, error)
	UpdateNewsFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.NewsArticle, error)
	DeleteNews(ctx context.Context, id uuid.UUID) error
}

type EventRepository interface {
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
	GetEvents(ctx context.Context) ([]models.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (models.Event, error)
	UpdateEventFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type GalleryRepository interface {
	CreateGalleryItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error)
	GetGalleryItems(ctx context.Context, categories []string) ([]models.GalleryItem, error)
	GetGalleryItemByID(ctx context.Context, id uuid.UUID) (models.GalleryItem, error)
	UpdateGalleryItemFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id uuid.UUID) error
	GalleryItemExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type PhotoRepository interface {
	CreatePhotos(ctx context.Context, photos []models.Photo) ([]models.Photo, error)
	GetPhotosByGalleryItem(ctx context.Context, galleryItemID uuid.UUID) ([]models.Photo, error)
	GetPhotoByID(ctx context.Context, id uuid.UUID) (models.Photo, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error
}

type ImageLinkRepository interface {
	CreateImageLinks(ctx context.Context, links []models.ImageLink) ([]models.ImageLink, error)
	GetImageLinksByGalleryItem(ctx context.Context, galleryItemID uuid.UUID) ([]models.ImageLink, error)
	GetImageLinkByID(ctx context.Context, id uuid.UUID) (models.ImageLink, error)
	DeleteImageLink(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}
