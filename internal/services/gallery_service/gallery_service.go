package services

import (
	"context"
	"fmt"
	"log/slog"

	"school_portal/internal/domain/models"
	"school_portal/internal/lib/logger/sl"
	"school_portal/internal/repository"
	"school_portal/internal/transport/http/dto"

	"github.com/google/uuid"
)

type GalleryService struct {
	log   *slog.Logger
	repo  repository.GalleryRepository
	photo repository.PhotoRepository
	links repository.ImageLinkRepository
}

func NewGalleryService(
	log *slog.Logger,
	repo repository.GalleryRepository,
	photo repository.PhotoRepository,
	links repository.ImageLinkRepository,
) *GalleryService {
	return &GalleryService{log: log, repo: repo, photo: photo, links: links}
}

// CreateGalleryItem создает альбом с валидацией обязательных полей
func (s *GalleryService) CreateGalleryItem(ctx context.Context, req dto.CreateGalleryItemRequest) (models.GalleryItem, error) {
	const op = "gallery_service.CreateGalleryItem"
	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	log.Info("creating gallery item")

	item := models.GalleryItem{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		Category:     models.GalleryCategory(req.Category),
		UploadedBy:   req.UploadedBy,
		IsPublic:     true,
		Featured:     req.Featured,
	}
	if req.IsPublic != nil {
		item.IsPublic = *req.IsPublic
	}

	if err := item.Validate(); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return models.GalleryItem{}, err
	}

	created, err := s.repo.CreateGalleryItem(ctx, item)
	if err != nil {
		log.Error("failed to create gallery item", sl.Err(err))
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery item created", slog.String("gallery_item_id", created.ID.String()))
	return created, nil
}

// GetGalleryItems возвращает альбомы, свежие первыми.
// Непустой categories ограничивает выборку перечисленными категориями.
func (s *GalleryService) GetGalleryItems(ctx context.Context, categories []string) ([]models.GalleryItem, error) {
	const op = "gallery_service.GetGalleryItems"
	log := s.log.With(slog.String("op", op))

	items, err := s.repo.GetGalleryItems(ctx, categories)
	if err != nil {
		log.Error("failed to list gallery items", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery items listed", slog.Int("count", len(items)))
	return items, nil
}

// GetGalleryItemByID возвращает альбом по ID
func (s *GalleryService) GetGalleryItemByID(ctx context.Context, id uuid.UUID) (models.GalleryItem, error) {
	const op = "gallery_service.GetGalleryItemByID"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_item_id", id.String()),
	)

	item, err := s.repo.GetGalleryItemByID(ctx, id)
	if err != nil {
		log.Warn("failed to get gallery item", sl.Err(err))
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

// UpdateGalleryItem обновляет только присланные поля альбома.
// imageCount и списки дочерних документов отсюда недоступны.
func (s *GalleryService) UpdateGalleryItem(ctx context.Context, id uuid.UUID, req dto.UpdateGalleryItemRequest) (models.GalleryItem, error) {
	const op = "gallery_service.UpdateGalleryItem"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_item_id", id.String()),
	)

	log.Info("updating gallery item")

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ThumbnailURL != nil {
		updates["thumbnail_url"] = *req.ThumbnailURL
	}
	if req.Category != nil {
		if !models.GalleryCategory(*req.Category).IsValid() {
			log.Warn("invalid category", slog.String("category", *req.Category))
			return models.GalleryItem{}, &models.ValidationError{Fields: []string{"category"}}
		}
		updates["category"] = *req.Category
	}
	if req.UploadedBy != nil {
		updates["uploaded_by"] = *req.UploadedBy
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	if len(updates) == 0 {
		return s.repo.GetGalleryItemByID(ctx, id)
	}

	updated, err := s.repo.UpdateGalleryItemFields(ctx, id, updates)
	if err != nil {
		log.Error("failed to update gallery item", sl.Err(err))
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery item updated")
	return updated, nil
}

// DeleteGalleryItem удаляет альбом. Снимки и ссылки альбома не трогаются
func (s *GalleryService) DeleteGalleryItem(ctx context.Context, id uuid.UUID) error {
	const op = "gallery_service.DeleteGalleryItem"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_item_id", id.String()),
	)

	log.Info("deleting gallery item")

	if err := s.repo.DeleteGalleryItem(ctx, id); err != nil {
		log.Warn("failed to delete gallery item", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery item deleted")
	return nil
}

// GetGalleryMedia собирает изображения альбома из обоих источников в одну
// нормализованную ленту: сначала загруженные снимки, затем внешние ссылки,
// внутри каждого источника в порядке добавления.
func (s *GalleryService) GetGalleryMedia(ctx context.Context, id uuid.UUID) ([]models.GalleryMedia, error) {
	const op = "gallery_service.GetGalleryMedia"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_item_id", id.String()),
	)

	if _, err := s.repo.GetGalleryItemByID(ctx, id); err != nil {
		log.Warn("failed to get gallery item", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photos, err := s.photo.GetPhotosByGalleryItem(ctx, id)
	if err != nil {
		log.Error("failed to get photos", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	links, err := s.links.GetImageLinksByGalleryItem(ctx, id)
	if err != nil {
		log.Error("failed to get image links", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	media := make([]models.GalleryMedia, 0, len(photos)+len(links))
	for _, p := range photos {
		media = append(media, models.FromPhoto(p))
	}
	for _, l := range links {
		media = append(media, models.FromImageLink(l))
	}

	log.Info("gallery media collected",
		slog.Int("uploads", len(photos)),
		slog.Int("links", len(links)),
	)
	return media, nil
}
