package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"school_portal/internal/domain/models"
	"school_portal/internal/lib/logger/sl"
	"school_portal/internal/repository"
	"school_portal/internal/transport/http/dto"

	"github.com/google/uuid"
)

var (
	ErrNoAddresses   = errors.New("no image addresses provided")
	ErrAlbumNotFound = errors.New("gallery item not found")
)

type ImageLinkService struct {
	log     *slog.Logger
	repo    repository.ImageLinkRepository
	gallery repository.GalleryRepository
}

func NewImageLinkService(
	log *slog.Logger,
	repo repository.ImageLinkRepository,
	gallery repository.GalleryRepository,
) *ImageLinkService {
	return &ImageLinkService{log: log, repo: repo, gallery: gallery}
}

// CreateImageLinks создает по записи ImageLink на каждый адрес партии.
// Адреса принимаются как есть; порядок партии сохраняется.
func (s *ImageLinkService) CreateImageLinks(ctx context.Context, req dto.UploadImageLinksRequest) ([]models.ImageLink, error) {
	const op = "imagelink_service.CreateImageLinks"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_item_id", req.GalleryItemID.String()),
		slog.Int("addresses", len(req.ImageAddresses)),
	)

	log.Info("creating image links")

	if len(req.ImageAddresses) == 0 {
		return nil, ErrNoAddresses
	}

	exists, err := s.gallery.GalleryItemExists(ctx, req.GalleryItemID)
	if err != nil {
		log.Error("failed to check gallery item", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		log.Warn("gallery item not found")
		return nil, ErrAlbumNotFound
	}

	links := make([]models.ImageLink, 0, len(req.ImageAddresses))
	for _, address := range req.ImageAddresses {
		links = append(links, models.ImageLink{
			GalleryItem:  req.GalleryItemID,
			ImageAddress: address,
			UploadedBy:   req.UploadedBy,
			IsPublic:     req.IsPublic,
			Featured:     req.Featured,
		})
	}

	created, err := s.repo.CreateImageLinks(ctx, links)
	if err != nil {
		log.Error("failed to create image links", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image links created", slog.Int("count", len(created)))
	return created, nil
}

// GetImageLinksByGalleryItem возвращает ссылки альбома в порядке добавления.
// Для несуществующего альбома возвращает ErrAlbumNotFound, а не пустой список.
func (s *ImageLinkService) GetImageLinksByGalleryItem(ctx context.Context, galleryItemID uuid.UUID) ([]models.ImageLink, error) {
	const op = "imagelink_service.GetImageLinksByGalleryItem"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_item_id", galleryItemID.String()),
	)

	exists, err := s.gallery.GalleryItemExists(ctx, galleryItemID)
	if err != nil {
		log.Error("failed to check gallery item", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		log.Warn("gallery item not found")
		return nil, ErrAlbumNotFound
	}

	links, err := s.repo.GetImageLinksByGalleryItem(ctx, galleryItemID)
	if err != nil {
		log.Error("failed to get image links", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image links listed", slog.Int("count", len(links)))
	return links, nil
}

// DeleteImageLink удаляет ссылку и корректирует счётчик её альбома
func (s *ImageLinkService) DeleteImageLink(ctx context.Context, id uuid.UUID) error {
	const op = "imagelink_service.DeleteImageLink"
	log := s.log.With(
		slog.String("op", op),
		slog.String("image_link_id", id.String()),
	)

	log.Info("deleting image link")

	if err := s.repo.DeleteImageLink(ctx, id); err != nil {
		log.Warn("failed to delete image link", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image link deleted")
	return nil
}
