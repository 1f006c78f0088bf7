package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"school_portal/internal/domain/models"
	"school_portal/internal/lib/logger/sl"
	"school_portal/internal/repository"
	filestorage "school_portal/internal/storage/filestorage"
	"school_portal/internal/transport/http/dto"

	"github.com/google/uuid"
)

var (
	ErrNoFiles       = errors.New("no files provided")
	ErrTooManyFiles  = errors.New("too many files, limit is 10")
	ErrAlbumNotFound = errors.New("gallery item not found")
)

const maxFilesPerUpload = 10

type PhotoService struct {
	log     *slog.Logger
	repo    repository.PhotoRepository
	gallery repository.GalleryRepository
	host    filestorage.MediaHost
}

func NewPhotoService(
	log *slog.Logger,
	repo repository.PhotoRepository,
	gallery repository.GalleryRepository,
	host filestorage.MediaHost,
) *PhotoService {
	return &PhotoService{log: log, repo: repo, gallery: gallery, host: host}
}

// UploadPhotos загружает партию файлов в медиахранилище и создает по записи
// Photo на файл. Всё или ничего: при сбое любого файла уже загруженные
// удаляются из хранилища, записи в базе не появляются.
func (s *PhotoService) UploadPhotos(ctx context.Context, input dto.PhotoUploadInput) ([]models.Photo, error) {
	const op = "photo_service.UploadPhotos"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_item_id", input.GalleryItemID.String()),
		slog.Int("files", len(input.Files)),
	)

	log.Info("uploading photos")

	if len(input.Files) == 0 {
		return nil, ErrNoFiles
	}
	if len(input.Files) > maxFilesPerUpload {
		return nil, ErrTooManyFiles
	}

	exists, err := s.gallery.GalleryItemExists(ctx, input.GalleryItemID)
	if err != nil {
		log.Error("failed to check gallery item", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		log.Warn("gallery item not found")
		return nil, ErrAlbumNotFound
	}

	folder := "gallery/" + input.GalleryItemID.String()

	uploaded := make([]*filestorage.UploadResult, 0, len(input.Files))
	for _, file := range input.Files {
		res, err := s.host.Upload(ctx, file, folder)
		if err != nil {
			log.Error("upload failed, rolling back stored files",
				slog.String("filename", file.Filename), sl.Err(err))
			s.destroyAll(ctx, uploaded)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		uploaded = append(uploaded, res)
	}

	photos := make([]models.Photo, 0, len(uploaded))
	for _, res := range uploaded {
		photos = append(photos, models.Photo{
			GalleryItem: input.GalleryItemID,
			ImageURL:    res.URL,
			PublicID:    res.PublicID,
			UploadedBy:  input.UploadedBy,
			IsPublic:    input.IsPublic,
			Featured:    input.Featured,
		})
	}

	created, err := s.repo.CreatePhotos(ctx, photos)
	if err != nil {
		log.Error("failed to persist photos, rolling back stored files", sl.Err(err))
		s.destroyAll(ctx, uploaded)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("photos uploaded", slog.Int("count", len(created)))
	return created, nil
}

// GetPhotosByGalleryItem возвращает снимки альбома в порядке добавления
func (s *PhotoService) GetPhotosByGalleryItem(ctx context.Context, galleryItemID uuid.UUID) ([]models.Photo, error) {
	const op = "photo_service.GetPhotosByGalleryItem"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_item_id", galleryItemID.String()),
	)

	photos, err := s.repo.GetPhotosByGalleryItem(ctx, galleryItemID)
	if err != nil {
		log.Error("failed to get photos", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("photos listed", slog.Int("count", len(photos)))
	return photos, nil
}

// DeletePhoto удаляет снимок: сначала файл в хранилище по publicId, затем
// запись и счётчик альбома. Повторное удаление вернет ошибку "не найдено",
// счётчик не изменится.
func (s *PhotoService) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	const op = "photo_service.DeletePhoto"
	log := s.log.With(
		slog.String("op", op),
		slog.String("photo_id", id.String()),
	)

	log.Info("deleting photo")

	photo, err := s.repo.GetPhotoByID(ctx, id)
	if err != nil {
		log.Warn("failed to get photo", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.host.Destroy(ctx, photo.PublicID); err != nil {
		log.Error("failed to destroy stored file", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeletePhoto(ctx, id); err != nil {
		log.Error("failed to delete photo record", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("photo deleted")
	return nil
}

func (s *PhotoService) destroyAll(ctx context.Context, uploaded []*filestorage.UploadResult) {
	for _, res := range uploaded {
		if err := s.host.Destroy(ctx, res.PublicID); err != nil {
			s.log.Error("failed to destroy stored file during rollback",
				slog.String("public_id", res.PublicID), sl.Err(err))
		}
	}
}
