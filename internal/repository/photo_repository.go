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

type PhotoRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var photoColumns = []string{
	"id",
	"gallery_item_id",
	"image_url",
	"public_id",
	"uploaded_by",
	"is_public",
	"featured",
	"created_at",
	"updated_at",
}

func scanPhoto(row pgx.Row) (models.Photo, error) {
	var p models.Photo
	err := row.Scan(
		&p.ID,
		&p.GalleryItem,
		&p.ImageURL,
		&p.PublicID,
		&p.UploadedBy,
		&p.IsPublic,
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// CreatePhotos сохраняет партию снимков одного альбома и увеличивает
// image_count альбома на их число. Всё в одной транзакции: либо записаны
// все снимки и счётчик, либо ничего.
func (r *PhotoRepo) CreatePhotos(ctx context.Context, photos []models.Photo) ([]models.Photo, error) {
	const op = "repository.PhotoRepo.CreatePhotos"

	if len(photos) == 0 {
		return nil, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	created := make([]models.Photo, 0, len(photos))
	for _, photo := range photos {
		query, args, err := r.sb.Insert("photos").
			Columns("gallery_item_id", "image_url", "public_id", "uploaded_by", "is_public", "featured").
			Values(
				photo.GalleryItem,
				photo.ImageURL,
				photo.PublicID,
				photo.UploadedBy,
				photo.IsPublic,
				photo.Featured,
			).
			Suffix("RETURNING " + joinColumns(photoColumns)).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		p, err := scanPhoto(tx.QueryRow(ctx, query, args...))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		created = append(created, p)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE gallery_items SET image_count = image_count + $1, updated_at = NOW() WHERE id = $2`,
		len(created), photos[0].GalleryItem)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// GetPhotosByGalleryItem возвращает снимки альбома в порядке добавления
func (r *PhotoRepo) GetPhotosByGalleryItem(ctx context.Context, galleryItemID uuid.UUID) ([]models.Photo, error) {
	const op = "repository.PhotoRepo.GetPhotosByGalleryItem"

	query, args, err := r.sb.Select(photoColumns...).
		From("photos").
		Where(sq.Eq{"gallery_item_id": galleryItemID}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		photos = append(photos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return photos, nil
}

// GetPhotoByID возвращает снимок по ID
func (r *PhotoRepo) GetPhotoByID(ctx context.Context, id uuid.UUID) (models.Photo, error) {
	const op = "repository.PhotoRepo.GetPhotoByID"

	query, args, err := r.sb.Select(photoColumns...).
		From("photos").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := scanPhoto(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Photo{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// DeletePhoto удаляет снимок и уменьшает image_count его альбома
// в одной транзакции
func (r *PhotoRepo) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	const op = "repository.PhotoRepo.DeletePhoto"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	var galleryItemID uuid.UUID
	err = tx.QueryRow(ctx,
		`DELETE FROM photos WHERE id = $1 RETURNING gallery_item_id`,
		id).Scan(&galleryItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE gallery_items SET image_count = GREATEST(image_count - 1, 0), updated_at = NOW() WHERE id = $1`,
		galleryItemID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
