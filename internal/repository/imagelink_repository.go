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

type ImageLinkRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewImageLinkRepository(db *pgxpool.Pool) *ImageLinkRepo {
	return &ImageLinkRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var imageLinkColumns = []string{
	"id",
	"gallery_item_id",
	"image_address",
	"uploaded_by",
	"is_public",
	"featured",
	"created_at",
	"updated_at",
}

func scanImageLink(row pgx.Row) (models.ImageLink, error) {
	var l models.ImageLink
	err := row.Scan(
		&l.ID,
		&l.GalleryItem,
		&l.ImageAddress,
		&l.UploadedBy,
		&l.IsPublic,
		&l.Featured,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

// CreateImageLinks сохраняет партию внешних ссылок одного альбома и
// увеличивает image_count на их число в той же транзакции
func (r *ImageLinkRepo) CreateImageLinks(ctx context.Context, links []models.ImageLink) ([]models.ImageLink, error) {
	const op = "repository.ImageLinkRepo.CreateImageLinks"

	if len(links) == 0 {
		return nil, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	created := make([]models.ImageLink, 0, len(links))
	for _, link := range links {
		query, args, err := r.sb.Insert("image_links").
			Columns("gallery_item_id", "image_address", "uploaded_by", "is_public", "featured").
			Values(
				link.GalleryItem,
				link.ImageAddress,
				link.UploadedBy,
				link.IsPublic,
				link.Featured,
			).
			Suffix("RETURNING " + joinColumns(imageLinkColumns)).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		l, err := scanImageLink(tx.QueryRow(ctx, query, args...))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		created = append(created, l)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE gallery_items SET image_count = image_count + $1, updated_at = NOW() WHERE id = $2`,
		len(created), links[0].GalleryItem)
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

// GetImageLinksByGalleryItem возвращает ссылки альбома в порядке добавления
func (r *ImageLinkRepo) GetImageLinksByGalleryItem(ctx context.Context, galleryItemID uuid.UUID) ([]models.ImageLink, error) {
	const op = "repository.ImageLinkRepo.GetImageLinksByGalleryItem"

	query, args, err := r.sb.Select(imageLinkColumns...).
		From("image_links").
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

	var links []models.ImageLink
	for rows.Next() {
		l, err := scanImageLink(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return links, nil
}

// GetImageLinkByID возвращает ссылку по ID
func (r *ImageLinkRepo) GetImageLinkByID(ctx context.Context, id uuid.UUID) (models.ImageLink, error) {
	const op = "repository.ImageLinkRepo.GetImageLinkByID"

	query, args, err := r.sb.Select(imageLinkColumns...).
		From("image_links").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.ImageLink{}, fmt.Errorf("%s: %w", op, err)
	}

	l, err := scanImageLink(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ImageLink{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.ImageLink{}, fmt.Errorf("%s: %w", op, err)
	}

	return l, nil
}

// DeleteImageLink удаляет ссылку и уменьшает image_count её альбома
// в одной транзакции
func (r *ImageLinkRepo) DeleteImageLink(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ImageLinkRepo.DeleteImageLink"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	var galleryItemID uuid.UUID
	err = tx.QueryRow(ctx,
		`DELETE FROM image_links WHERE id = $1 RETURNING gallery_item_id`,
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
