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
	"github.com/lib/pq"
)

type GalleryRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewGalleryRepository(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Списки ссылок на дочерние документы собираются из дочерних таблиц.
// Порядок задает seq: created_at в пределах одной транзакции одинаков
// и порядок добавления не сохраняет.
var galleryColumns = []string{
	"g.id",
	"g.title",
	"g.description",
	"g.thumbnail_url",
	"g.category",
	"g.uploaded_by",
	"g.upload_date",
	"g.is_public",
	"g.featured",
	"g.image_count",
	"COALESCE((SELECT array_agg(p.id::text ORDER BY p.seq) FROM photos p WHERE p.gallery_item_id = g.id), '{}') AS photos",
	"COALESCE((SELECT array_agg(l.id::text ORDER BY l.seq) FROM image_links l WHERE l.gallery_item_id = g.id), '{}') AS image_adresses",
	"g.created_at",
	"g.updated_at",
}

func scanGalleryItem(row pgx.Row) (models.GalleryItem, error) {
	var g models.GalleryItem
	err := row.Scan(
		&g.ID,
		&g.Title,
		&g.Description,
		&g.ThumbnailURL,
		&g.Category,
		&g.UploadedBy,
		&g.UploadDate,
		&g.IsPublic,
		&g.Featured,
		&g.ImageCount,
		&g.Photos,
		&g.ImageAdress,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	return g, err
}

// CreateGalleryItem создает альбом и возвращает его с серверными полями
func (r *GalleryRepo) CreateGalleryItem(ctx context.Context, item models.GalleryItem) (models.GalleryItem, error) {
	const op = "repository.GalleryRepo.CreateGalleryItem"

	query, args, err := r.sb.Insert("gallery_items").
		Columns("title", "description", "thumbnail_url", "category", "uploaded_by", "is_public", "featured", "image_count").
		Values(
			item.Title,
			item.Description,
			item.ThumbnailURL,
			item.Category,
			item.UploadedBy,
			item.IsPublic,
			item.Featured,
			item.ImageCount,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return r.GetGalleryItemByID(ctx, id)
}

// GetGalleryItems возвращает альбомы, свежие первыми.
// Непустой categories ограничивает выборку перечисленными категориями.
func (r *GalleryRepo) GetGalleryItems(ctx context.Context, categories []string) ([]models.GalleryItem, error) {
	const op = "repository.GalleryRepo.GetGalleryItems"

	builder := r.sb.Select(galleryColumns...).
		From("gallery_items g")

	if len(categories) > 0 {
		builder = builder.Where("g.category = ANY(?)", pq.Array(categories))
	}

	query, args, err := builder.
		OrderBy("g.upload_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.GalleryItem
	for rows.Next() {
		g, err := scanGalleryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// GetGalleryItemByID возвращает альбом по ID
func (r *GalleryRepo) GetGalleryItemByID(ctx context.Context, id uuid.UUID) (models.GalleryItem, error) {
	const op = "repository.GalleryRepo.GetGalleryItemByID"

	query, args, err := r.sb.Select(galleryColumns...).
		From("gallery_items g").
		Where(sq.Eq{"g.id": id}).
		ToSql()
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	g, err := scanGalleryItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GalleryItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return g, nil
}

// UpdateGalleryItemFields обновляет только перечисленные поля (merge-patch)
func (r *GalleryRepo) UpdateGalleryItemFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.GalleryItem, error) {
	const op = "repository.GalleryRepo.UpdateGalleryItemFields"

	builder := r.sb.Update("gallery_items")
	for field, value := range updates {
		builder = builder.Set(field, value)
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	var updatedID uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GalleryItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return r.GetGalleryItemByID(ctx, updatedID)
}

// DeleteGalleryItem удаляет альбом по ID.
// Дочерние Photo/ImageLink не удаляются, поведение источника сохранено
// (каскадного удаления нет, см. DESIGN.md).
func (r *GalleryRepo) DeleteGalleryItem(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryRepo.DeleteGalleryItem"

	query, args, err := r.sb.Delete("gallery_items").
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

// GalleryItemExists проверяет существование альбома
func (r *GalleryRepo) GalleryItemExists(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "repository.GalleryRepo.GalleryItemExists"

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM gallery_items WHERE id = $1)`,
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}
