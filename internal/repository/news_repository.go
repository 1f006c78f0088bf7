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

type NewsRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewNewsRepository(db *pgxpool.Pool) *NewsRepo {
	return &NewsRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var newsColumns = []string{
	"id",
	"title",
	"summary",
	"content",
	"date",
	"author",
	"status",
	"featured",
	"created_at",
	"updated_at",
}

func scanNews(row pgx.Row) (models.NewsArticle, error) {
	var n models.NewsArticle
	err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Summary,
		&n.Content,
		&n.Date,
		&n.Author,
		&n.Status,
		&n.Featured,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	return n, err
}

// CreateNews сохраняет статью и возвращает её с серверными полями
func (r *NewsRepo) CreateNews(ctx context.Context, article models.NewsArticle) (models.NewsArticle, error) {
	const op = "repository.NewsRepo.CreateNews"

	query, args, err := r.sb.Insert("news").
		Columns("title", "summary", "content", "date", "author", "status", "featured").
		Values(
			article.Title,
			article.Summary,
			article.Content,
			article.Date,
			article.Author,
			article.Status,
			article.Featured,
		).
		Suffix("RETURNING " + joinColumns(newsColumns)).
		ToSql()
	if err != nil {
		return models.NewsArticle{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanNews(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.NewsArticle{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

// GetNews возвращает все статьи, свежие первыми
func (r *NewsRepo) GetNews(ctx context.Context) ([]models.NewsArticle, error) {
	const op = "repository.NewsRepo.GetNews"

	query, args, err := r.sb.Select(newsColumns...).
		From("news").
		OrderBy("date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var articles []models.NewsArticle
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		articles = append(articles, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return articles, nil
}

// GetNewsByID возвращает статью по ID
func (r *NewsRepo) GetNewsByID(ctx context.Context, id uuid.UUID) (models.NewsArticle, error) {
	const op = "repository.NewsRepo.GetNewsByID"

	query, args, err := r.sb.Select(newsColumns...).
		From("news").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.NewsArticle{}, fmt.Errorf("%s: %w", op, err)
	}

	n, err := scanNews(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.NewsArticle{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.NewsArticle{}, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// UpdateNewsFields обновляет только перечисленные поля (merge-patch)
func (r *NewsRepo) UpdateNewsFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (models.NewsArticle, error) {
	const op = "repository.NewsRepo.UpdateNewsFields"

	builder := r.sb.Update("news")
	for field, value := range updates {
		builder = builder.Set(field, value)
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(newsColumns)).
		ToSql()
	if err != nil {
		return models.NewsArticle{}, fmt.Errorf("%s: %w", op, err)
	}

	n, err := scanNews(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.NewsArticle{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.NewsArticle{}, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// DeleteNews удаляет статью по ID
func (r *NewsRepo) DeleteNews(ctx context.Context, id uuid.UUID) error {
	const op = "repository.NewsRepo.DeleteNews"

	query, args, err := r.sb.Delete("news").
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
