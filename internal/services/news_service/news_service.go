package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"school_portal/internal/domain/models"
	"school_portal/internal/lib/logger/sl"
	"school_portal/internal/repository"
	"school_portal/internal/transport/http/dto"

	"github.com/google/uuid"
)

type NewsService struct {
	log  *slog.Logger
	repo repository.NewsRepository
}

func NewNewsService(log *slog.Logger, repo repository.NewsRepository) *NewsService {
	return &NewsService{log: log, repo: repo}
}

// CreateNews создает статью с валидацией обязательных полей
func (s *NewsService) CreateNews(ctx context.Context, req dto.CreateNewsRequest) (models.NewsArticle, error) {
	const op = "news_service.CreateNews"
	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	log.Info("creating news article")

	article := models.NewsArticle{
		Title:    req.Title,
		Summary:  req.Summary,
		Content:  req.Content,
		Author:   req.Author,
		Status:   models.ContentStatus(req.Status),
		Featured: req.Featured,
	}

	if req.Date != nil {
		article.Date = *req.Date
	} else {
		article.Date = time.Now().UTC()
	}
	if article.Status == "" {
		article.Status = models.StatusDraft
	}

	if err := article.Validate(); err != nil {
		log.Warn("validation failed", sl.Err(err))
		return models.NewsArticle{}, err
	}

	created, err := s.repo.CreateNews(ctx, article)
	if err != nil {
		log.Error("failed to create news article", sl.Err(err))
		return models.NewsArticle{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("news article created", slog.String("news_id", created.ID.String()))
	return created, nil
}

// GetNews возвращает все статьи, свежие первыми
func (s *NewsService) GetNews(ctx context.Context) ([]models.NewsArticle, error) {
	const op = "news_service.GetNews"
	log := s.log.With(slog.String("op", op))

	articles, err := s.repo.GetNews(ctx)
	if err != nil {
		log.Error("failed to list news", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("news listed", slog.Int("count", len(articles)))
	return articles, nil
}

// GetNewsByID возвращает статью по ID
func (s *NewsService) GetNewsByID(ctx context.Context, id uuid.UUID) (models.NewsArticle, error) {
	const op = "news_service.GetNewsByID"
	log := s.log.With(
		slog.String("op", op),
		slog.String("news_id", id.String()),
	)

	article, err := s.repo.GetNewsByID(ctx, id)
	if err != nil {
		log.Warn("failed to get news article", sl.Err(err))
		return models.NewsArticle{}, fmt.Errorf("%s: %w", op, err)
	}

	return article, nil
}

// UpdateNews обновляет только присланные поля статьи
func (s *NewsService) UpdateNews(ctx context.Context, id uuid.UUID, req dto.UpdateNewsRequest) (models.NewsArticle, error) {
	const op = "news_service.UpdateNews"
	log := s.log.With(
		slog.String("op", op),
		slog.String("news_id", id.String()),
	)

	log.Info("updating news article")

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Status != nil {
		if !models.ContentStatus(*req.Status).IsValid() {
			log.Warn("invalid status", slog.String("status", *req.Status))
			return models.NewsArticle{}, &models.ValidationError{Fields: []string{"status"}}
		}
		updates["status"] = *req.Status
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	if len(updates) == 0 {
		return s.repo.GetNewsByID(ctx, id)
	}

	updated, err := s.repo.UpdateNewsFields(ctx, id, updates)
	if err != nil {
		log.Error("failed to update news article", sl.Err(err))
		return models.NewsArticle{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("news article updated")
	return updated, nil
}

// DeleteNews удаляет статью по ID
func (s *NewsService) DeleteNews(ctx context.Context, id uuid.UUID) error {
	const op = "news_service.DeleteNews"
	log := s.log.With(
		slog.String("op", op),
		slog.String("news_id", id.String()),
	)

	log.Info("deleting news article")

	if err := s.repo.DeleteNews(ctx, id); err != nil {
		log.Warn("failed to delete news article", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("news article deleted")
	return nil
}
