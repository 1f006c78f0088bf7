package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"school_portal/internal/domain/models"
	jwtlib "school_portal/internal/lib/jwt"
	"school_portal/internal/lib/logger/sl"
	"school_portal/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenNotInStorage = errors.New("token not found in storage")
)

// TokenService выпускает пары access/refresh токенов и ротирует refresh
// токены через хранилище. Секрет и сроки жизни приходят из конфигурации.
type TokenService struct {
	log        *slog.Logger
	repo       repository.TokenRepository
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(
	log *slog.Logger,
	repo repository.TokenRepository,
	secret string,
	accessTTL, refreshTTL time.Duration,
) *TokenService {
	return &TokenService{
		log:        log,
		repo:       repo,
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateTokens выпускает пару токенов и кладет refresh в хранилище
func (s *TokenService) GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error) {
	const op = "token_service.GenerateTokens"

	accessToken, err := jwtlib.NewToken(user, s.secret, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := jwtlib.NewToken(user, s.secret, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.SaveRefreshToken(ctx, user.ID.String(), refreshToken, s.refreshTTL); err != nil {
		s.log.Error("failed to save refresh token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens проверяет refresh токен, удаляет его из хранилища
// (использованный токен второй раз не принимается) и выпускает новую пару
func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "token_service.RefreshTokens"
	log := s.log.With(slog.String("op", op))

	meta, err := jwtlib.ParseToken(refreshToken, s.secret)
	if err != nil {
		log.Warn("refresh token rejected", sl.Err(err))
		return nil, ErrInvalidToken
	}

	exists, err := s.repo.GetRefreshToken(ctx, meta.UserID, refreshToken)
	if err != nil {
		log.Error("failed to check refresh token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		log.Warn("refresh token not in storage", slog.String("user_id", meta.UserID))
		return nil, ErrTokenNotInStorage
	}

	if err := s.repo.DeleteRefreshToken(ctx, meta.UserID, refreshToken); err != nil {
		log.Error("failed to rotate refresh token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	userID, err := uuid.Parse(meta.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user := models.User{
		ID:      userID,
		Email:   meta.Email,
		IsAdmin: meta.IsAdmin,
	}

	return s.GenerateTokens(ctx, user)
}

// RevokeAll удаляет все refresh токены пользователя
func (s *TokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	const op = "token_service.RevokeAll"

	if err := s.repo.DeleteAllUserTokens(ctx, userID.String()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
