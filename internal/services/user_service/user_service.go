package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"school_portal/internal/domain/models"
	"school_portal/internal/lib/logger/sl"
	"school_portal/internal/repository"
	"school_portal/internal/storage"
	"school_portal/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExist          = errors.New("user already exist")
	ErrUserNotFound       = errors.New("user not found")
)

type TokenProvider interface {
	GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error)
}

type UserService struct {
	log    *slog.Logger
	repo   repository.UserRepository
	tokens TokenProvider
	// Флаг is_admin почти не меняется, держим его в памяти
	adminCache *gocache.Cache
}

func NewUserService(log *slog.Logger, repo repository.UserRepository, tokens TokenProvider) *UserService {
	return &UserService{
		log:        log,
		repo:       repo,
		tokens:     tokens,
		adminCache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Login проверяет учетные данные, выпускает пару токенов и открывает сессию
func (s *UserService) Login(ctx context.Context, c echo.Context, email, password string) (*models.TokenPair, error) {
	const op = "user_service.Login"
	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to login user")

	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Warn("failed to update last login", sl.Err(err))
	}

	pair, err := s.tokens.GenerateTokens(ctx, user)
	if err != nil {
		log.Error("failed to generate tokens", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if c != nil {
		sess, err := session.Get("session", c)
		if err == nil {
			sess.Values["user_id"] = user.ID.String()
			sess.Values["is_admin"] = user.IsAdmin
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				log.Warn("failed to save session", sl.Err(err))
			}
		}
	}

	log.Info("user logged in successfully")
	return pair, nil
}

// RegisterNewUser хеширует пароль и сохраняет пользователя
func (s *UserService) RegisterNewUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error) {
	const op = "user_service.RegisterNewUser"
	log := s.log.With(
		slog.String("op", op),
		slog.String("email", input.Email),
	)

	log.Info("register user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: passHash,
		IsAdmin:  input.IsAdmin,
	}

	id, err := s.repo.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exist", sl.Err(err))
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUserExist)
		}
		log.Error("failed to save user", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", id.String()))
	return id, nil
}

// IsAdmin проверяет флаг администратора, сначала в кеше
func (s *UserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	const op = "user_service.IsAdmin"
	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID.String()),
	)

	if cached, found := s.adminCache.Get(userID.String()); found {
		if isAdmin, ok := cached.(bool); ok {
			return isAdmin, nil
		}
	}

	isAdmin, err := s.repo.IsAdmin(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))
			return false, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		log.Error("failed to check admin flag", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.adminCache.Set(userID.String(), isAdmin, gocache.DefaultExpiration)

	log.Info("checked if user is admin", slog.Bool("is_admin", isAdmin))
	return isAdmin, nil
}

// GetUserById возвращает пользователя по ID
func (s *UserService) GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "user_service.GetUserById"
	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID.String()),
	)

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		log.Error("failed to get user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
