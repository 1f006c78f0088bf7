package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"school_portal/internal/domain/models"
	"school_portal/internal/storage"
	"school_portal/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) UserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserRepository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockTokenProvider struct {
	mock.Mock
}

func (m *MockTokenProvider) GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

func hashPassword(t *testing.T, password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	email := "admin@school.local"
	password := "super-secret-pass"

	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: nil,
		IsAdmin:  true,
	}

	t.Run("successful login", func(t *testing.T) {
		repo := new(MockUserRepository)
		tokens := new(MockTokenProvider)
		service := NewUserService(slog.Default(), repo, tokens)

		u := user
		u.Password = hashPassword(t, password)

		repo.On("UserByEmail", ctx, email).Return(u, nil).Once()
		repo.On("UpdateLastLogin", ctx, u.ID).Return(nil).Once()
		tokens.On("GenerateTokens", ctx, u).
			Return(&models.TokenPair{UserID: u.ID, AccessToken: "a", RefreshToken: "r"}, nil).Once()

		// Сессия не открывается: echo.Context нет
		pair, err := service.Login(ctx, nil, email, password)

		require.NoError(t, err)
		assert.Equal(t, u.ID, pair.UserID)
		repo.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(slog.Default(), repo, new(MockTokenProvider))

		u := user
		u.Password = hashPassword(t, password)

		repo.On("UserByEmail", ctx, email).Return(u, nil).Once()

		_, err := service.Login(ctx, nil, email, "wrong-password")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user maps to invalid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(slog.Default(), repo, new(MockTokenProvider))

		repo.On("UserByEmail", ctx, email).
			Return(models.User{}, storage.ErrUserNotFound).Once()

		_, err := service.Login(ctx, nil, email, password)

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("failed last login update does not block login", func(t *testing.T) {
		repo := new(MockUserRepository)
		tokens := new(MockTokenProvider)
		service := NewUserService(slog.Default(), repo, tokens)

		u := user
		u.Password = hashPassword(t, password)

		repo.On("UserByEmail", ctx, email).Return(u, nil).Once()
		repo.On("UpdateLastLogin", ctx, u.ID).Return(errors.New("db busy")).Once()
		tokens.On("GenerateTokens", ctx, u).
			Return(&models.TokenPair{UserID: u.ID}, nil).Once()

		_, err := service.Login(ctx, nil, email, password)

		assert.NoError(t, err)
	})
}

func TestUserService_RegisterNewUser(t *testing.T) {
	ctx := context.Background()

	input := dto.UserRegisterInput{
		Name:     "Admin",
		Email:    "admin@school.local",
		Password: "super-secret-pass",
		IsAdmin:  true,
	}

	t.Run("successful registration hashes password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(slog.Default(), repo, new(MockTokenProvider))

		newID := uuid.New()
		repo.On("SaveUser", ctx, mock.MatchedBy(func(u models.User) bool {
			return u.Email == input.Email &&
				u.IsAdmin &&
				bcrypt.CompareHashAndPassword(u.Password, []byte(input.Password)) == nil
		})).Return(newID, nil).Once()

		id, err := service.RegisterNewUser(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, newID, id)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(slog.Default(), repo, new(MockTokenProvider))

		repo.On("SaveUser", ctx, mock.Anything).
			Return(uuid.Nil, storage.ErrUserExists).Once()

		_, err := service.RegisterNewUser(ctx, input)

		assert.ErrorIs(t, err, ErrUserExist)
	})
}

func TestUserService_IsAdmin(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("second call hits the cache", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(slog.Default(), repo, new(MockTokenProvider))

		repo.On("IsAdmin", ctx, userID).Return(true, nil).Once()

		isAdmin, err := service.IsAdmin(ctx, userID)
		require.NoError(t, err)
		assert.True(t, isAdmin)

		isAdmin, err = service.IsAdmin(ctx, userID)
		require.NoError(t, err)
		assert.True(t, isAdmin)

		repo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewUserService(slog.Default(), repo, new(MockTokenProvider))

		repo.On("IsAdmin", ctx, userID).
			Return(false, storage.ErrUserNotFound).Once()

		_, err := service.IsAdmin(ctx, userID)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_GetUserById(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	service := NewUserService(slog.Default(), repo, new(MockTokenProvider))

	userID := uuid.New()
	repo.On("GetUserByID", ctx, userID).
		Return(models.User{ID: userID, Email: "admin@school.local"}, nil).Once()

	user, err := service.GetUserById(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	repo.AssertExpectations(t)
}
