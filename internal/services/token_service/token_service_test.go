package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"school_portal/internal/domain/models"
	jwtlib "school_portal/internal/lib/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error {
	args := m.Called(ctx, userID, token, exp)
	return args.Error(0)
}

func (m *MockTokenRepository) GetRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	args := m.Called(ctx, userID, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) DeleteRefreshToken(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteAllUserTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newTestTokenService(repo *MockTokenRepository) *TokenService {
	return NewTokenService(slog.Default(), repo, testSecret, 15*time.Minute, time.Hour)
}

func testUser() models.User {
	return models.User{
		ID:      uuid.New(),
		Email:   "admin@school.local",
		IsAdmin: true,
	}
}

func TestGenerateTokens_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	service := newTestTokenService(repo)
	user := testUser()

	repo.On("SaveRefreshToken", ctx, user.ID.String(), mock.AnythingOfType("string"), time.Hour).
		Return(nil).Once()

	pair, err := service.GenerateTokens(ctx, user)

	require.NoError(t, err)
	assert.Equal(t, user.ID, pair.UserID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	meta, err := jwtlib.ParseToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), meta.UserID)
	assert.Equal(t, user.Email, meta.Email)
	assert.True(t, meta.IsAdmin)

	repo.AssertExpectations(t)
}

func TestGenerateTokens_RepoError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	service := newTestTokenService(repo)

	repo.On("SaveRefreshToken", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("redis down")).Once()

	_, err := service.GenerateTokens(ctx, testUser())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
}

func TestRefreshTokens_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	service := newTestTokenService(repo)
	user := testUser()

	refreshToken, err := jwtlib.NewToken(user, testSecret, time.Hour)
	require.NoError(t, err)

	repo.On("GetRefreshToken", ctx, user.ID.String(), refreshToken).Return(true, nil).Once()
	repo.On("DeleteRefreshToken", ctx, user.ID.String(), refreshToken).Return(nil).Once()
	repo.On("SaveRefreshToken", ctx, user.ID.String(), mock.AnythingOfType("string"), time.Hour).
		Return(nil).Once()

	pair, err := service.RefreshTokens(ctx, refreshToken)

	require.NoError(t, err)
	assert.Equal(t, user.ID, pair.UserID)

	meta, err := jwtlib.ParseToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.Email, meta.Email)
	assert.True(t, meta.IsAdmin)

	repo.AssertExpectations(t)
}

func TestRefreshTokens_Garbage(t *testing.T) {
	service := newTestTokenService(new(MockTokenRepository))

	_, err := service.RefreshTokens(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokens_WrongSecret(t *testing.T) {
	service := newTestTokenService(new(MockTokenRepository))

	forged, err := jwtlib.NewToken(testUser(), "other-secret", time.Hour)
	require.NoError(t, err)

	_, err = service.RefreshTokens(context.Background(), forged)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokens_Expired(t *testing.T) {
	service := newTestTokenService(new(MockTokenRepository))

	expired, err := jwtlib.NewToken(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = service.RefreshTokens(context.Background(), expired)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokens_NotInStorage(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	service := newTestTokenService(repo)
	user := testUser()

	refreshToken, err := jwtlib.NewToken(user, testSecret, time.Hour)
	require.NoError(t, err)

	repo.On("GetRefreshToken", ctx, user.ID.String(), refreshToken).Return(false, nil).Once()

	_, err = service.RefreshTokens(ctx, refreshToken)

	assert.ErrorIs(t, err, ErrTokenNotInStorage)
	repo.AssertNotCalled(t, "DeleteRefreshToken", ctx, user.ID.String(), refreshToken)
}

func TestRefreshTokens_RotateError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	service := newTestTokenService(repo)
	user := testUser()

	refreshToken, err := jwtlib.NewToken(user, testSecret, time.Hour)
	require.NoError(t, err)

	repo.On("GetRefreshToken", ctx, user.ID.String(), refreshToken).Return(true, nil).Once()
	repo.On("DeleteRefreshToken", ctx, user.ID.String(), refreshToken).
		Return(errors.New("redis down")).Once()

	_, err = service.RefreshTokens(ctx, refreshToken)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "SaveRefreshToken", ctx, mock.Anything, mock.Anything, mock.Anything)
}

func TestRevokeAll(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTokenRepository)
	service := newTestTokenService(repo)
	userID := uuid.New()

	repo.On("DeleteAllUserTokens", ctx, userID.String()).Return(nil).Once()

	assert.NoError(t, service.RevokeAll(ctx, userID))
	repo.AssertExpectations(t)
}
