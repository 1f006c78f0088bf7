package tests

import (
	"testing"
	"time"

	"school_portal/internal/domain/models"
	"school_portal/tests/suite"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFlow_HappyPath(t *testing.T) {
	ctx, st := suite.New(t)

	user := models.User{
		ID:      uuid.New(),
		Email:   "teacher@school.local",
		IsAdmin: false,
	}

	pair, err := st.TokenService.GenerateTokens(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	issuedAt := time.Now()

	tokenParsed, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(st.Cfg.TokenSecret), nil
	})
	require.NoError(t, err)

	claims, ok := tokenParsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["uid"].(string))
	assert.Equal(t, user.Email, claims["email"].(string))

	const deltaSeconds = 2

	assert.InDelta(t, issuedAt.Add(st.Cfg.AccessTokenTTL).Unix(), claims["exp"].(float64), deltaSeconds)
}

func TestTokenFlow_RefreshRotates(t *testing.T) {
	ctx, st := suite.New(t)

	user := models.User{ID: uuid.New(), Email: "teacher@school.local"}

	pair, err := st.TokenService.GenerateTokens(ctx, user)
	require.NoError(t, err)

	// iat в клеймах с точностью до секунды: без паузы новый токен
	// совпал бы со старым байт в байт
	time.Sleep(1100 * time.Millisecond)

	fresh, err := st.TokenService.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, fresh.UserID)
	assert.NotEqual(t, pair.RefreshToken, fresh.RefreshToken)

	// Использованный refresh токен второй раз не принимается
	_, err = st.TokenService.RefreshTokens(ctx, pair.RefreshToken)
	assert.Error(t, err)
}
