package jwt

import (
	"errors"
	"time"

	"school_portal/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
)

// NewToken выпускает подписанный HS256 токен с данными пользователя
func NewToken(user models.User, secret string, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["uid"] = user.ID.String()
	claims["email"] = user.Email
	claims["is_admin"] = user.IsAdmin
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(duration).Unix()

	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок действия, возвращает метаданные субъекта
func ParseToken(tokenString, secret string) (*models.TokenMeta, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidTokenClaims
	}

	uid, ok := claims["uid"].(string)
	if !ok {
		return nil, ErrInvalidTokenClaims
	}

	meta := &models.TokenMeta{UserID: uid}
	if email, ok := claims["email"].(string); ok {
		meta.Email = email
	}
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		meta.IsAdmin = isAdmin
	}
	if iat, ok := claims["iat"].(float64); ok {
		meta.IssuedAt = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		meta.ExpiresAt = int64(exp)
	}

	return meta, nil
}
