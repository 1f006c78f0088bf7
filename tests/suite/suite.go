package suite

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"school_portal/internal/config"
	tokensvc "school_portal/internal/services/token_service"
)

type Suite struct {
	*testing.T
	Cfg          *config.Config
	TokenService *tokensvc.TokenService
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()
	t.Parallel()

	cfg := config.MustLoadPath(configPath())

	ctx, cancelCtx := context.WithTimeout(context.Background(), time.Hour)

	tokenService := tokensvc.NewTokenService(
		slog.Default(),
		NewMemoryTokenRepo(),
		cfg.TokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	t.Cleanup(func() {
		t.Helper()
		cancelCtx()
	})

	return ctx, &Suite{
		T:            t,
		Cfg:          cfg,
		TokenService: tokenService,
	}
}

func configPath() string {
	const key = "CONFIG_PATH"

	if v := os.Getenv(key); v != "" {
		return v
	}

	return "../config/config.yaml"
}

// MemoryTokenRepo хранит refresh токены в памяти для сквозных тестов,
// где Redis не поднимается.
type MemoryTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

func NewMemoryTokenRepo() *MemoryTokenRepo {
	return &MemoryTokenRepo{tokens: make(map[string]struct{})}
}

func (r *MemoryTokenRepo) key(userID, token string) string {
	return userID + ":" + token
}

func (r *MemoryTokenRepo) SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[r.key(userID, token)] = struct{}{}
	return nil
}

func (r *MemoryTokenRepo) GetRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tokens[r.key(userID, token)]
	return ok, nil
}

func (r *MemoryTokenRepo) DeleteRefreshToken(ctx context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, r.key(userID, token))
	return nil
}

func (r *MemoryTokenRepo) DeleteAllUserTokens(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.tokens {
		if len(k) > len(userID) && k[:len(userID)] == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}
