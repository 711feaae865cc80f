// Package identity resolves bearer tokens to the signed-in user. Sessions are
// issued by the auth service and stored in Redis as JSON under session:<token>.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore is the part of the redis client the resolver needs.
type SessionStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type session struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

type RedisResolver struct {
	logger *slog.Logger
	store  SessionStore
}

func NewRedisResolver(logger *slog.Logger, store SessionStore) *RedisResolver {
	return &RedisResolver{
		logger: logger.With(slog.String("service", "identity")),
		store:  store,
	}
}

// Resolve returns the identity behind token. Unknown or expired tokens resolve to
// a guest identity without error; only storage failures are reported.
func (r *RedisResolver) Resolve(ctx context.Context, token string) (entities.Identity, error) {
	if token == "" {
		return entities.Identity{}, nil
	}

	data, err := r.store.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.Identity{}, nil
	}
	if err != nil {
		return entities.Identity{}, fmt.Errorf("failed to load session: %w", err)
	}

	var s session
	if err := json.Unmarshal(data, &s); err != nil {
		r.logger.WarnContext(ctx, "malformed session", slog.Any("error", err))
		return entities.Identity{}, nil
	}

	return entities.Identity{
		UserID:  s.UserID,
		Name:    s.Name,
		Email:   s.Email,
		IsAdmin: s.IsAdmin,
	}, nil
}
