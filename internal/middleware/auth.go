package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/utils"
)

// SessionCookie is read when the request carries no Authorization header.
const SessionCookie = "session"

type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (entities.Identity, error)
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id entities.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller's identity; a guest when none was attached.
func IdentityFrom(ctx context.Context) entities.Identity {
	id, _ := ctx.Value(identityKey{}).(entities.Identity)
	return id
}

// Authenticate attaches the identity behind the request's session token. Requests
// without a valid token continue as guests.
func Authenticate(logger *slog.Logger, resolver IdentityResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				logger.Error("failed to resolve session", slog.Any("error", err))
				utils.WriteError(w, "session store unavailable", http.StatusServiceUnavailable)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin rejects guests with 401 and signed-in non-admins with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFrom(r.Context())
		switch {
		case id.Guest():
			utils.WriteError(w, entities.ErrUnauthenticated.Error(), http.StatusUnauthorized)
		case !id.IsAdmin:
			utils.WriteError(w, entities.ErrForbidden.Error(), http.StatusForbidden)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
