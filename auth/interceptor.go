package auth

import (
	"context"
	"messenger/domain"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// SessionValidator resolves a bearer token to an active session.
type SessionValidator interface {
	ValidateSession(accessToken string) (*domain.Session, error)
}

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	SessionIDKey contextKey = "session_id"
)

// BearerMiddleware rejects requests without a usable session and puts the
// session identity into the request context for the next handlers.
func BearerMiddleware(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Expecting the standard "Bearer <token>" format
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "authorization token is missing", http.StatusUnauthorized)
				return
			}

			session, err := sessions.ValidateSession(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, session.UserID)
			ctx = context.WithValue(ctx, SessionIDKey, session.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom returns the user set by BearerMiddleware.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}
