package middleware

import (
	"context"
	"net/http"
	"workout_api/internal/common"
	"workout_api/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey  contextKey = "userID"
	SessionCtxKey contextKey = "session"
)

// SessionAuthenticator resolves a verified token session to a user id.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, session security.Session) (string, error)
}

// Authenticator rejects requests whose bearer token (verified earlier by
// jwtauth.Verifier) is missing, invalid, revoked or names an unknown user.
// Token checks happen before any storage lookup.
func Authenticator(auth SessionAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}

			session, err := security.SessionFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
				return
			}

			userID, err := auth.Authenticate(r.Context(), session)
			if err != nil {
				common.RespondWithAppError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
			ctx = context.WithValue(ctx, SessionCtxKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

func GetSessionFromContext(ctx context.Context) (security.Session, bool) {
	session, ok := ctx.Value(SessionCtxKey).(security.Session)
	return session, ok
}
