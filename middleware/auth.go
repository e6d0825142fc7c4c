package middleware

import (
	"context"
	"net/http"

	"notedesk/auth"
	"notedesk/res"
)

type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth guards a route group: it extracts and verifies the token, then
// injects the resolved user id into the request context. A missing token and
// a failing one both answer 401, with distinct messages.
func RequireAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := auth.TokenFromRequest(r)
			if !ok {
				res.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			userID, err := svc.VerifyToken(tokenStr)
			if err != nil {
				res.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}
