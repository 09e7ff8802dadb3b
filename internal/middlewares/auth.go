package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/models"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

// Tokener defines the minimal token interface needed by the middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetUserIDFromAccess(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// UserGetter resolves the authenticated identity.
type UserGetter interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// userContextKey is an unexported type for the identity context key.
type userContextKey struct{}

var userKey = userContextKey{}

// GetUserFromContext retrieves the authenticated user from the context.
// Returns nil if the request passed through no auth middleware.
func GetUserFromContext(ctx context.Context) *models.UserPublic {
	user, _ := ctx.Value(userKey).(*models.UserPublic)
	return user
}

// SetUserToContext stores the authenticated user in the context.
func SetUserToContext(ctx context.Context, user *models.UserPublic) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// AuthMiddleware returns a middleware that authenticates the request: it
// extracts the access token, verifies it, resolves the user and attaches
// the public projection to the request context. Every failure mode is a
// uniform 401 with no internal detail.
func AuthMiddleware(tokener Tokener, users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				writeUnauthorized(w)
				return
			}

			userID, err := tokener.GetUserIDFromAccess(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				writeUnauthorized(w)
				return
			}

			user, err := users.GetByID(ctx, userID)
			if err != nil {
				logger.Log.Errorw("failed to resolve authenticated user", "userID", userID, "err", err)
				writeUnauthorized(w)
				return
			}
			if user == nil {
				logger.Log.Errorw("authenticated user no longer exists", "userID", userID)
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetUserToContext(ctx, user.Public())))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "Unauthorized request",
	})
}
