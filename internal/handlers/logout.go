package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/middlewares"
	"github.com/avikde21/videotube-backend/internal/services"
)

//go:generate mockgen -source=logout.go -destination=mock_logout.go -package=handlers

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, userID uuid.UUID) error
}

// NewLogoutHandler returns an HTTP handler that revokes the caller's
// session and clears both token cookies.
// @Summary Logout
// @Description Clears the stored refresh token and removes the token cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.APIResponse "Logged out"
// @Failure 401 {object} handlers.APIError "Unauthorized"
// @Router /users/logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		if err := svc.Logout(r.Context(), user.UserID); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusUnauthorized, "Unauthorized request")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		clearAuthCookies(w)
		writeSuccess(w, http.StatusOK, "Logged out successfully", nil)
	}
}
