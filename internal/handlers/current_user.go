package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/middlewares"
	"github.com/avikde21/videotube-backend/internal/models"
	"github.com/avikde21/videotube-backend/internal/services"
)

//go:generate mockgen -source=current_user.go -destination=mock_current_user.go -package=handlers

// CurrentUserGetter defines the interface that the identity service must implement.
type CurrentUserGetter interface {
	GetCurrent(ctx context.Context, userID uuid.UUID) (*models.UserPublic, error)
}

// NewCurrentUserHandler returns an HTTP handler for the authenticated
// identity.
// @Summary Get current user
// @Description Returns the authenticated user's public profile.
// @Tags users
// @Produce json
// @Success 200 {object} handlers.APIResponse "Current user"
// @Failure 401 {object} handlers.APIError "Unauthorized"
// @Router /users/current-user [get]
// @Security BearerAuth
func NewCurrentUserHandler(svc CurrentUserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		current, err := svc.GetCurrent(r.Context(), user.UserID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusUnauthorized, "Unauthorized request")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeSuccess(w, http.StatusOK, "Current user fetched successfully", current)
	}
}
