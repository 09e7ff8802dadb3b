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

//go:generate mockgen -source=watch_history.go -destination=mock_watch_history.go -package=handlers

// WatchHistoryGetter defines the interface that the watch history service must implement.
type WatchHistoryGetter interface {
	GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryItem, error)
}

// NewWatchHistoryHandler returns an HTTP handler for the watch history
// projection.
// @Summary Get watch history
// @Description Returns the caller's watch history in stored order; each entry carries the video and its owner's minimal profile.
// @Tags users
// @Produce json
// @Success 200 {object} handlers.APIResponse "Watch history"
// @Failure 401 {object} handlers.APIError "Unauthorized"
// @Router /users/history [get]
// @Security BearerAuth
func NewWatchHistoryHandler(svc WatchHistoryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		items, err := svc.GetWatchHistory(r.Context(), user.UserID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeSuccess(w, http.StatusOK, "Watch history fetched successfully", items)
	}
}
