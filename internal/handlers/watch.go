package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/middlewares"
	"github.com/avikde21/videotube-backend/internal/services"
)

//go:generate mockgen -source=watch.go -destination=mock_watch.go -package=handlers

// WatchRecorder defines the interface that the watch recording service must implement.
type WatchRecorder interface {
	RecordWatch(ctx context.Context, userID, videoID uuid.UUID) error
}

// NewRecordWatchHandler returns an HTTP handler that appends a video to the
// caller's watch history.
// @Summary Record a watch
// @Description Appends the video to the caller's watch history.
// @Tags users
// @Produce json
// @Param videoID path string true "Video id"
// @Success 200 {object} handlers.APIResponse "Watch recorded"
// @Failure 400 {object} handlers.APIError "Malformed video id"
// @Failure 404 {object} handlers.APIError "Video not found"
// @Router /users/history/{videoID} [post]
// @Security BearerAuth
func NewRecordWatchHandler(svc WatchRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		videoID, err := uuid.Parse(chi.URLParam(r, "videoID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid video id")
			return
		}

		if err := svc.RecordWatch(r.Context(), user.UserID, videoID); err != nil {
			if errors.Is(err, services.ErrVideoNotFound) {
				writeError(w, http.StatusNotFound, "Video not found")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeSuccess(w, http.StatusOK, "Watch recorded successfully", nil)
	}
}
