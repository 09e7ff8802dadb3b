package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/middlewares"
	"github.com/avikde21/videotube-backend/internal/models"
	"github.com/avikde21/videotube-backend/internal/services"
)

//go:generate mockgen -source=channel_profile.go -destination=mock_channel_profile.go -package=handlers

// ChannelProfileGetter defines the interface that the aggregation service must implement.
type ChannelProfileGetter interface {
	GetChannelProfile(ctx context.Context, username string, requesterID uuid.UUID) (*models.ChannelProfile, error)
}

// NewChannelProfileHandler returns an HTTP handler for the channel profile
// view.
// @Summary Get channel profile
// @Description Returns the channel's public profile with subscriber counts and whether the caller is subscribed.
// @Tags channels
// @Produce json
// @Param username path string true "Channel username"
// @Success 200 {object} handlers.APIResponse "Channel profile"
// @Failure 404 {object} handlers.APIError "Channel not found"
// @Router /users/profile/{username} [get]
// @Security BearerAuth
func NewChannelProfileHandler(svc ChannelProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		username := chi.URLParam(r, "username")
		if username == "" {
			writeError(w, http.StatusBadRequest, "username is required")
			return
		}

		profile, err := svc.GetChannelProfile(r.Context(), username, user.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrChannelNotFound):
				writeError(w, http.StatusNotFound, "Channel not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, "Channel profile fetched successfully", profile)
	}
}
