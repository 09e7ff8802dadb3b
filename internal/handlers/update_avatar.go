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

//go:generate mockgen -source=update_avatar.go -destination=mock_update_avatar.go -package=handlers

// AvatarUpdater defines the interface that the avatar update service must implement.
type AvatarUpdater interface {
	UpdateAvatar(ctx context.Context, userID uuid.UUID, filePath string) (*models.UserPublic, error)
}

// NewUpdateAvatarHandler returns an HTTP handler for avatar replacement.
// @Summary Update avatar
// @Description Uploads a new avatar image and stores its hosted URL.
// @Tags users
// @Accept mpfd
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} handlers.APIResponse "Updated user"
// @Failure 400 {object} handlers.APIError "Avatar file missing"
// @Router /users/update-avatar [patch]
// @Security BearerAuth
func NewUpdateAvatarHandler(svc AvatarUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		path, err := saveUploadedFile(r, "avatar")
		if err != nil {
			logger.Log.Errorw("failed to spool avatar upload", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if path == "" {
			writeError(w, http.StatusBadRequest, "avatar file is required")
			return
		}

		updated, err := svc.UpdateAvatar(r.Context(), user.UserID, path)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeSuccess(w, http.StatusOK, "Avatar updated successfully", updated)
	}
}
