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

//go:generate mockgen -source=update_cover_image.go -destination=mock_update_cover_image.go -package=handlers

// CoverImageUpdater defines the interface that the cover image update service must implement.
type CoverImageUpdater interface {
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, filePath string) (*models.UserPublic, error)
}

// NewUpdateCoverImageHandler returns an HTTP handler for cover image
// replacement.
// @Summary Update cover image
// @Description Uploads a new cover image and stores its hosted URL.
// @Tags users
// @Accept mpfd
// @Produce json
// @Param coverImage formData file true "Cover image"
// @Success 200 {object} handlers.APIResponse "Updated user"
// @Failure 400 {object} handlers.APIError "Cover image file missing"
// @Router /users/update-cover-image [patch]
// @Security BearerAuth
func NewUpdateCoverImageHandler(svc CoverImageUpdater) http.HandlerFunc {
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

		path, err := saveUploadedFile(r, "coverImage")
		if err != nil {
			logger.Log.Errorw("failed to spool cover image upload", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if path == "" {
			writeError(w, http.StatusBadRequest, "coverImage file is required")
			return
		}

		updated, err := svc.UpdateCoverImage(r.Context(), user.UserID, path)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeSuccess(w, http.StatusOK, "Cover image updated successfully", updated)
	}
}
