package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/middlewares"
	"github.com/avikde21/videotube-backend/internal/models"
	"github.com/avikde21/videotube-backend/internal/services"
)

//go:generate mockgen -source=update_profile.go -destination=mock_update_profile.go -package=handlers

// ProfileUpdater defines the interface that the profile update service must implement.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, email, username *string) (*models.UserPublic, error)
}

// UpdateProfileRequest is the JSON body for a partial profile update. Only
// set fields are applied.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// Full name
	FullName *string `json:"fullName,omitempty"`

	// Email
	Email *string `json:"email,omitempty"`

	// Username
	Username *string `json:"username,omitempty"`
}

// NewUpdateProfileHandler returns an HTTP handler for profile updates.
// @Summary Update profile fields
// @Description Applies a partial update of fullName, email and username.
// @Tags users
// @Accept json
// @Produce json
// @Param updateProfileRequest body handlers.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} handlers.APIResponse "Updated user"
// @Failure 400 {object} handlers.APIError "No fields to update"
// @Failure 409 {object} handlers.APIError "Username or email already exists"
// @Router /users/update-user [patch]
// @Security BearerAuth
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.FullName == nil && req.Email == nil && req.Username == nil {
			writeError(w, http.StatusBadRequest, "at least one of fullName, email or username is required")
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), user.UserID, req.FullName, req.Email, req.Username)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusConflict, "Username or email already exists")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, "Profile updated successfully", updated)
	}
}
