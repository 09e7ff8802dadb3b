package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/middlewares"
	"github.com/avikde21/videotube-backend/internal/services"
)

//go:generate mockgen -source=change_password.go -destination=mock_change_password.go -package=handlers

// PasswordChanger defines the interface that the password change service must implement.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

// ChangePasswordRequest represents the JSON body for a password change.
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	OldPassword string `json:"oldPassword"`

	// New password
	// required: true
	NewPassword string `json:"newPassword"`
}

// NewChangePasswordHandler returns an HTTP handler for password changes.
// @Summary Change password
// @Description Verifies the current password and replaces it.
// @Tags auth
// @Accept json
// @Produce json
// @Param changePasswordRequest body handlers.ChangePasswordRequest true "Password change request"
// @Success 200 {object} handlers.APIResponse "Password changed"
// @Failure 400 {object} handlers.APIError "Invalid request body"
// @Failure 401 {object} handlers.APIError "Wrong current password"
// @Router /users/change-password [post]
// @Security BearerAuth
func NewChangePasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.OldPassword == "" || req.NewPassword == "" {
			writeError(w, http.StatusBadRequest, "oldPassword and newPassword are required")
			return
		}

		if err := svc.ChangePassword(r.Context(), user.UserID, req.OldPassword, req.NewPassword); err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "Invalid current password")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, "Password changed successfully", nil)
	}
}
