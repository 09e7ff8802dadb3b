package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/models"
	"github.com/avikde21/videotube-backend/internal/services"
)

//go:generate mockgen -source=register.go -destination=mock_register.go -package=handlers

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, fullName, password, avatarPath string, coverImagePath *string) (*models.UserPublic, error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account from a multipart form. Requires an avatar file; a cover image is optional.
// @Tags auth
// @Accept mpfd
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param fullName formData string true "Full name"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} handlers.APIResponse "User successfully registered"
// @Failure 400 {object} handlers.APIError "Missing or malformed fields"
// @Failure 409 {object} handlers.APIError "Username or email already exists"
// @Router /users/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		username := r.FormValue("username")
		email := r.FormValue("email")
		fullName := r.FormValue("fullName")
		password := r.FormValue("password")
		if username == "" || email == "" || fullName == "" || password == "" {
			writeError(w, http.StatusBadRequest, "username, email, fullName and password are required")
			return
		}

		avatarPath, err := saveUploadedFile(r, "avatar")
		if err != nil {
			logger.Log.Errorw("failed to spool avatar upload", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if avatarPath == "" {
			writeError(w, http.StatusBadRequest, "avatar file is required")
			return
		}

		var coverImagePath *string
		coverPath, err := saveUploadedFile(r, "coverImage")
		if err != nil {
			logger.Log.Errorw("failed to spool cover image upload", "err", err)
			removeTempFile(avatarPath)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if coverPath != "" {
			coverImagePath = &coverPath
		}

		user, err := svc.Register(r.Context(), username, email, fullName, password, avatarPath, coverImagePath)
		if err != nil {
			// The service may fail before consuming the spooled files
			// (duplicate user); already-uploaded files are gone, so the
			// removes are no-ops for them.
			removeTempFile(avatarPath)
			if coverImagePath != nil {
				removeTempFile(*coverImagePath)
			}
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusConflict, "Username or email already exists")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusCreated, "User registered successfully", user)
	}
}
