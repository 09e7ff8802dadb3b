package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/models"
	"github.com/avikde21/videotube-backend/internal/services"
)

//go:generate mockgen -source=login.go -destination=mock_login.go -package=handlers

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, identifier, password string) (*models.UserPublic, *services.TokenPair, error)
}

// LoginRequest represents the JSON body for user login. Either username or
// email identifies the account.
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// default: john_doe
	Username string `json:"username"`

	// Email
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// LoginResult is the payload of a successful login.
// swagger:model LoginResult
type LoginResult struct {
	User         *models.UserPublic `json:"user"`
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate by username or email and receive an access/refresh token pair, also set as httpOnly cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.APIResponse "Token pair returned"
// @Failure 400 {object} handlers.APIError "Invalid request body"
// @Failure 401 {object} handlers.APIError "Invalid username or password"
// @Router /users/login [post]
func NewLoginHandler(svc Loginer, accessExp, refreshExp time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		identifier := req.Username
		if identifier == "" {
			identifier = req.Email
		}
		if identifier == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "username or email and password are required")
			return
		}

		user, pair, err := svc.Login(r.Context(), identifier, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "Invalid username or password")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		setAuthCookies(w, pair, accessExp, refreshExp)
		writeSuccess(w, http.StatusOK, "Login successful", LoginResult{
			User:         user,
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		})
	}
}
