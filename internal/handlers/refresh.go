package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/services"
)

//go:generate mockgen -source=refresh.go -destination=mock_refresh.go -package=handlers

// Refresher defines the interface that the token rotation service must implement.
type Refresher interface {
	Refresh(ctx context.Context, presented string) (*services.TokenPair, error)
}

// RefreshTokenGetter extracts the refresh token from the request cookie.
type RefreshTokenGetter interface {
	GetRefreshTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// RefreshRequest is the JSON body fallback when the refresh token is not
// presented as a cookie.
// swagger:model RefreshRequest
type RefreshRequest struct {
	// Refresh token
	RefreshToken string `json:"refreshToken"`
}

// NewRefreshHandler returns an HTTP handler that rotates a refresh token
// into a new access/refresh pair. The presented token is read from the
// refreshToken cookie or, failing that, from the JSON body.
// @Summary Refresh token pair
// @Description Exchange a valid refresh token for a new pair; the presented token is invalidated.
// @Tags auth
// @Accept json
// @Produce json
// @Param refreshRequest body handlers.RefreshRequest false "Refresh token (when not sent as cookie)"
// @Success 200 {object} handlers.APIResponse "New token pair"
// @Failure 401 {object} handlers.APIError "Invalid or expired refresh token"
// @Router /users/refresh-token [post]
func NewRefreshHandler(svc Refresher, tokenGetter RefreshTokenGetter, accessExp, refreshExp time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presented, err := tokenGetter.GetRefreshTokenFromRequest(r.Context(), r)
		if err != nil || presented == "" {
			var req RefreshRequest
			if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr == nil {
				presented = req.RefreshToken
			}
		}
		if presented == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		pair, err := svc.Refresh(r.Context(), presented)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				writeError(w, http.StatusUnauthorized, "Unauthorized request")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		setAuthCookies(w, pair, accessExp, refreshExp)
		writeSuccess(w, http.StatusOK, "Token refreshed successfully", pair)
	}
}
