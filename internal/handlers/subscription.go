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

//go:generate mockgen -source=subscription.go -destination=mock_subscription.go -package=handlers

// SubscriptionToggler defines the interface that the subscription service must implement.
type SubscriptionToggler interface {
	ToggleSubscription(ctx context.Context, requesterID, channelID uuid.UUID) (bool, error)
}

// ToggleSubscriptionResult reports the state of the edge after the toggle.
// swagger:model ToggleSubscriptionResult
type ToggleSubscriptionResult struct {
	// Whether the caller now subscribes to the channel
	Subscribed bool `json:"subscribed"`
}

// NewToggleSubscriptionHandler returns an HTTP handler that flips the
// caller's subscription to a channel.
// @Summary Toggle subscription
// @Description Subscribes the caller to the channel, or unsubscribes when already subscribed.
// @Tags channels
// @Produce json
// @Param channelID path string true "Channel user id"
// @Success 200 {object} handlers.APIResponse "Resulting subscription state"
// @Failure 400 {object} handlers.APIError "Self-subscription or malformed id"
// @Failure 404 {object} handlers.APIError "Channel not found"
// @Router /subscriptions/{channelID}/toggle [post]
// @Security BearerAuth
func NewToggleSubscriptionHandler(svc SubscriptionToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		channelID, err := uuid.Parse(chi.URLParam(r, "channelID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid channel id")
			return
		}

		subscribed, err := svc.ToggleSubscription(r.Context(), user.UserID, channelID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrSelfSubscription):
				writeError(w, http.StatusBadRequest, "Cannot subscribe to your own channel")
			case errors.Is(err, services.ErrChannelNotFound):
				writeError(w, http.StatusNotFound, "Channel not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, "Subscription toggled successfully", ToggleSubscriptionResult{
			Subscribed: subscribed,
		})
	}
}
