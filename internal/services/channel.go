package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/models"
)

//go:generate mockgen -source=channel.go -destination=mock_channel.go -package=services

// Error variables
var (
	ErrChannelNotFound  = errors.New("channel not found")
	ErrVideoNotFound    = errors.New("video not found")
	ErrSelfSubscription = errors.New("cannot subscribe to your own channel")
)

// ChannelReader resolves the channel profile aggregate.
type ChannelReader interface {
	GetProfileByUsername(ctx context.Context, username string) (*models.ChannelProfile, error)
}

// ProfileCache defines cache operations for channel profiles.
type ProfileCache interface {
	Get(ctx context.Context, username string) (*models.ChannelProfile, error)
	Set(ctx context.Context, username string, profile *models.ChannelProfile) error
	Invalidate(ctx context.Context, username string) error
}

// SubscriptionReader defines read-only operations on subscription edges.
type SubscriptionReader interface {
	Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
}

// SubscriptionWriter toggles subscription edges.
type SubscriptionWriter interface {
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
}

// HistoryReader resolves the watch history projection.
type HistoryReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryItem, error)
}

// HistoryWriter appends watch entries.
type HistoryWriter interface {
	Append(ctx context.Context, userID, videoID uuid.UUID) error
}

// VideoReader defines read-only operations for videos.
type VideoReader interface {
	GetByID(ctx context.Context, videoID uuid.UUID) (*models.VideoDB, error)
}

// ChannelService computes the subscriber-graph and watch-history views and
// owns the subscription toggle.
type ChannelService struct {
	users         UserReader
	channels      ChannelReader
	cache         ProfileCache
	subscriptions SubscriptionReader
	subWriter     SubscriptionWriter
	history       HistoryReader
	historyWriter HistoryWriter
	videos        VideoReader
	kafkaWriter   KafkaWriter
}

// NewChannelService creates a new ChannelService instance.
func NewChannelService(
	users UserReader,
	channels ChannelReader,
	cache ProfileCache,
	subscriptions SubscriptionReader,
	subWriter SubscriptionWriter,
	history HistoryReader,
	historyWriter HistoryWriter,
	videos VideoReader,
	kafkaWriter KafkaWriter,
) *ChannelService {
	return &ChannelService{
		users:         users,
		channels:      channels,
		cache:         cache,
		subscriptions: subscriptions,
		subWriter:     subWriter,
		history:       history,
		historyWriter: historyWriter,
		videos:        videos,
		kafkaWriter:   kafkaWriter,
	}
}

// GetChannelProfile resolves the channel profile for a username. The
// requester-independent aggregate is served cache-aside; IsSubscribed is
// resolved per requester on top of it. The username is lowercased up front
// so the cache key always matches the stored username that invalidation
// uses.
func (svc *ChannelService) GetChannelProfile(ctx context.Context, username string, requesterID uuid.UUID) (*models.ChannelProfile, error) {
	username = strings.ToLower(username)

	profile, err := svc.getProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrChannelNotFound
	}

	isSubscribed, err := svc.subscriptions.Exists(ctx, requesterID, profile.UserID)
	if err != nil {
		logger.Log.Errorw("failed to check subscription", "username", username, "requesterID", requesterID, "err", err)
		return nil, err
	}
	profile.IsSubscribed = isSubscribed

	return profile, nil
}

func (svc *ChannelService) getProfile(ctx context.Context, username string) (*models.ChannelProfile, error) {
	if svc.cache != nil {
		cached, err := svc.cache.Get(ctx, username)
		if err != nil {
			logger.Log.Errorw("profile cache read failed", "username", username, "err", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	profile, err := svc.channels.GetProfileByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get channel profile", "username", username, "err", err)
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	if svc.cache != nil {
		if err := svc.cache.Set(ctx, username, profile); err != nil {
			logger.Log.Errorw("profile cache write failed", "username", username, "err", err)
		}
	}

	return profile, nil
}

// GetWatchHistory returns the user's watch history in stored order. An
// empty history is an empty slice, not an error; only an unresolvable user
// is.
func (svc *ChannelService) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryItem, error) {
	user, err := svc.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	items, err := svc.history.GetByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get watch history", "userID", userID, "err", err)
		return nil, err
	}
	return items, nil
}

// RecordWatch appends a video to the user's watch history and publishes a
// watch event.
func (svc *ChannelService) RecordWatch(ctx context.Context, userID, videoID uuid.UUID) error {
	video, err := svc.videos.GetByID(ctx, videoID)
	if err != nil {
		logger.Log.Errorw("failed to get video", "videoID", videoID, "err", err)
		return err
	}
	if video == nil {
		return ErrVideoNotFound
	}

	if err := svc.historyWriter.Append(ctx, userID, videoID); err != nil {
		logger.Log.Errorw("failed to append watch history", "userID", userID, "videoID", videoID, "err", err)
		return err
	}

	publishEvent(ctx, svc.kafkaWriter, models.Event{
		EventID:   uuid.NewString(),
		Type:      models.EventWatch,
		Timestamp: time.Now().Unix(),
		UserID:    userID.String(),
		TargetID:  videoID.String(),
	})

	return nil
}

// ToggleSubscription flips the (requester, channel) edge and reports the
// resulting state. Self-subscription is rejected.
func (svc *ChannelService) ToggleSubscription(ctx context.Context, requesterID, channelID uuid.UUID) (bool, error) {
	if requesterID == channelID {
		return false, ErrSelfSubscription
	}

	channel, err := svc.users.GetByID(ctx, channelID)
	if err != nil {
		logger.Log.Errorw("failed to get channel user", "channelID", channelID, "err", err)
		return false, err
	}
	if channel == nil {
		return false, ErrChannelNotFound
	}

	subscribed, err := svc.subWriter.Toggle(ctx, requesterID, channelID)
	if err != nil {
		logger.Log.Errorw("failed to toggle subscription", "requesterID", requesterID, "channelID", channelID, "err", err)
		return false, err
	}

	if svc.cache != nil {
		if err := svc.cache.Invalidate(ctx, channel.Username); err != nil {
			logger.Log.Errorw("failed to invalidate profile cache", "username", channel.Username, "err", err)
		}
	}

	publishEvent(ctx, svc.kafkaWriter, models.Event{
		EventID:   uuid.NewString(),
		Type:      models.EventSubscriptionToggled,
		Timestamp: time.Now().Unix(),
		UserID:    requesterID.String(),
		TargetID:  channelID.String(),
	})

	return subscribed, nil
}
