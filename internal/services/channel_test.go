package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/avikde21/videotube-backend/internal/models"
	"github.com/avikde21/videotube-backend/internal/services"
)

type channelMocks struct {
	users         *services.MockUserReader
	channels      *services.MockChannelReader
	cache         *services.MockProfileCache
	subscriptions *services.MockSubscriptionReader
	subWriter     *services.MockSubscriptionWriter
	history       *services.MockHistoryReader
	historyWriter *services.MockHistoryWriter
	videos        *services.MockVideoReader
}

func newChannelService(ctrl *gomock.Controller) (*services.ChannelService, channelMocks) {
	m := channelMocks{
		users:         services.NewMockUserReader(ctrl),
		channels:      services.NewMockChannelReader(ctrl),
		cache:         services.NewMockProfileCache(ctrl),
		subscriptions: services.NewMockSubscriptionReader(ctrl),
		subWriter:     services.NewMockSubscriptionWriter(ctrl),
		history:       services.NewMockHistoryReader(ctrl),
		historyWriter: services.NewMockHistoryWriter(ctrl),
		videos:        services.NewMockVideoReader(ctrl),
	}
	svc := services.NewChannelService(
		m.users, m.channels, m.cache, m.subscriptions, m.subWriter,
		m.history, m.historyWriter, m.videos, nil,
	)
	return svc, m
}

func TestChannelService_GetChannelProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newChannelService(ctrl)

	channelID := uuid.New()
	requesterID := uuid.New()
	profile := func() *models.ChannelProfile {
		return &models.ChannelProfile{
			UserID:            channelID,
			Username:          "alice",
			SubscriberCount:   3,
			SubscribedToCount: 1,
		}
	}

	t.Run("cache miss fills cache", func(t *testing.T) {
		m.cache.EXPECT().Get(gomock.Any(), "alice").Return(nil, nil)
		m.channels.EXPECT().GetProfileByUsername(gomock.Any(), "alice").Return(profile(), nil)
		m.cache.EXPECT().Set(gomock.Any(), "alice", gomock.Any()).Return(nil)
		m.subscriptions.EXPECT().Exists(gomock.Any(), requesterID, channelID).Return(true, nil)

		got, err := svc.GetChannelProfile(context.Background(), "alice", requesterID)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), got.SubscriberCount)
		assert.True(t, got.IsSubscribed)
	})

	t.Run("mixed-case username uses the lowercase cache key", func(t *testing.T) {
		m.cache.EXPECT().Get(gomock.Any(), "alice").Return(nil, nil)
		m.channels.EXPECT().GetProfileByUsername(gomock.Any(), "alice").Return(profile(), nil)
		m.cache.EXPECT().Set(gomock.Any(), "alice", gomock.Any()).Return(nil)
		m.subscriptions.EXPECT().Exists(gomock.Any(), requesterID, channelID).Return(false, nil)

		got, err := svc.GetChannelProfile(context.Background(), "Alice", requesterID)
		assert.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		m.cache.EXPECT().Get(gomock.Any(), "alice").Return(profile(), nil)
		m.subscriptions.EXPECT().Exists(gomock.Any(), requesterID, channelID).Return(false, nil)

		got, err := svc.GetChannelProfile(context.Background(), "alice", requesterID)
		assert.NoError(t, err)
		assert.False(t, got.IsSubscribed)
	})

	t.Run("cache read failure falls through", func(t *testing.T) {
		m.cache.EXPECT().Get(gomock.Any(), "alice").Return(nil, errors.New("redis down"))
		m.channels.EXPECT().GetProfileByUsername(gomock.Any(), "alice").Return(profile(), nil)
		m.cache.EXPECT().Set(gomock.Any(), "alice", gomock.Any()).Return(errors.New("redis down"))
		m.subscriptions.EXPECT().Exists(gomock.Any(), requesterID, channelID).Return(false, nil)

		got, err := svc.GetChannelProfile(context.Background(), "alice", requesterID)
		assert.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("unknown channel", func(t *testing.T) {
		m.cache.EXPECT().Get(gomock.Any(), "ghost").Return(nil, nil)
		m.channels.EXPECT().GetProfileByUsername(gomock.Any(), "ghost").Return(nil, nil)

		got, err := svc.GetChannelProfile(context.Background(), "ghost", requesterID)
		assert.ErrorIs(t, err, services.ErrChannelNotFound)
		assert.Nil(t, got)
	})

	t.Run("repository error", func(t *testing.T) {
		m.cache.EXPECT().Get(gomock.Any(), "alice").Return(nil, nil)
		m.channels.EXPECT().GetProfileByUsername(gomock.Any(), "alice").Return(nil, errors.New("db error"))

		got, err := svc.GetChannelProfile(context.Background(), "alice", requesterID)
		assert.EqualError(t, err, "db error")
		assert.Nil(t, got)
	})
}

func TestChannelService_GetWatchHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newChannelService(ctrl)

	userID := uuid.New()
	items := []models.WatchHistoryItem{
		{
			VideoID:   uuid.New(),
			Title:     "first",
			WatchedAt: time.Now().Add(-2 * time.Hour),
			Owner:     models.VideoOwner{Username: "bob"},
		},
		{
			VideoID:   uuid.New(),
			Title:     "second",
			WatchedAt: time.Now().Add(-time.Hour),
			Owner:     models.VideoOwner{Username: "carol"},
		},
	}

	tests := []struct {
		name       string
		user       *models.UserDB
		readerErr  error
		items      []models.WatchHistoryItem
		historyErr error
		wantErr    error
	}{
		{
			name:  "history in stored order",
			user:  &models.UserDB{UserID: userID},
			items: items,
		},
		{
			name:  "empty history is not an error",
			user:  &models.UserDB{UserID: userID},
			items: []models.WatchHistoryItem{},
		},
		{
			name:    "unknown user",
			user:    nil,
			wantErr: services.ErrUserNotFound,
		},
		{
			name:       "history error",
			user:       &models.UserDB{UserID: userID},
			historyErr: errors.New("db error"),
			wantErr:    errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.users.EXPECT().
				GetByID(gomock.Any(), userID).
				Return(tt.user, tt.readerErr)

			if tt.user != nil {
				m.history.EXPECT().
					GetByUserID(gomock.Any(), userID).
					Return(tt.items, tt.historyErr)
			}

			got, err := svc.GetWatchHistory(context.Background(), userID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Len(t, got, len(tt.items))
				for i := range tt.items {
					assert.Equal(t, tt.items[i].Title, got[i].Title)
				}
			}
		})
	}
}

func TestChannelService_RecordWatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newChannelService(ctrl)

	userID := uuid.New()
	videoID := uuid.New()

	tests := []struct {
		name      string
		video     *models.VideoDB
		videoErr  error
		appendErr error
		wantErr   error
	}{
		{
			name:  "successful append",
			video: &models.VideoDB{VideoID: videoID},
		},
		{
			name:    "unknown video",
			video:   nil,
			wantErr: services.ErrVideoNotFound,
		},
		{
			name:      "append error",
			video:     &models.VideoDB{VideoID: videoID},
			appendErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.videos.EXPECT().
				GetByID(gomock.Any(), videoID).
				Return(tt.video, tt.videoErr)

			if tt.video != nil {
				m.historyWriter.EXPECT().
					Append(gomock.Any(), userID, videoID).
					Return(tt.appendErr)
			}

			err := svc.RecordWatch(context.Background(), userID, videoID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChannelService_ToggleSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newChannelService(ctrl)

	requesterID := uuid.New()
	channelID := uuid.New()

	t.Run("subscribe", func(t *testing.T) {
		m.users.EXPECT().
			GetByID(gomock.Any(), channelID).
			Return(&models.UserDB{UserID: channelID, Username: "alice"}, nil)
		m.subWriter.EXPECT().Toggle(gomock.Any(), requesterID, channelID).Return(true, nil)
		m.cache.EXPECT().Invalidate(gomock.Any(), "alice").Return(nil)

		subscribed, err := svc.ToggleSubscription(context.Background(), requesterID, channelID)
		assert.NoError(t, err)
		assert.True(t, subscribed)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		m.users.EXPECT().
			GetByID(gomock.Any(), channelID).
			Return(&models.UserDB{UserID: channelID, Username: "alice"}, nil)
		m.subWriter.EXPECT().Toggle(gomock.Any(), requesterID, channelID).Return(false, nil)
		m.cache.EXPECT().Invalidate(gomock.Any(), "alice").Return(nil)

		subscribed, err := svc.ToggleSubscription(context.Background(), requesterID, channelID)
		assert.NoError(t, err)
		assert.False(t, subscribed)
	})

	t.Run("self subscription rejected", func(t *testing.T) {
		subscribed, err := svc.ToggleSubscription(context.Background(), requesterID, requesterID)
		assert.ErrorIs(t, err, services.ErrSelfSubscription)
		assert.False(t, subscribed)
	})

	t.Run("unknown channel", func(t *testing.T) {
		m.users.EXPECT().GetByID(gomock.Any(), channelID).Return(nil, nil)

		subscribed, err := svc.ToggleSubscription(context.Background(), requesterID, channelID)
		assert.ErrorIs(t, err, services.ErrChannelNotFound)
		assert.False(t, subscribed)
	})

	t.Run("toggle error", func(t *testing.T) {
		m.users.EXPECT().
			GetByID(gomock.Any(), channelID).
			Return(&models.UserDB{UserID: channelID, Username: "alice"}, nil)
		m.subWriter.EXPECT().Toggle(gomock.Any(), requesterID, channelID).Return(false, errors.New("db error"))

		subscribed, err := svc.ToggleSubscription(context.Background(), requesterID, channelID)
		assert.EqualError(t, err, "db error")
		assert.False(t, subscribed)
	})
}
