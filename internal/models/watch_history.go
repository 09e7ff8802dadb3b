package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoOwner is the minimal owner projection attached to each watch
// history entry.
type VideoOwner struct {
	Username  string `json:"username" db:"owner_username"`
	FullName  string `json:"fullName" db:"owner_full_name"`
	AvatarURL string `json:"avatarUrl" db:"owner_avatar_url"`
}

// WatchHistoryItem is one resolved watch history entry: the watched video
// joined with its owner's minimal profile.
type WatchHistoryItem struct {
	VideoID      uuid.UUID  `json:"id" db:"video_id"`
	Title        string     `json:"title" db:"title"`
	ThumbnailURL string     `json:"thumbnailUrl" db:"thumbnail_url"`
	Duration     float64    `json:"duration" db:"duration"`
	Views        int64      `json:"views" db:"views"`
	WatchedAt    time.Time  `json:"watchedAt" db:"watched_at"`
	Owner        VideoOwner `json:"owner"`
}
