package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoDB represents a video record in the database. Video lifecycle is
// owned by the content features; the identity core only reads it for the
// watch history projection.
type VideoDB struct {
	VideoID      uuid.UUID `json:"id" db:"video_id"`
	OwnerID      uuid.UUID `json:"ownerId" db:"owner_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	VideoFileURL string    `json:"videoFileUrl" db:"video_file_url"`
	ThumbnailURL string    `json:"thumbnailUrl" db:"thumbnail_url"`
	Duration     float64   `json:"duration" db:"duration"`
	Views        int64     `json:"views" db:"views"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
