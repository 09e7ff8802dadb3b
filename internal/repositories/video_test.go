package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/avikde21/videotube-backend/internal/models"
)

func seedVideo(t *testing.T, db *sqlx.DB, ownerID uuid.UUID, title string) *models.VideoDB {
	t.Helper()

	video := &models.VideoDB{
		VideoID:      uuid.New(),
		OwnerID:      ownerID,
		Title:        title,
		Description:  "about " + title,
		VideoFileURL: "https://media.example.com/videos/" + title + ".mp4",
		ThumbnailURL: "https://media.example.com/thumbs/" + title + ".png",
		Duration:     120.5,
		Views:        42,
	}

	const query = `
		INSERT INTO videos (video_id, owner_id, title, description, video_file_url, thumbnail_url, duration, views)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := db.Exec(query, video.VideoID, video.OwnerID, video.Title,
		video.Description, video.VideoFileURL, video.ThumbnailURL, video.Duration, video.Views)
	assert.NoError(t, err)

	return video
}

func TestVideoReadRepository_GetByID(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	repo := NewVideoReadRepository(db)
	ctx := context.Background()

	owner, err := writeRepo.Save(ctx, newTestUser("dave", "dave@example.com"))
	assert.NoError(t, err)
	seeded := seedVideo(t, db, owner.UserID, "first-upload")

	t.Run("finds a video by id", func(t *testing.T) {
		video, err := repo.GetByID(ctx, seeded.VideoID)
		assert.NoError(t, err)
		assert.NotNil(t, video)
		assert.Equal(t, seeded.VideoID, video.VideoID)
		assert.Equal(t, owner.UserID, video.OwnerID)
		assert.Equal(t, "first-upload", video.Title)
		assert.Equal(t, 120.5, video.Duration)
		assert.Equal(t, int64(42), video.Views)
	})

	t.Run("unknown id resolves to nil", func(t *testing.T) {
		video, err := repo.GetByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, video)
	})
}
