package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/models"
)

type VideoReadRepository struct {
	db *sqlx.DB
}

func NewVideoReadRepository(db *sqlx.DB) *VideoReadRepository {
	return &VideoReadRepository{db: db}
}

// GetByID finds a video by primary key. Returns nil without error when the
// id does not resolve.
func (r *VideoReadRepository) GetByID(ctx context.Context, videoID uuid.UUID) (*models.VideoDB, error) {
	const query = `
		SELECT video_id, owner_id, title, description, video_file_url,
		       thumbnail_url, duration, views, created_at
		FROM videos
		WHERE video_id = $1
	`

	var video models.VideoDB
	err := r.db.GetContext(ctx, &video, query, videoID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{videoID},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &video, nil
}
