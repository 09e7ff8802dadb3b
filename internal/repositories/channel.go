package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/models"
)

type ChannelReadRepository struct {
	db *sqlx.DB
}

func NewChannelReadRepository(db *sqlx.DB) *ChannelReadRepository {
	return &ChannelReadRepository{db: db}
}

// GetProfileByUsername resolves the channel profile aggregate for a
// lowercased username: the public user fields plus subscriber-graph counts.
// IsSubscribed is requester-specific and therefore left to the caller so
// the aggregate stays cacheable per channel. Returns nil without error when
// the username does not resolve.
func (r *ChannelReadRepository) GetProfileByUsername(ctx context.Context, username string) (*models.ChannelProfile, error) {
	const query = `
		SELECT u.user_id, u.username, u.email, u.full_name,
		       u.avatar_url, u.cover_image_url,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.user_id)    AS subscriber_count,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.user_id) AS subscribed_to_count,
		       FALSE AS is_subscribed
		FROM users u
		WHERE u.username = LOWER($1)
	`

	var profile models.ChannelProfile
	err := r.db.GetContext(ctx, &profile, query, username)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &profile, nil
}
