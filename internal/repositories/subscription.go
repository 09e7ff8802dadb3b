package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/avikde21/videotube-backend/internal/logger"
)

type SubscriptionReadRepository struct {
	db *sqlx.DB
}

func NewSubscriptionReadRepository(db *sqlx.DB) *SubscriptionReadRepository {
	return &SubscriptionReadRepository{db: db}
}

// Exists reports whether subscriber follows channel.
func (r *SubscriptionReadRepository) Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions
			WHERE subscriber_id = $1 AND channel_id = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, subscriberID, channelID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{subscriberID, channelID},
		"result", exists,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return exists, nil
}

type SubscriptionWriteRepository struct {
	db *sqlx.DB
}

func NewSubscriptionWriteRepository(db *sqlx.DB) *SubscriptionWriteRepository {
	return &SubscriptionWriteRepository{db: db}
}

// Toggle removes the (subscriber, channel) edge when it exists, creates it
// otherwise, and reports the resulting state. The primary key on the pair
// keeps the edge unique even under concurrent toggles.
func (r *SubscriptionWriteRepository) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	const deleteQuery = `
		DELETE FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2
	`

	res, err := r.db.ExecContext(ctx, deleteQuery, subscriberID, channelID)
	var deleted int64
	if res != nil {
		deleted, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(deleteQuery), " "),
		"args", []any{subscriberID, channelID},
		"result", deleted,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	if deleted > 0 {
		return false, nil
	}

	const insertQuery = `
		INSERT INTO subscriptions (subscriber_id, channel_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING
	`

	_, err = r.db.ExecContext(ctx, insertQuery, subscriberID, channelID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(insertQuery), " "),
		"args", []any{subscriberID, channelID},
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return true, nil
}
