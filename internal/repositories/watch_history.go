package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/models"
)

type WatchHistoryReadRepository struct {
	db *sqlx.DB
}

func NewWatchHistoryReadRepository(db *sqlx.DB) *WatchHistoryReadRepository {
	return &WatchHistoryReadRepository{db: db}
}

// GetByUserID returns the user's watch history in stored (append) order,
// each entry joined with its video and the video owner's minimal profile.
// The lateral join takes the first matching owner, so a dangling or
// duplicated owner id can never fan out an entry.
func (r *WatchHistoryReadRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryItem, error) {
	const query = `
		SELECT v.video_id, v.title, v.thumbnail_url, v.duration, v.views, h.watched_at,
		       o.username AS owner_username,
		       o.full_name AS owner_full_name,
		       o.avatar_url AS owner_avatar_url
		FROM watch_history h
		JOIN videos v ON v.video_id = h.video_id
		JOIN LATERAL (
			SELECT username, full_name, avatar_url
			FROM users
			WHERE user_id = v.owner_id
			LIMIT 1
		) o ON TRUE
		WHERE h.user_id = $1
		ORDER BY h.entry_id
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.WatchHistoryItem, 0)
	for rows.Next() {
		var item models.WatchHistoryItem
		err := rows.Scan(&item.VideoID, &item.Title, &item.ThumbnailURL,
			&item.Duration, &item.Views, &item.WatchedAt,
			&item.Owner.Username, &item.Owner.FullName, &item.Owner.AvatarURL)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// WatchHistoryWriteRepository appends watch entries. Dedupe and cap
// behavior are configuration, not policy: dedupe moves a re-watched video
// to the most-recent position instead of duplicating it, maxEntries trims
// the oldest entries past the cap (0 means unbounded).
type WatchHistoryWriteRepository struct {
	db         *sqlx.DB
	txGetter   func(ctx context.Context) *sqlx.Tx
	dedupe     bool
	maxEntries int
}

func NewWatchHistoryWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx, dedupe bool, maxEntries int) *WatchHistoryWriteRepository {
	return &WatchHistoryWriteRepository{db: db, txGetter: txGetter, dedupe: dedupe, maxEntries: maxEntries}
}

func (r *WatchHistoryWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Append records that userID watched videoID.
func (r *WatchHistoryWriteRepository) Append(ctx context.Context, userID, videoID uuid.UUID) error {
	executor := r.executor(ctx)

	if r.dedupe {
		const dedupeQuery = `
			DELETE FROM watch_history
			WHERE user_id = $1 AND video_id = $2
		`
		if _, err := executor.ExecContext(ctx, dedupeQuery, userID, videoID); err != nil {
			logger.Log.Infow(
				"query", strings.Join(strings.Fields(dedupeQuery), " "),
				"args", []any{userID, videoID},
				"error", err,
			)
			return err
		}
	}

	const insertQuery = `
		INSERT INTO watch_history (user_id, video_id, watched_at)
		VALUES ($1, $2, NOW())
	`

	_, err := executor.ExecContext(ctx, insertQuery, userID, videoID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(insertQuery), " "),
		"args", []any{userID, videoID},
		"error", err,
	)

	if err != nil {
		return err
	}

	if r.maxEntries > 0 {
		const trimQuery = `
			DELETE FROM watch_history
			WHERE entry_id IN (
				SELECT entry_id FROM watch_history
				WHERE user_id = $1
				ORDER BY entry_id DESC
				OFFSET $2
			)
		`
		if _, err := executor.ExecContext(ctx, trimQuery, userID, r.maxEntries); err != nil {
			logger.Log.Infow(
				"query", strings.Join(strings.Fields(trimQuery), " "),
				"args", []any{userID, r.maxEntries},
				"error", err,
			)
			return err
		}
	}

	return nil
}
