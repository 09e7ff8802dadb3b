package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/models"
)

// ErrUniqueViolation is returned when an insert or update collides with the
// username or email uniqueness constraints.
var ErrUniqueViolation = errors.New("username or email already exists")

const pgUniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsernameOrEmail finds a user whose username or email matches the
// identifier, case-insensitively. Returns nil without error when no user
// matches.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, full_name, password_hash,
		       avatar_url, cover_image_url, refresh_token, created_at, updated_at
		FROM users
		WHERE username = LOWER($1) OR LOWER(email) = LOWER($1)
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, identifier)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{identifier},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// GetByID finds a user by primary key. Returns nil without error when the
// id does not resolve.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, full_name, password_hash,
		       avatar_url, cover_image_url, refresh_token, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns the stored record. Username and email
// are lowercased before storage so the uniqueness constraints are
// case-insensitive.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.UserDB) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (user_id, username, email, full_name, password_hash,
		                   avatar_url, cover_image_url, created_at, updated_at)
		VALUES ($1, LOWER($2), LOWER($3), $4, $5, $6, $7, NOW(), NOW())
		RETURNING user_id, username, email, full_name, password_hash,
		          avatar_url, cover_image_url, refresh_token, created_at, updated_at
	`
	args := []any{uuid.New(), user.Username, user.Email, user.FullName,
		user.PasswordHash, user.AvatarURL, user.CoverImageURL}

	var saved models.UserDB
	err := r.db.GetContext(ctx, &saved, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{user.Username, user.Email},
		"error", err,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUniqueViolation
		}
		return nil, err
	}

	return &saved, nil
}

// SetRefreshToken unconditionally replaces the stored refresh token.
// Passing nil revokes the active session.
func (r *UserWriteRepository) SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error {
	const query = `
		UPDATE users
		SET refresh_token = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	res, err := r.db.ExecContext(ctx, query, userID, token)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CompareAndSetRefreshToken replaces the stored refresh token only when the
// stored value still byte-matches the presented one. Returns sql.ErrNoRows
// when the stored value has changed underneath the caller, so concurrent
// rotations of the same token cannot both succeed.
func (r *UserWriteRepository) CompareAndSetRefreshToken(ctx context.Context, userID uuid.UUID, newToken, presented string) error {
	const query = `
		UPDATE users
		SET refresh_token = $2, updated_at = NOW()
		WHERE user_id = $1 AND refresh_token = $3
	`

	res, err := r.db.ExecContext(ctx, query, userID, newToken, presented)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, newHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	res, err := r.db.ExecContext(ctx, query, userID, newHash)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateProfile applies a partial update of fullName, email and username.
// Nil fields are left untouched.
func (r *UserWriteRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, email, username *string) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET full_name = COALESCE($2, full_name),
		    email = COALESCE(LOWER($3), email),
		    username = COALESCE(LOWER($4), username),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, username, email, full_name, password_hash,
		          avatar_url, cover_image_url, refresh_token, created_at, updated_at
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID, fullName, email, username)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUniqueViolation
		}
		return nil, err
	}

	return &user, nil
}

// UpdateAvatar replaces the hosted avatar reference.
func (r *UserWriteRepository) UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) (*models.UserDB, error) {
	return r.updateImage(ctx, userID, "avatar_url", url)
}

// UpdateCoverImage replaces the hosted cover image reference.
func (r *UserWriteRepository) UpdateCoverImage(ctx context.Context, userID uuid.UUID, url string) (*models.UserDB, error) {
	return r.updateImage(ctx, userID, "cover_image_url", url)
}

func (r *UserWriteRepository) updateImage(ctx context.Context, userID uuid.UUID, column, url string) (*models.UserDB, error) {
	// column is one of two fixed names, never user input.
	query := `
		UPDATE users
		SET ` + column + ` = $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, username, email, full_name, password_hash,
		          avatar_url, cover_image_url, refresh_token, created_at, updated_at
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID, url)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, url},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}
