package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/avikde21/videotube-backend/internal/models"
)

func newTestUser(username, email string) *models.UserDB {
	return &models.UserDB{
		Username:     username,
		Email:        email,
		FullName:     "Test User",
		PasswordHash: "hashed-password",
		AvatarURL:    "https://media.example.com/" + username + ".png",
	}
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db)
	ctx := context.Background()

	t.Run("inserts and returns the stored record", func(t *testing.T) {
		saved, err := repo.Save(ctx, newTestUser("alice", "alice@example.com"))
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, saved.UserID)
		assert.Equal(t, "alice", saved.Username)
		assert.Equal(t, "alice@example.com", saved.Email)
		assert.Nil(t, saved.RefreshToken)
		assert.False(t, saved.CreatedAt.IsZero())
	})

	t.Run("lowercases the username", func(t *testing.T) {
		saved, err := repo.Save(ctx, newTestUser("BoB", "bob@example.com"))
		assert.NoError(t, err)
		assert.Equal(t, "bob", saved.Username)
	})

	t.Run("lowercases the email", func(t *testing.T) {
		saved, err := repo.Save(ctx, newTestUser("dora", "Dora@Example.com"))
		assert.NoError(t, err)
		assert.Equal(t, "dora@example.com", saved.Email)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := repo.Save(ctx, newTestUser("alice", "other@example.com"))
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := repo.Save(ctx, newTestUser("someoneelse", "alice@example.com"))
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})

	t.Run("duplicate email in a different case", func(t *testing.T) {
		_, err := repo.Save(ctx, newTestUser("yetanother", "Alice@Example.COM"))
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})
}

func TestUserReadRepository_GetByUsernameOrEmail(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	_, err := writeRepo.Save(ctx, newTestUser("charlie", "Charlie@Example.com"))
	assert.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		user, err := readRepo.GetByUsernameOrEmail(ctx, "charlie")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("by username case-insensitive", func(t *testing.T) {
		user, err := readRepo.GetByUsernameOrEmail(ctx, "CHARLIE")
		assert.NoError(t, err)
		assert.NotNil(t, user)
	})

	t.Run("by email case-insensitive", func(t *testing.T) {
		user, err := readRepo.GetByUsernameOrEmail(ctx, "charlie@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("no match is nil without error", func(t *testing.T) {
		user, err := readRepo.GetByUsernameOrEmail(ctx, "nonexistent")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserReadRepository_GetByID(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	saved, err := writeRepo.Save(ctx, newTestUser("dave", "dave@example.com"))
	assert.NoError(t, err)

	user, err := readRepo.GetByID(ctx, saved.UserID)
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "dave", user.Username)

	user, err = readRepo.GetByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserWriteRepository_RefreshTokenLifecycle(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	saved, err := writeRepo.Save(ctx, newTestUser("erin", "erin@example.com"))
	assert.NoError(t, err)

	token1 := "refresh-token-1"
	token2 := "refresh-token-2"

	t.Run("set", func(t *testing.T) {
		assert.NoError(t, writeRepo.SetRefreshToken(ctx, saved.UserID, &token1))

		user, err := readRepo.GetByID(ctx, saved.UserID)
		assert.NoError(t, err)
		assert.NotNil(t, user.RefreshToken)
		assert.Equal(t, token1, *user.RefreshToken)
	})

	t.Run("compare-and-set succeeds on matching token", func(t *testing.T) {
		assert.NoError(t, writeRepo.CompareAndSetRefreshToken(ctx, saved.UserID, token2, token1))

		user, err := readRepo.GetByID(ctx, saved.UserID)
		assert.NoError(t, err)
		assert.Equal(t, token2, *user.RefreshToken)
	})

	t.Run("compare-and-set fails on stale token", func(t *testing.T) {
		err := writeRepo.CompareAndSetRefreshToken(ctx, saved.UserID, "refresh-token-3", token1)
		assert.ErrorIs(t, err, sql.ErrNoRows)

		// Stored token unchanged.
		user, err := readRepo.GetByID(ctx, saved.UserID)
		assert.NoError(t, err)
		assert.Equal(t, token2, *user.RefreshToken)
	})

	t.Run("clear revokes the session", func(t *testing.T) {
		assert.NoError(t, writeRepo.SetRefreshToken(ctx, saved.UserID, nil))

		user, err := readRepo.GetByID(ctx, saved.UserID)
		assert.NoError(t, err)
		assert.Nil(t, user.RefreshToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := writeRepo.SetRefreshToken(ctx, uuid.New(), &token1)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestUserWriteRepository_UpdatePassword(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	saved, err := writeRepo.Save(ctx, newTestUser("frank", "frank@example.com"))
	assert.NoError(t, err)

	assert.NoError(t, writeRepo.UpdatePassword(ctx, saved.UserID, "new-hash"))

	user, err := readRepo.GetByID(ctx, saved.UserID)
	assert.NoError(t, err)
	assert.Equal(t, "new-hash", user.PasswordHash)

	assert.ErrorIs(t, writeRepo.UpdatePassword(ctx, uuid.New(), "x"), sql.ErrNoRows)
}

func TestUserWriteRepository_UpdateProfile(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	ctx := context.Background()

	saved, err := writeRepo.Save(ctx, newTestUser("grace", "grace@example.com"))
	assert.NoError(t, err)
	_, err = writeRepo.Save(ctx, newTestUser("heidi", "heidi@example.com"))
	assert.NoError(t, err)

	t.Run("partial update leaves other fields", func(t *testing.T) {
		newName := "Grace Hopper"
		updated, err := writeRepo.UpdateProfile(ctx, saved.UserID, &newName, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, newName, updated.FullName)
		assert.Equal(t, "grace", updated.Username)
		assert.Equal(t, "grace@example.com", updated.Email)
	})

	t.Run("username is lowercased", func(t *testing.T) {
		newUsername := "GraceH"
		updated, err := writeRepo.UpdateProfile(ctx, saved.UserID, nil, nil, &newUsername)
		assert.NoError(t, err)
		assert.Equal(t, "graceh", updated.Username)
	})

	t.Run("email is lowercased", func(t *testing.T) {
		newEmail := "Grace.Hopper@Example.com"
		updated, err := writeRepo.UpdateProfile(ctx, saved.UserID, nil, &newEmail, nil)
		assert.NoError(t, err)
		assert.Equal(t, "grace.hopper@example.com", updated.Email)
	})

	t.Run("collision with existing username", func(t *testing.T) {
		taken := "heidi"
		_, err := writeRepo.UpdateProfile(ctx, saved.UserID, nil, nil, &taken)
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})
}

func TestUserWriteRepository_UpdateImages(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	ctx := context.Background()

	saved, err := writeRepo.Save(ctx, newTestUser("ivan", "ivan@example.com"))
	assert.NoError(t, err)

	updated, err := writeRepo.UpdateAvatar(ctx, saved.UserID, "https://media.example.com/new-avatar.png")
	assert.NoError(t, err)
	assert.Equal(t, "https://media.example.com/new-avatar.png", updated.AvatarURL)

	updated, err = writeRepo.UpdateCoverImage(ctx, saved.UserID, "https://media.example.com/new-cover.png")
	assert.NoError(t, err)
	assert.NotNil(t, updated.CoverImageURL)
	assert.Equal(t, "https://media.example.com/new-cover.png", *updated.CoverImageURL)
}
