package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/models"
	"github.com/avikde21/videotube-backend/internal/repositories"
)

//go:generate mockgen -source=user.go -destination=mock_user.go -package=services

// ProfileWriter defines profile mutation operations for users.
type ProfileWriter interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, email, username *string) (*models.UserDB, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, url string) (*models.UserDB, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, url string) (*models.UserDB, error)
}

// ProfileCacheInvalidator drops cached channel profiles after mutations.
type ProfileCacheInvalidator interface {
	Invalidate(ctx context.Context, username string) error
}

// UserService serves the current identity and profile mutations.
type UserService struct {
	reader   UserReader
	writer   ProfileWriter
	uploader MediaUploader
	cache    ProfileCacheInvalidator
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer ProfileWriter, uploader MediaUploader, cache ProfileCacheInvalidator) *UserService {
	return &UserService{
		reader:   reader,
		writer:   writer,
		uploader: uploader,
		cache:    cache,
	}
}

// GetCurrent returns the public projection of the authenticated user.
func (svc *UserService) GetCurrent(ctx context.Context, userID uuid.UUID) (*models.UserPublic, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.Public(), nil
}

// UpdateProfile applies a partial update of fullName, email and username
// and invalidates the channel profile cache under both the old and new
// usernames.
func (svc *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, email, username *string) (*models.UserPublic, error) {
	current, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return nil, err
	}
	if current == nil {
		return nil, ErrUserNotFound
	}

	updated, err := svc.writer.UpdateProfile(ctx, userID, fullName, email, username)
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to update profile", "userID", userID, "err", err)
		return nil, err
	}

	svc.invalidateProfile(ctx, current.Username)
	if updated.Username != current.Username {
		svc.invalidateProfile(ctx, updated.Username)
	}

	return updated.Public(), nil
}

// UpdateAvatar uploads the new avatar and stores the hosted URL.
func (svc *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, filePath string) (*models.UserPublic, error) {
	url, err := svc.uploader.Upload(ctx, filePath)
	if err != nil {
		logger.Log.Errorw("failed to upload avatar", "userID", userID, "err", err)
		return nil, err
	}

	updated, err := svc.writer.UpdateAvatar(ctx, userID, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to update avatar", "userID", userID, "err", err)
		return nil, err
	}

	svc.invalidateProfile(ctx, updated.Username)
	return updated.Public(), nil
}

// UpdateCoverImage uploads the new cover image and stores the hosted URL.
func (svc *UserService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, filePath string) (*models.UserPublic, error) {
	url, err := svc.uploader.Upload(ctx, filePath)
	if err != nil {
		logger.Log.Errorw("failed to upload cover image", "userID", userID, "err", err)
		return nil, err
	}

	updated, err := svc.writer.UpdateCoverImage(ctx, userID, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to update cover image", "userID", userID, "err", err)
		return nil, err
	}

	svc.invalidateProfile(ctx, updated.Username)
	return updated.Public(), nil
}

func (svc *UserService) invalidateProfile(ctx context.Context, username string) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Invalidate(ctx, username); err != nil {
		logger.Log.Errorw("failed to invalidate profile cache", "username", username, "err", err)
	}
}
