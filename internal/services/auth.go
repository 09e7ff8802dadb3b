package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avikde21/videotube-backend/internal/logger"
	"github.com/avikde21/videotube-backend/internal/models"
	"github.com/avikde21/videotube-backend/internal/repositories"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) (*models.UserDB, error)
	SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error
	CompareAndSetRefreshToken(ctx context.Context, userID uuid.UUID, newToken, presented string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, newHash string) error
}

// TokenIssuer defines the token operations the auth flow needs.
type TokenIssuer interface {
	GenerateAccess(ctx context.Context, userID uuid.UUID) (string, error)
	GenerateRefresh(ctx context.Context, userID uuid.UUID) (string, error)
	GetUserIDFromRefresh(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// MediaUploader uploads a local file to the media host and returns the
// hosted URL.
type MediaUploader interface {
	Upload(ctx context.Context, filePath string) (string, error)
}

// TokenPair is an access/refresh pair freshly issued for a user.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService handles registration, login, logout, token rotation and
// password changes.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	tokens      TokenIssuer
	uploader    MediaUploader
	kafkaWriter KafkaWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenIssuer, uploader MediaUploader, kafkaWriter KafkaWriter) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		tokens:      tokens,
		uploader:    uploader,
		kafkaWriter: kafkaWriter,
	}
}

// Register creates a new user. The avatar is uploaded to the media host
// before the record is written; the optional cover image likewise.
func (svc *AuthService) Register(ctx context.Context, username, email, fullName, password, avatarPath string, coverImagePath *string) (*models.UserPublic, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	existing, err := svc.reader.GetByUsernameOrEmail(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing == nil {
		existing, err = svc.reader.GetByUsernameOrEmail(ctx, email)
		if err != nil {
			logger.Log.Errorw("failed to check email exists", "err", err)
			return nil, err
		}
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "username", username, "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	avatarURL, err := svc.uploader.Upload(ctx, avatarPath)
	if err != nil {
		logger.Log.Errorw("failed to upload avatar", "err", err)
		return nil, err
	}

	var coverImageURL *string
	if coverImagePath != nil {
		url, err := svc.uploader.Upload(ctx, *coverImagePath)
		if err != nil {
			logger.Log.Errorw("failed to upload cover image", "err", err)
			return nil, err
		}
		coverImageURL = &url
	}

	saved, err := svc.writer.Save(ctx, &models.UserDB{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		PasswordHash:  string(hashedPassword),
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	publishEvent(ctx, svc.kafkaWriter, models.Event{
		EventID:   uuid.NewString(),
		Type:      models.EventUserRegistered,
		Timestamp: time.Now().Unix(),
		UserID:    saved.UserID.String(),
	})

	return saved.Public(), nil
}

// Login authenticates a user by username or email and issues a fresh token
// pair. Issuing the pair persists the refresh token, displacing any
// previous session.
func (svc *AuthService) Login(ctx context.Context, identifier, password string) (*models.UserPublic, *TokenPair, error) {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "identifier", identifier)
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "identifier", identifier)
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := svc.issuePair(ctx, user.UserID)
	if err != nil {
		return nil, nil, err
	}

	return user.Public(), pair, nil
}

// issuePair generates an access/refresh pair and persists the refresh
// token as the user's single active session.
func (svc *AuthService) issuePair(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	access, err := svc.tokens.GenerateAccess(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "err", err)
		return nil, err
	}

	refresh, err := svc.tokens.GenerateRefresh(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "err", err)
		return nil, err
	}

	if err := svc.writer.SetRefreshToken(ctx, userID, &refresh); err != nil {
		logger.Log.Errorw("failed to persist refresh token", "userID", userID, "err", err)
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates a presented refresh token into a new pair. Every failure
// mode collapses into ErrUnauthorized: a caller cannot tell an expired
// token from a superseded or revoked one.
func (svc *AuthService) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	userID, err := svc.tokens.GetUserIDFromRefresh(ctx, presented)
	if err != nil {
		logger.Log.Errorw("refresh token verification failed", "err", err)
		return nil, ErrUnauthorized
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return nil, err
	}
	if user == nil || user.RefreshToken == nil || *user.RefreshToken != presented {
		logger.Log.Errorw("presented refresh token does not match stored token", "userID", userID)
		return nil, ErrUnauthorized
	}

	access, err := svc.tokens.GenerateAccess(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "err", err)
		return nil, err
	}

	refresh, err := svc.tokens.GenerateRefresh(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "err", err)
		return nil, err
	}

	// The write is conditioned on the stored value still matching the
	// presented token, so two concurrent rotations of the same token
	// cannot both succeed.
	if err := svc.writer.CompareAndSetRefreshToken(ctx, userID, refresh, presented); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Log.Errorw("refresh token rotated concurrently", "userID", userID)
			return nil, ErrUnauthorized
		}
		logger.Log.Errorw("failed to rotate refresh token", "userID", userID, "err", err)
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout revokes the user's active session by clearing the stored refresh
// token.
func (svc *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := svc.writer.SetRefreshToken(ctx, userID, nil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to clear refresh token", "userID", userID, "err", err)
		return err
	}
	return nil
}

// ChangePassword verifies the old password and stores a hash of the new one.
func (svc *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		logger.Log.Errorw("old password mismatch", "userID", userID)
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to update password", "userID", userID, "err", err)
		return err
	}
	return nil
}
