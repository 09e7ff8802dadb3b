package services_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/avikde21/videotube-backend/internal/models"
	"github.com/avikde21/videotube-backend/internal/repositories"
	"github.com/avikde21/videotube-backend/internal/services"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	mockUploader := services.NewMockMediaUploader(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockUploader, nil)

	userID := uuid.New()
	cover := "/tmp/cover.png"

	tests := []struct {
		name           string
		username       string
		email          string
		coverImagePath *string
		existingUser   *models.UserDB
		readerErr      error
		uploadErr      error
		writerErr      error
		wantErr        error
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@example.com",
		},
		{
			name:           "successful registration with cover image",
			username:       "bob",
			email:          "bob@example.com",
			coverImagePath: &cover,
		},
		{
			name:         "username already taken",
			username:     "carol",
			email:        "carol@example.com",
			existingUser: &models.UserDB{UserID: uuid.New()},
			wantErr:      services.ErrUserAlreadyExists,
		},
		{
			name:      "reader error",
			username:  "dave",
			email:     "dave@example.com",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "avatar upload error",
			username:  "erin",
			email:     "erin@example.com",
			uploadErr: errors.New("upload failed"),
			wantErr:   errors.New("upload failed"),
		},
		{
			name:      "concurrent duplicate collapses to conflict",
			username:  "frank",
			email:     "frank@example.com",
			writerErr: repositories.ErrUniqueViolation,
			wantErr:   services.ErrUserAlreadyExists,
		},
		{
			name:      "writer error",
			username:  "grace",
			email:     "grace@example.com",
			writerErr: errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByUsernameOrEmail(gomock.Any(), tt.username).
				Return(tt.existingUser, tt.readerErr)

			if tt.existingUser == nil && tt.readerErr == nil {
				mockReader.EXPECT().
					GetByUsernameOrEmail(gomock.Any(), tt.email).
					Return(nil, nil)

				mockUploader.EXPECT().
					Upload(gomock.Any(), "/tmp/avatar.png").
					Return("https://media.example.com/avatar.png", tt.uploadErr)

				if tt.uploadErr == nil && tt.coverImagePath != nil {
					mockUploader.EXPECT().
						Upload(gomock.Any(), *tt.coverImagePath).
						Return("https://media.example.com/cover.png", nil)
				}

				if tt.uploadErr == nil {
					mockWriter.EXPECT().
						Save(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, user *models.UserDB) (*models.UserDB, error) {
							if tt.writerErr != nil {
								return nil, tt.writerErr
							}
							assert.Equal(t, tt.username, user.Username)
							assert.Equal(t, tt.email, user.Email)
							assert.NotEqual(t, "secret123", user.PasswordHash)
							assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
							saved := *user
							saved.UserID = userID
							return &saved, nil
						})
				}
			}

			got, err := svc.Register(context.Background(), tt.username, tt.email, "Full Name", "secret123", "/tmp/avatar.png", tt.coverImagePath)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, userID, got.UserID)
				assert.Equal(t, tt.username, got.Username)
			}
		})
	}
}

func TestAuthService_Register_NormalizesUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	mockUploader := services.NewMockMediaUploader(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockUploader, nil)

	mockReader.EXPECT().GetByUsernameOrEmail(gomock.Any(), "alice").Return(nil, nil)
	mockReader.EXPECT().GetByUsernameOrEmail(gomock.Any(), "alice@example.com").Return(nil, nil)
	mockUploader.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("https://media.example.com/a.png", nil)
	mockWriter.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.UserDB) (*models.UserDB, error) {
			assert.Equal(t, "alice", user.Username)
			saved := *user
			saved.UserID = uuid.New()
			return &saved, nil
		})

	got, err := svc.Register(context.Background(), "  Alice ", "alice@example.com", "Alice", "secret123", "/tmp/a.png", nil)
	assert.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	mockUploader := services.NewMockMediaUploader(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockUploader, nil)

	password := "secret"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userID := uuid.New()

	tests := []struct {
		name       string
		identifier string
		user       *models.UserDB
		readerErr  error
		tokenErr   error
		persistErr error
		loginPass  string
		wantErr    error
	}{
		{
			name:       "successful login by username",
			identifier: "alice",
			user:       &models.UserDB{UserID: userID, Username: "alice", PasswordHash: string(hashed)},
			loginPass:  password,
		},
		{
			name:       "unknown identifier reads as invalid credentials",
			identifier: "nobody",
			user:       nil,
			loginPass:  password,
			wantErr:    services.ErrInvalidCredentials,
		},
		{
			name:       "wrong password",
			identifier: "alice",
			user:       &models.UserDB{UserID: userID, Username: "alice", PasswordHash: string(hashed)},
			loginPass:  "wrongpass",
			wantErr:    services.ErrInvalidCredentials,
		},
		{
			name:       "reader error",
			identifier: "alice",
			readerErr:  errors.New("db error"),
			loginPass:  password,
			wantErr:    errors.New("db error"),
		},
		{
			name:       "token generation error",
			identifier: "alice",
			user:       &models.UserDB{UserID: userID, Username: "alice", PasswordHash: string(hashed)},
			tokenErr:   errors.New("sign error"),
			loginPass:  password,
			wantErr:    errors.New("sign error"),
		},
		{
			name:       "refresh persistence error",
			identifier: "alice",
			user:       &models.UserDB{UserID: userID, Username: "alice", PasswordHash: string(hashed)},
			persistErr: errors.New("db error"),
			loginPass:  password,
			wantErr:    errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByUsernameOrEmail(gomock.Any(), tt.identifier).
				Return(tt.user, tt.readerErr)

			if tt.user != nil && tt.readerErr == nil && tt.loginPass == password {
				mockTokens.EXPECT().
					GenerateAccess(gomock.Any(), tt.user.UserID).
					Return("access123", tt.tokenErr)
				if tt.tokenErr == nil {
					mockTokens.EXPECT().
						GenerateRefresh(gomock.Any(), tt.user.UserID).
						Return("refresh123", nil)
					mockWriter.EXPECT().
						SetRefreshToken(gomock.Any(), tt.user.UserID, gomock.Any()).
						Return(tt.persistErr)
				}
			}

			user, pair, err := svc.Login(context.Background(), tt.identifier, tt.loginPass)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
				assert.Nil(t, pair)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, userID, user.UserID)
				assert.Equal(t, "access123", pair.AccessToken)
				assert.Equal(t, "refresh123", pair.RefreshToken)
			}
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	mockUploader := services.NewMockMediaUploader(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockUploader, nil)

	userID := uuid.New()
	stored := "stored-refresh"
	other := "other-refresh"

	tests := []struct {
		name      string
		presented string
		verifyErr error
		user      *models.UserDB
		readerErr error
		casErr    error
		wantErr   error
	}{
		{
			name:      "successful rotation",
			presented: stored,
			user:      &models.UserDB{UserID: userID, RefreshToken: &stored},
		},
		{
			name:      "invalid signature",
			presented: "garbage",
			verifyErr: errors.New("signature is invalid"),
			wantErr:   services.ErrUnauthorized,
		},
		{
			name:      "superseded token",
			presented: other,
			user:      &models.UserDB{UserID: userID, RefreshToken: &stored},
			wantErr:   services.ErrUnauthorized,
		},
		{
			name:      "revoked session",
			presented: stored,
			user:      &models.UserDB{UserID: userID, RefreshToken: nil},
			wantErr:   services.ErrUnauthorized,
		},
		{
			name:      "user deleted",
			presented: stored,
			user:      nil,
			wantErr:   services.ErrUnauthorized,
		},
		{
			name:      "concurrent rotation loses",
			presented: stored,
			user:      &models.UserDB{UserID: userID, RefreshToken: &stored},
			casErr:    sql.ErrNoRows,
			wantErr:   services.ErrUnauthorized,
		},
		{
			name:      "reader error",
			presented: stored,
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokens.EXPECT().
				GetUserIDFromRefresh(gomock.Any(), tt.presented).
				Return(userID, tt.verifyErr)

			if tt.verifyErr == nil {
				mockReader.EXPECT().
					GetByID(gomock.Any(), userID).
					Return(tt.user, tt.readerErr)
			}

			matches := tt.user != nil && tt.user.RefreshToken != nil && *tt.user.RefreshToken == tt.presented
			if tt.verifyErr == nil && tt.readerErr == nil && matches {
				mockTokens.EXPECT().
					GenerateAccess(gomock.Any(), userID).
					Return("access456", nil)
				mockTokens.EXPECT().
					GenerateRefresh(gomock.Any(), userID).
					Return("refresh456", nil)
				mockWriter.EXPECT().
					CompareAndSetRefreshToken(gomock.Any(), userID, "refresh456", tt.presented).
					Return(tt.casErr)
			}

			pair, err := svc.Refresh(context.Background(), tt.presented)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, pair)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "access456", pair.AccessToken)
				assert.Equal(t, "refresh456", pair.RefreshToken)
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	mockUploader := services.NewMockMediaUploader(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockUploader, nil)

	userID := uuid.New()

	tests := []struct {
		name      string
		writerErr error
		wantErr   error
	}{
		{name: "successful logout"},
		{name: "unknown user", writerErr: sql.ErrNoRows, wantErr: services.ErrUserNotFound},
		{name: "writer error", writerErr: errors.New("db error"), wantErr: errors.New("db error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWriter.EXPECT().
				SetRefreshToken(gomock.Any(), userID, (*string)(nil)).
				Return(tt.writerErr)

			err := svc.Logout(context.Background(), userID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockTokens := services.NewMockTokenIssuer(ctrl)
	mockUploader := services.NewMockMediaUploader(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockTokens, mockUploader, nil)

	oldPassword := "oldsecret"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(oldPassword), bcrypt.DefaultCost)
	userID := uuid.New()

	tests := []struct {
		name      string
		user      *models.UserDB
		readerErr error
		oldPass   string
		writerErr error
		wantErr   error
	}{
		{
			name:    "successful change",
			user:    &models.UserDB{UserID: userID, PasswordHash: string(hashed)},
			oldPass: oldPassword,
		},
		{
			name:    "wrong old password",
			user:    &models.UserDB{UserID: userID, PasswordHash: string(hashed)},
			oldPass: "wrong",
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:    "user not found",
			user:    nil,
			oldPass: oldPassword,
			wantErr: services.ErrUserNotFound,
		},
		{
			name:      "writer error",
			user:      &models.UserDB{UserID: userID, PasswordHash: string(hashed)},
			oldPass:   oldPassword,
			writerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByID(gomock.Any(), userID).
				Return(tt.user, tt.readerErr)

			if tt.user != nil && tt.oldPass == oldPassword {
				mockWriter.EXPECT().
					UpdatePassword(gomock.Any(), userID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, newHash string) error {
						if tt.writerErr != nil {
							return tt.writerErr
						}
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newsecret")))
						return nil
					})
			}

			err := svc.ChangePassword(context.Background(), userID, tt.oldPass, "newsecret")
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
