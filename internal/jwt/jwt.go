package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Cookie names used to transport tokens to browser clients.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// JWT issues and validates access and refresh tokens. The two kinds are
// signed with independent secrets and expirations so that a refresh token
// can never pass for an access token and vice versa.
type JWT struct {
	AccessSecret  string        // Secret key for signing access tokens
	RefreshSecret string        // Secret key for signing refresh tokens
	AccessExp     time.Duration // Access token expiration
	RefreshExp    time.Duration // Refresh token expiration
}

// New creates a new JWT instance
func New(accessSecret, refreshSecret string, accessExp, refreshExp time.Duration) *JWT {
	return &JWT{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		AccessExp:     accessExp,
		RefreshExp:    refreshExp,
	}
}

// GenerateAccess creates a short-lived access token for a given userID.
func (j *JWT) GenerateAccess(ctx context.Context, userID uuid.UUID) (string, error) {
	return generate(userID, j.AccessSecret, j.AccessExp)
}

// GenerateRefresh creates a long-lived refresh token for a given userID.
func (j *JWT) GenerateRefresh(ctx context.Context, userID uuid.UUID) (string, error) {
	return generate(userID, j.RefreshSecret, j.RefreshExp)
}

func generate(userID uuid.UUID, secret string, exp time.Duration) (string, error) {
	// jti makes every issued token unique even within the same second;
	// rotation relies on the new refresh token differing from the old one.
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(exp).Unix(),
		"iat":     time.Now().Unix(),
		"jti":     uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GetUserIDFromAccess parses an access token and returns the userID if valid.
func (j *JWT) GetUserIDFromAccess(ctx context.Context, tokenString string) (uuid.UUID, error) {
	return parse(tokenString, j.AccessSecret)
}

// GetUserIDFromRefresh parses a refresh token and returns the userID if valid.
func (j *JWT) GetUserIDFromRefresh(ctx context.Context, tokenString string) (uuid.UUID, error) {
	return parse(tokenString, j.RefreshSecret)
}

func parse(tokenString, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if userIDStr, ok := claims["user_id"].(string); ok {
			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				return uuid.Nil, errors.New("invalid user_id format")
			}
			return userID, nil
		}
		return uuid.Nil, errors.New("user_id not found in token")
	}
	return uuid.Nil, errors.New("invalid token")
}

// GetTokenFromRequest extracts the access token from the accessToken cookie
// or, failing that, from a bearer Authorization header. The cookie wins when
// both are present.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization cookie and header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

// GetRefreshTokenFromRequest extracts the refresh token from the
// refreshToken cookie. Callers that also accept the token in a request body
// fall back themselves when this fails.
func (j *JWT) GetRefreshTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	c, err := r.Cookie(RefreshTokenCookie)
	if err != nil || c.Value == "" {
		return "", errors.New("refresh token cookie missing")
	}
	return c.Value, nil
}
