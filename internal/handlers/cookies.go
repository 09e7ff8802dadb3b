package handlers

import (
	"net/http"
	"time"

	"github.com/avikde21/videotube-backend/internal/jwt"
	"github.com/avikde21/videotube-backend/internal/services"
)

// setAuthCookies writes the token pair as httpOnly, secure cookies.
func setAuthCookies(w http.ResponseWriter, pair *services.TokenPair, accessExp, refreshExp time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     jwt.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(accessExp.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     jwt.RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(refreshExp.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookies removes both token cookies, not merely expires them.
func clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{jwt.AccessTokenCookie, jwt.RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
