package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const sessionKey contextKey = "cart_session"

// SessionCookieName identifies the shopper's cart across requests, the same
// role localStorage scoping plays in a browser.
const SessionCookieName = "cart_session"

// SessionMiddleware assigns each shopper an opaque session key via cookie.
// The key scopes the cart blob in the store; a returning shopper gets their
// cart back, a new one starts empty.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var key string
		if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
			key = c.Value
		} else {
			key = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    key,
				Path:     "/",
				MaxAge:   int((90 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) string {
	if key, ok := ctx.Value(sessionKey).(string); ok {
		return key
	}
	return ""
}
