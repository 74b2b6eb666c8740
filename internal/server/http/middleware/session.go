package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDContextKey is a gin context key for the authenticated user identifier.
	UserIDContextKey  = "userID"
	sessionCookieName = "gobank_session"
)

// SessionParser resolves a session token back to a user identifier.
type SessionParser interface {
	ParseSession(token string) (int64, error)
}

// AuthRequired resolves the browser session before a protected handler runs.
// Anonymous or stale sessions are redirected to the login page.
func AuthRequired(parser SessionParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		userID, err := parser.ParseSession(token)
		if err != nil {
			ClearSessionCookie(c)
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// SetSessionCookie writes the session token cookie to the response. The
// cookie lives for the browser session; the token itself carries the expiry.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(sessionCookieName, token, 0, "/", "", false, true)
}

// ClearSessionCookie terminates the browser session. The cookie is expired
// in the same response that carries the redirect, so the session is gone
// before the browser follows it.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}
