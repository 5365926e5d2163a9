package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys for the web surface's signed cookie.
const (
	SessionUsernameKey  = "username"
	SessionTimestampKey = "timestamp"
)

// RequireSession redirects unauthenticated browsers to the login form
// instead of letting handlers touch session state that may not exist.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username, ok := session.Get(SessionUsernameKey).(string)
		if !ok || username == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ContextUsernameKey, username)
		c.Next()
	}
}
