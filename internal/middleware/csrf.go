package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CSRFField is the form field carrying the token
	CSRFField = "csrf_token"

	sessionCSRFKey = "csrf_token"
)

// CSRFToken returns the session's CSRF token, creating one if needed.
// The caller saves the session.
func CSRFToken(c *gin.Context) string {
	session := sessions.Default(c)
	if token, ok := session.Get(sessionCSRFKey).(string); ok && token != "" {
		return token
	}
	token := uuid.NewString()
	session.Set(sessionCSRFKey, token)
	return token
}

// CSRF rejects unsafe requests whose form token does not match the session
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		expected, _ := sessions.Default(c).Get(sessionCSRFKey).(string)
		got := c.PostForm(CSRFField)
		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
			c.String(http.StatusBadRequest, "The CSRF token is missing or invalid.")
			c.Abort()
			return
		}
		c.Next()
	}
}
