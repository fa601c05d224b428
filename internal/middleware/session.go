package middleware

import (
	"encoding/gob"
	"net/http"
	"net/url"

	"bill_tracker/internal/model"
	"bill_tracker/internal/service"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CurrentUserKey = "currentUser"

	sessionUserIDKey = "user_id"
)

// Flash categories, matching the page styles
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashDanger  = "danger"
)

// Flash is a one-time notice shown on the next rendered page
type Flash struct {
	Category string
	Message  string
}

func init() {
	// The cookie store gob-encodes session values.
	gob.Register(Flash{})
}

// AddFlash queues a flash message. The caller saves the session.
func AddFlash(c *gin.Context, category, message string) {
	sessions.Default(c).AddFlash(Flash{Category: category, Message: message})
}

// Flashes pops the queued flash messages. The caller saves the session.
func Flashes(c *gin.Context) []Flash {
	var out []Flash
	for _, f := range sessions.Default(c).Flashes() {
		if flash, ok := f.(Flash); ok {
			out = append(out, flash)
		}
	}
	return out
}

// Login stores the user in the session
func Login(c *gin.Context, user *model.User) error {
	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	return session.Save()
}

// Logout clears the session, keeping only the given flash
func Logout(c *gin.Context, flash Flash) error {
	session := sessions.Default(c)
	session.Clear()
	session.AddFlash(flash)
	return session.Save()
}

// CurrentUser returns the logged-in user of the request, if any
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// LoadUser resolves the session's user id into the request context
func LoadUser(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(sessionUserIDKey).(int)
		if !ok {
			c.Next()
			return
		}

		user, err := auth.GetUser(c.Request.Context(), userID)
		if err != nil {
			log.Error("failed to load session user", "user_id", userID, "error", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if user == nil {
			// Stale session pointing at a user that no longer exists.
			session.Delete(sessionUserIDKey)
			if err := session.Save(); err != nil {
				log.Error("failed to save session", "error", err)
			}
			c.Next()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// RequireLogin redirects anonymous visitors to the login page, remembering
// where they were going.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Next()
			return
		}

		AddFlash(c, FlashInfo, "Please log in to access this page.")
		if err := sessions.Default(c).Save(); err != nil {
			log.Error("failed to save session", "error", err)
		}
		c.Redirect(http.StatusFound, "/?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}
