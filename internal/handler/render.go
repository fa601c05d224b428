package handler

import (
	"net/http"
	"net/url"
	"strings"

	"bill_tracker/internal/middleware"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// render fills in the data shared by every page, saves the session (flashes
// were consumed and a CSRF token may have been issued) and writes the page.
func render(c *gin.Context, status int, page, title string, data gin.H) {
	writePage(c, status, page, title, data, true)
}

// renderError writes an error page. Queued flashes stay for the next page.
func renderError(c *gin.Context, status int, title, message string) {
	writePage(c, status, "error.html", title, gin.H{
		"Status":  title,
		"Message": message,
	}, false)
}

func writePage(c *gin.Context, status int, page, title string, data gin.H, withFlashes bool) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["User"] = middleware.CurrentUser(c)
	if withFlashes {
		data["Flashes"] = middleware.Flashes(c)
	}
	data["CSRFToken"] = middleware.CSRFToken(c)
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = fieldErrors{}
	}

	if err := sessions.Default(c).Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
	c.HTML(status, page, data)
}

// redirect saves pending flashes and sends a 302
func redirect(c *gin.Context, location string) {
	if err := sessions.Default(c).Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
	c.Redirect(http.StatusFound, location)
}

func serverError(c *gin.Context, err error) {
	log.Error("request failed", "path", c.Request.URL.Path, "error", err)
	_ = c.Error(err)
	renderError(c, http.StatusInternalServerError, "Internal Server Error", "Something went wrong. Please try again later.")
}

func notFound(c *gin.Context) {
	renderError(c, http.StatusNotFound, "Not Found", "The requested page does not exist.")
}

// safeNext returns next when it is a local absolute path, fallback otherwise.
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}
