package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"blogicum/internal/middleware"
	"blogicum/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Render helper to inject common variables like the current user and the
// CSRF form field.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CSRFField"] = middleware.CSRFField(c)
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusFound, path)
}

func postPath(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

// ProfilePath is the public profile page of username.
func ProfilePath(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

// fail renders the page matching err: 404 for records that are missing or
// hidden from the viewer, 500 for anything else.
func fail(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		NotFound(c)
		return
	}
	ServerError(c, err)
}

// NotFound renders the 404 page. It doubles as the engine's NoRoute handler.
func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "pages/404.html", nil)
}

// ServerError logs err and renders the 500 page.
func ServerError(c *gin.Context, err error) {
	log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("request failed")
	_ = c.Error(err)
	Render(c, http.StatusInternalServerError, "pages/500.html", nil)
}

// CSRFFailure renders the 403 page for requests without a valid token.
func CSRFFailure(c *gin.Context) {
	Render(c, http.StatusForbidden, "pages/403csrf.html", nil)
}

// Recover turns a panic into the 500 page.
func Recover() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		Render(c, http.StatusInternalServerError, "pages/500.html", nil)
		c.Abort()
	})
}
