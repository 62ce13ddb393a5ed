package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"blogicum/internal/models"
	"blogicum/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	CheckUserKey = "user"
	SessionKey   = "user_id"
	LoginPath    = "/auth/login/"
)

// AuthRequired ensures a user is logged in. Anonymous visitors are sent to the
// login page with the requested path in "next".
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			target := LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser retrieves the user from the session and sets it on the context.
// A session pointing at a deleted account is cleared.
func LoadUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(SessionKey)

		if userID != nil {
			user, err := users.GetByID(c.Request.Context(), userID)
			switch {
			case err == nil:
				c.Set(CheckUserKey, user)
			case errors.Is(err, services.ErrNotFound):
				session.Delete(SessionKey)
				if err := session.Save(); err != nil {
					log.Warn().Err(err).Msg("clear stale session")
				}
			default:
				log.Error().Err(err).Interface("user_id", userID).Msg("load session user")
			}
		}
		c.Next()
	}
}

// CurrentUser returns the logged in user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CheckUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// Login stores the user id in the session.
func Login(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(SessionKey, user.ID)
	return session.Save()
}

// Logout drops the session contents and forgets the user for the rest of
// the request.
func Logout(c *gin.Context) error {
	c.Set(CheckUserKey, nil)
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}
