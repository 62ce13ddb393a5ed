package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"blogicum/internal/forms"
	"blogicum/internal/middleware"
	"blogicum/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "registration/registration_form.html", gin.H{
		"Form":   forms.SignupForm{},
		"Errors": forms.Errors(nil),
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form forms.SignupForm
	errs := forms.Bind(c, &form)
	if errs == nil {
		_, err := h.users.Register(c.Request.Context(), form.Username, form.Password1)
		switch {
		case err == nil:
			redirect(c, middleware.LoginPath)
			return
		case errors.Is(err, services.ErrUsernameTaken):
			errs = forms.Errors{"Username": "A user with that username already exists."}
		default:
			fail(c, err)
			return
		}
	}

	form.Password1, form.Password2 = "", ""
	Render(c, http.StatusBadRequest, "registration/registration_form.html", gin.H{
		"Form":   form,
		"Errors": errs,
	})
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "registration/login.html", gin.H{
		"Form":   forms.LoginForm{},
		"Errors": forms.Errors(nil),
		"Next":   c.Query("next"),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	next := c.PostForm("next")

	var form forms.LoginForm
	errs := forms.Bind(c, &form)
	if errs == nil {
		user, err := h.users.Authenticate(c.Request.Context(), form.Username, form.Password)
		switch {
		case err == nil:
			if err := middleware.Login(c, user); err != nil {
				fail(c, err)
				return
			}
			log.Info().Uint("user_id", user.ID).Msg("user logged in")
			redirect(c, safeNext(next))
			return
		case errors.Is(err, services.ErrInvalidCredentials):
			errs = forms.Errors{forms.NonField: "Please enter a correct username and password. Note that both fields may be case-sensitive."}
		default:
			fail(c, err)
			return
		}
	}

	form.Password = ""
	Render(c, http.StatusBadRequest, "registration/login.html", gin.H{
		"Form":   form,
		"Errors": errs,
		"Next":   next,
	})
}

// Logout answers both the form POST and a plain GET link.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.Logout(c); err != nil {
		fail(c, err)
		return
	}
	Render(c, http.StatusOK, "registration/logged_out.html", nil)
}

func (h *AuthHandler) ShowPasswordChange(c *gin.Context) {
	Render(c, http.StatusOK, "registration/password_change_form.html", gin.H{
		"Errors": forms.Errors(nil),
	})
}

func (h *AuthHandler) PasswordChange(c *gin.Context) {
	var form forms.PasswordChangeForm
	errs := forms.Bind(c, &form)
	if errs == nil {
		err := h.users.ChangePassword(c.Request.Context(), middleware.CurrentUser(c), form.OldPassword, form.NewPassword1)
		switch {
		case err == nil:
			redirect(c, "/auth/password_change/done/")
			return
		case errors.Is(err, services.ErrInvalidCredentials):
			errs = forms.Errors{"OldPassword": "Your old password was entered incorrectly. Please enter it again."}
		default:
			fail(c, err)
			return
		}
	}
	Render(c, http.StatusBadRequest, "registration/password_change_form.html", gin.H{"Errors": errs})
}

func (h *AuthHandler) PasswordChangeDone(c *gin.Context) {
	Render(c, http.StatusOK, "registration/password_change_done.html", nil)
}

// safeNext only follows redirects that stay on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	return next
}
