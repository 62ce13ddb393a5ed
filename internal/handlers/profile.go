package handlers

import (
	"errors"
	"net/http"

	"blogicum/internal/forms"
	"blogicum/internal/middleware"
	"blogicum/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	users *services.UserService
	posts *services.PostService
}

func NewProfileHandler(users *services.UserService, posts *services.PostService) *ProfileHandler {
	return &ProfileHandler{users: users, posts: posts}
}

// Profile lists a user's posts. Owners also see their drafts and scheduled
// posts.
func (h *ProfileHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	profile, err := h.users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	viewer := middleware.CurrentUser(c)
	page, err := h.posts.ListByAuthor(ctx, profile, viewer, c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}
	Render(c, http.StatusOK, "blog/profile.html", gin.H{
		"Profile": profile,
		"Page":    page,
		"IsOwner": viewer != nil && viewer.ID == profile.ID,
	})
}

func (h *ProfileHandler) ShowEdit(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if c.Param("username") != user.Username {
		redirect(c, ProfilePath(user.Username)+"edit/")
		return
	}
	Render(c, http.StatusOK, "blog/user.html", gin.H{
		"Form":   forms.ProfileFormFrom(user),
		"Errors": forms.Errors(nil),
	})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if c.Param("username") != user.Username {
		redirect(c, ProfilePath(user.Username)+"edit/")
		return
	}

	var form forms.ProfileForm
	if errs := forms.Bind(c, &form); errs != nil {
		Render(c, http.StatusBadRequest, "blog/user.html", gin.H{"Form": form, "Errors": errs})
		return
	}

	if err := h.users.UpdateProfile(c.Request.Context(), user, form); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			Render(c, http.StatusBadRequest, "blog/user.html", gin.H{
				"Form":   form,
				"Errors": forms.Errors{"Username": "A user with that username already exists."},
			})
			return
		}
		fail(c, err)
		return
	}
	redirect(c, ProfilePath(user.Username))
}
