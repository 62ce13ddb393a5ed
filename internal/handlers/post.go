package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"blogicum/internal/forms"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/services"
	"blogicum/internal/utils"

	"github.com/gin-gonic/gin"
)

// PostHandler creates, edits and deletes posts. Every route sits behind
// middleware.AuthRequired.
type PostHandler struct {
	posts      *services.PostService
	categories *services.CategoryService
}

func NewPostHandler(posts *services.PostService, categories *services.CategoryService) *PostHandler {
	return &PostHandler{posts: posts, categories: categories}
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderForm(c, http.StatusOK, gin.H{
		"Form":   forms.NewPostForm(h.posts.Now()),
		"Errors": forms.Errors(nil),
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	var form forms.PostForm
	errs, err := h.bind(c, &form)
	if err != nil {
		fail(c, err)
		return
	}
	if errs != nil {
		h.renderForm(c, http.StatusBadRequest, gin.H{"Form": form, "Errors": errs})
		return
	}

	if _, err := h.posts.Create(ctx, user, form, imageUpload(c)); err != nil {
		if errors.Is(err, services.ErrInvalidImage) {
			h.renderForm(c, http.StatusBadRequest, gin.H{"Form": form, "Errors": imageErrors()})
			return
		}
		fail(c, err)
		return
	}
	redirect(c, ProfilePath(user.Username))
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	post, ok := h.ownPost(c)
	if !ok {
		return
	}
	h.renderForm(c, http.StatusOK, gin.H{
		"Form":   forms.PostFormFrom(post),
		"Errors": forms.Errors(nil),
		"Post":   post,
		"IsEdit": true,
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	post, ok := h.ownPost(c)
	if !ok {
		return
	}

	var form forms.PostForm
	errs, err := h.bind(c, &form)
	if err != nil {
		fail(c, err)
		return
	}
	if errs != nil {
		h.renderForm(c, http.StatusBadRequest, gin.H{"Form": form, "Errors": errs, "Post": post, "IsEdit": true})
		return
	}

	if err := h.posts.Update(c.Request.Context(), post, form, imageUpload(c)); err != nil {
		if errors.Is(err, services.ErrInvalidImage) {
			h.renderForm(c, http.StatusBadRequest, gin.H{"Form": form, "Errors": imageErrors(), "Post": post, "IsEdit": true})
			return
		}
		fail(c, err)
		return
	}
	redirect(c, postPath(post.ID))
}

func (h *PostHandler) ShowDelete(c *gin.Context) {
	post, ok := h.ownPost(c)
	if !ok {
		return
	}
	h.renderForm(c, http.StatusOK, gin.H{
		"Form":     forms.PostFormFrom(post),
		"Errors":   forms.Errors(nil),
		"Post":     post,
		"IsDelete": true,
	})
}

func (h *PostHandler) Delete(c *gin.Context) {
	post, ok := h.ownPost(c)
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), post); err != nil {
		fail(c, err)
		return
	}
	redirect(c, ProfilePath(middleware.CurrentUser(c).Username))
}

// ownPost loads the post named in the route. It renders 404 for unknown ids
// and sends anyone but the author back to the detail page.
func (h *PostHandler) ownPost(c *gin.Context) (*models.Post, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		NotFound(c)
		return nil, false
	}
	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	if !services.CanModify(middleware.CurrentUser(c), post) {
		redirect(c, postPath(post.ID))
		return nil, false
	}
	return post, true
}

// bind validates the form fields and the chosen category and location.
func (h *PostHandler) bind(c *gin.Context, form *forms.PostForm) (forms.Errors, error) {
	if errs := forms.Bind(c, form); errs != nil {
		return errs, nil
	}
	return h.posts.CheckReferences(c.Request.Context(), *form)
}

func (h *PostHandler) renderForm(c *gin.Context, code int, obj gin.H) {
	categories, locations, err := h.categories.Choices(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	obj["Categories"] = categories
	obj["Locations"] = locations
	Render(c, code, "blog/create.html", obj)
}

// imageUpload returns the optional "image" file of a multipart form.
func imageUpload(c *gin.Context) *multipart.FileHeader {
	header, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return header
}

func imageErrors() forms.Errors {
	return forms.Errors{"Image": "Upload a valid image. The file you uploaded was either not an image or a corrupted image."}
}
