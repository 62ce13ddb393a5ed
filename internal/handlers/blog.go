package handlers

import (
	"net/http"

	"blogicum/internal/forms"
	"blogicum/internal/middleware"
	"blogicum/internal/services"
	"blogicum/internal/utils"

	"github.com/gin-gonic/gin"
)

// BlogHandler serves the public read side: the front page, post details and
// category listings.
type BlogHandler struct {
	posts      *services.PostService
	comments   *services.CommentService
	categories *services.CategoryService
}

func NewBlogHandler(posts *services.PostService, comments *services.CommentService, categories *services.CategoryService) *BlogHandler {
	return &BlogHandler{posts: posts, comments: comments, categories: categories}
}

func (h *BlogHandler) Index(c *gin.Context) {
	page, err := h.posts.ListPublished(c.Request.Context(), c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}
	Render(c, http.StatusOK, "blog/index.html", gin.H{"Page": page})
}

func (h *BlogHandler) PostDetail(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		NotFound(c)
		return
	}

	ctx := c.Request.Context()
	post, err := h.posts.GetVisible(ctx, id, middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	comments, err := h.comments.ListForPost(ctx, post.ID)
	if err != nil {
		fail(c, err)
		return
	}

	Render(c, http.StatusOK, "blog/detail.html", gin.H{
		"Post":     post,
		"Comments": comments,
		"Form":     forms.CommentForm{},
		"Errors":   forms.Errors(nil),
	})
}

func (h *BlogHandler) CategoryPosts(c *gin.Context) {
	ctx := c.Request.Context()
	category, err := h.categories.GetPublished(ctx, c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	page, err := h.posts.ListByCategory(ctx, category, c.Query("page"))
	if err != nil {
		fail(c, err)
		return
	}
	Render(c, http.StatusOK, "blog/category.html", gin.H{
		"Category": category,
		"Page":     page,
	})
}

// About and Rules are static pages.
func About(c *gin.Context) {
	Render(c, http.StatusOK, "pages/about.html", nil)
}

func Rules(c *gin.Context) {
	Render(c, http.StatusOK, "pages/rules.html", nil)
}
