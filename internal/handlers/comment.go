package handlers

import (
	"net/http"

	"blogicum/internal/forms"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/services"
	"blogicum/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	posts    *services.PostService
	comments *services.CommentService
}

func NewCommentHandler(posts *services.PostService, comments *services.CommentService) *CommentHandler {
	return &CommentHandler{posts: posts, comments: comments}
}

func (h *CommentHandler) ShowCreate(c *gin.Context) {
	post, ok := h.visiblePost(c)
	if !ok {
		return
	}
	Render(c, http.StatusOK, "blog/comment.html", gin.H{
		"Post":   post,
		"Form":   forms.CommentForm{},
		"Errors": forms.Errors(nil),
	})
}

// Create adds a comment to the post in the URL. The author is always the
// session user.
func (h *CommentHandler) Create(c *gin.Context) {
	post, ok := h.visiblePost(c)
	if !ok {
		return
	}

	var form forms.CommentForm
	if errs := forms.Bind(c, &form); errs != nil {
		Render(c, http.StatusBadRequest, "blog/comment.html", gin.H{
			"Post":   post,
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	if _, err := h.comments.Create(c.Request.Context(), post, middleware.CurrentUser(c), form); err != nil {
		fail(c, err)
		return
	}
	redirect(c, postPath(post.ID))
}

func (h *CommentHandler) ShowEdit(c *gin.Context) {
	post, comment, ok := h.ownComment(c)
	if !ok {
		return
	}
	Render(c, http.StatusOK, "blog/comment.html", gin.H{
		"Post":    post,
		"Comment": comment,
		"Form":    forms.CommentForm{Text: comment.Text},
		"Errors":  forms.Errors(nil),
	})
}

func (h *CommentHandler) Update(c *gin.Context) {
	post, comment, ok := h.ownComment(c)
	if !ok {
		return
	}

	var form forms.CommentForm
	if errs := forms.Bind(c, &form); errs != nil {
		Render(c, http.StatusBadRequest, "blog/comment.html", gin.H{
			"Post":    post,
			"Comment": comment,
			"Form":    form,
			"Errors":  errs,
		})
		return
	}

	if err := h.comments.Update(c.Request.Context(), comment, form); err != nil {
		fail(c, err)
		return
	}
	redirect(c, postPath(post.ID))
}

func (h *CommentHandler) ShowDelete(c *gin.Context) {
	post, comment, ok := h.ownComment(c)
	if !ok {
		return
	}
	Render(c, http.StatusOK, "blog/comment.html", gin.H{
		"Post":     post,
		"Comment":  comment,
		"IsDelete": true,
	})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	post, comment, ok := h.ownComment(c)
	if !ok {
		return
	}
	if err := h.comments.Delete(c.Request.Context(), comment); err != nil {
		fail(c, err)
		return
	}
	redirect(c, postPath(post.ID))
}

// visiblePost loads the post a new comment is attached to. Posts the user
// cannot read are reported as missing.
func (h *CommentHandler) visiblePost(c *gin.Context) (*models.Post, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		NotFound(c)
		return nil, false
	}
	post, err := h.posts.GetVisible(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return post, true
}

// ownComment loads the post and comment named in the route. Only the
// comment's author gets through; everyone else lands on the post.
func (h *CommentHandler) ownComment(c *gin.Context) (*models.Post, *models.Comment, bool) {
	postID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		NotFound(c)
		return nil, nil, false
	}
	commentID, ok := utils.ParseID(c.Param("cid"))
	if !ok {
		NotFound(c)
		return nil, nil, false
	}

	ctx := c.Request.Context()
	post, err := h.posts.Get(ctx, postID)
	if err != nil {
		fail(c, err)
		return nil, nil, false
	}
	comment, err := h.comments.Get(ctx, post.ID, commentID)
	if err != nil {
		fail(c, err)
		return nil, nil, false
	}
	if !services.CanModify(middleware.CurrentUser(c), comment) {
		redirect(c, postPath(post.ID))
		return nil, nil, false
	}
	return post, comment, true
}
