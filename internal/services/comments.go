package services

import (
	"context"
	"fmt"
	"strings"

	"blogicum/internal/forms"
	"blogicum/internal/models"

	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// ListForPost returns the comments of a post, oldest first.
func (s *CommentService) ListForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments for post %d: %w", postID, err)
	}
	return comments, nil
}

// Get loads a comment that belongs to postID.
func (s *CommentService) Get(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		First(&comment, commentID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &comment, nil
}

// Create attaches a new comment to post on behalf of author. Both come from
// the request route and session, never from submitted fields.
func (s *CommentService) Create(ctx context.Context, post *models.Post, author *models.User, form forms.CommentForm) (*models.Comment, error) {
	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Text:     strings.TrimSpace(form.Text),
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

// Update changes only the text; the post and author stay fixed.
func (s *CommentService) Update(ctx context.Context, comment *models.Comment, form forms.CommentForm) error {
	text := strings.TrimSpace(form.Text)
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		Update("text", text).Error
	if err != nil {
		return fmt.Errorf("update comment %d: %w", comment.ID, err)
	}
	comment.Text = text
	return nil
}

func (s *CommentService) Delete(ctx context.Context, comment *models.Comment) error {
	if err := s.db.WithContext(ctx).Delete(&models.Comment{}, comment.ID).Error; err != nil {
		return fmt.Errorf("delete comment %d: %w", comment.ID, err)
	}
	return nil
}
