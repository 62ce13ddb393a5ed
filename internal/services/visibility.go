package services

import (
	"time"

	"blogicum/internal/models"

	"gorm.io/gorm"
)

// Visible restricts a posts query to what anonymous readers may see at now.
// It is the SQL twin of models.Post.IsPubliclyVisible.
func Visible(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.
			Joins("JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now).
			Where("categories.is_published = ?", true)
	}
}

// newestFirst is the single ordering used by every listing. The id breaks
// ties so that consecutive pages never overlap.
func newestFirst(tx *gorm.DB) *gorm.DB {
	return tx.Order("posts.pub_date DESC").Order("posts.id DESC")
}

// Authored is implemented by every record that belongs to a user.
type Authored interface {
	AuthorKey() uint
}

// CanModify is the one authorization rule for edit and delete: only the
// author may touch a record.
func CanModify(actor *models.User, resource Authored) bool {
	return actor != nil && resource != nil && actor.ID != 0 && actor.ID == resource.AuthorKey()
}

// CanView reports whether viewer may open the post detail page.
func CanView(viewer *models.User, post *models.Post, now time.Time) bool {
	return CanModify(viewer, post) || post.IsPubliclyVisible(now)
}
