package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"blogicum/internal/forms"
	"blogicum/internal/models"
	"blogicum/internal/pagination"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PostService struct {
	db        *gorm.DB
	images    ImageStore
	perPage   int
	maxUpload int64

	// Now is the clock visibility is evaluated against.
	Now func() time.Time
}

func NewPostService(db *gorm.DB, images ImageStore, perPage int, maxUpload int64) *PostService {
	return &PostService{
		db:        db,
		images:    images,
		perPage:   perPage,
		maxUpload: maxUpload,
		Now:       time.Now,
	}
}

func (s *PostService) now() time.Time {
	return s.Now().UTC()
}

// ListPublished returns the public front page listing.
func (s *PostService) ListPublished(ctx context.Context, rawPage string) (pagination.Page[models.Post], error) {
	now := s.now()
	return s.paginate(ctx, rawPage, func(tx *gorm.DB) *gorm.DB {
		return tx.Scopes(Visible(now))
	})
}

// ListByCategory returns the visible posts of one category.
func (s *PostService) ListByCategory(ctx context.Context, category *models.Category, rawPage string) (pagination.Page[models.Post], error) {
	now := s.now()
	return s.paginate(ctx, rawPage, func(tx *gorm.DB) *gorm.DB {
		return tx.Scopes(Visible(now)).Where("posts.category_id = ?", category.ID)
	})
}

// ListByAuthor returns author's posts. The author sees everything they wrote,
// anyone else only what is publicly visible.
func (s *PostService) ListByAuthor(ctx context.Context, author, viewer *models.User, rawPage string) (pagination.Page[models.Post], error) {
	now := s.now()
	owner := viewer != nil && viewer.ID == author.ID
	return s.paginate(ctx, rawPage, func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("posts.author_id = ?", author.ID)
		if !owner {
			tx = tx.Scopes(Visible(now))
		}
		return tx
	})
}

// paginate counts and fetches one page of the posts selected by filter.
func (s *PostService) paginate(ctx context.Context, rawPage string, filter func(*gorm.DB) *gorm.DB) (pagination.Page[models.Post], error) {
	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Post{}).Scopes(filter)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return pagination.Page[models.Post]{}, fmt.Errorf("count posts: %w", err)
	}
	page := pagination.Resolve[models.Post](total, s.perPage, rawPage)

	var posts []models.Post
	err := base().
		Select("posts.*").
		Preload("Author").Preload("Category").Preload("Location").
		Scopes(newestFirst).
		Limit(page.PerPage).
		Offset(page.Offset()).
		Find(&posts).Error
	if err != nil {
		return page, fmt.Errorf("list posts: %w", err)
	}
	if err := annotateCommentCounts(ctx, s.db, posts); err != nil {
		return page, err
	}
	page.Items = posts
	return page, nil
}

// annotateCommentCounts fills CommentCount for posts with one grouped query.
func annotateCommentCounts(ctx context.Context, db *gorm.DB, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	err := db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error
	if err != nil {
		return fmt.Errorf("count comments: %w", err)
	}

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
	return nil
}

// Get loads a post regardless of its visibility.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").Preload("Category").Preload("Location").
		First(&post, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// GetVisible loads a post the viewer is allowed to read. Posts hidden from
// the viewer are reported as ErrNotFound.
func (s *PostService) GetVisible(ctx context.Context, id uint, viewer *models.User) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanView(viewer, post, s.now()) {
		return nil, ErrNotFound
	}
	return post, nil
}

// CheckReferences validates the category and location chosen in form.
func (s *PostService) CheckReferences(ctx context.Context, form forms.PostForm) (forms.Errors, error) {
	errs := forms.Errors{}
	if id := form.CategoryID(); id != nil {
		ok, err := s.exists(ctx, &models.Category{}, *id)
		if err != nil {
			return nil, err
		}
		if !ok {
			errs.Add("Category", "Select a valid choice.")
		}
	}
	if id := form.LocationID(); id != nil {
		ok, err := s.exists(ctx, &models.Location{}, *id)
		if err != nil {
			return nil, err
		}
		if !ok {
			errs.Add("Location", "Select a valid choice.")
		}
	}
	if !errs.Any() {
		return nil, nil
	}
	return errs, nil
}

func (s *PostService) exists(ctx context.Context, model any, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create stores a new post written by author. The optional image is saved
// first and removed again when the insert fails.
func (s *PostService) Create(ctx context.Context, author *models.User, form forms.PostForm, upload *multipart.FileHeader) (*models.Post, error) {
	image, err := s.saveUpload(ctx, upload)
	if err != nil {
		return nil, err
	}

	post := models.Post{
		Title:       strings.TrimSpace(form.Title),
		Text:        strings.TrimSpace(form.Text),
		Image:       image,
		PubDate:     form.PublishedAt(),
		IsPublished: form.IsPublished,
		AuthorID:    author.ID,
		CategoryID:  form.CategoryID(),
		LocationID:  form.LocationID(),
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		s.removeImage(ctx, image)
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

// Update rewrites the editable fields of post. The author never changes.
func (s *PostService) Update(ctx context.Context, post *models.Post, form forms.PostForm, upload *multipart.FileHeader) error {
	image, err := s.saveUpload(ctx, upload)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"title":        strings.TrimSpace(form.Title),
		"text":         strings.TrimSpace(form.Text),
		"pub_date":     form.PublishedAt(),
		"is_published": form.IsPublished,
		"category_id":  nullableID(form.CategoryID()),
		"location_id":  nullableID(form.LocationID()),
	}
	if image != "" {
		updates["image"] = image
	}

	err = s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(updates).Error
	if err != nil {
		s.removeImage(ctx, image)
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}
	if image != "" {
		s.removeImage(ctx, post.Image)
		post.Image = image
	}
	return nil
}

// Delete removes the post together with its comments.
func (s *PostService) Delete(ctx context.Context, post *models.Post) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, post.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete post %d: %w", post.ID, err)
	}
	s.removeImage(ctx, post.Image)
	return nil
}

func nullableID(id *uint) any {
	if id == nil {
		return nil
	}
	return *id
}

func (s *PostService) saveUpload(ctx context.Context, upload *multipart.FileHeader) (string, error) {
	if upload == nil {
		return "", nil
	}
	if s.images == nil {
		return "", errors.New("image uploads are not configured")
	}
	return StoreUpload(ctx, s.images, upload, s.maxUpload)
}

func (s *PostService) removeImage(ctx context.Context, key string) {
	if key == "" || s.images == nil {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("remove image")
	}
}
