package services

import (
	"context"

	"blogicum/internal/models"

	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// GetPublished loads a category by slug. Unpublished categories are not found.
func (s *CategoryService) GetPublished(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&category).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

// Choices lists the categories and locations offered on the post form.
func (s *CategoryService) Choices(ctx context.Context) ([]models.Category, []models.Location, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("title ASC").Find(&categories).Error; err != nil {
		return nil, nil, err
	}
	var locations []models.Location
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&locations).Error; err != nil {
		return nil, nil, err
	}
	return categories, locations, nil
}

// Create adds a category; used by the management CLI.
func (s *CategoryService) Create(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

// CreateLocation adds a location; used by the management CLI.
func (s *CategoryService) CreateLocation(ctx context.Context, location *models.Location) error {
	return s.db.WithContext(ctx).Create(location).Error
}
