package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"task-manager/internal/cache"
	"task-manager/internal/models"
	"task-manager/internal/policy"
)

const catalogListKey = "list"

// CatalogService owns categories and tags. Listings are hot (every task
// form loads both), so they are served through a TTL cache invalidated on
// mutation.
type CatalogService struct {
	db         *gorm.DB
	categories *cache.TTL[string, []models.Category]
	tags       *cache.TTL[string, []models.Tag]
}

func NewCatalogService(db *gorm.DB, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		db:         db,
		categories: cache.New[string, []models.Category](cacheTTL),
		tags:       cache.New[string, []models.Tag](cacheTTL),
	}
}

// Categories returns all categories ordered by id.
func (s *CatalogService) Categories() ([]models.Category, error) {
	if cached, ok := s.categories.Get(catalogListKey); ok {
		return cached, nil
	}
	list := []models.Category{}
	if err := s.db.Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	s.categories.Set(catalogListKey, list)
	return list, nil
}

// CreateCategory adds a category. Manager-only.
func (s *CatalogService) CreateCategory(p policy.Principal, name string) (*models.Category, error) {
	if !policy.CanManageCatalog(p) {
		return nil, ErrForbidden
	}
	if err := validateCatalogName(name, "Category"); err != nil {
		return nil, err
	}

	category := models.Category{Name: strings.TrimSpace(name)}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	s.categories.Invalidate(catalogListKey)
	return &category, nil
}

// DeleteCategory removes a category unless tasks still reference it.
func (s *CatalogService) DeleteCategory(p policy.Principal, id uint) error {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !policy.CanManageCatalog(p) {
		return ErrForbidden
	}

	var inUse int64
	if err := s.db.Model(&models.Task{}).Where("category_id = ?", id).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return invalid("Category is still referenced by %d task(s).", inUse)
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return err
	}
	s.categories.Invalidate(catalogListKey)
	return nil
}

// Tags returns all tags ordered by id.
func (s *CatalogService) Tags() ([]models.Tag, error) {
	if cached, ok := s.tags.Get(catalogListKey); ok {
		return cached, nil
	}
	list := []models.Tag{}
	if err := s.db.Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	s.tags.Set(catalogListKey, list)
	return list, nil
}

// CreateTag adds a tag. Manager-only.
func (s *CatalogService) CreateTag(p policy.Principal, name string) (*models.Tag, error) {
	if !policy.CanManageCatalog(p) {
		return nil, ErrForbidden
	}
	if err := validateCatalogName(name, "Tag"); err != nil {
		return nil, err
	}

	tag := models.Tag{Name: strings.TrimSpace(name)}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	s.tags.Invalidate(catalogListKey)
	return &tag, nil
}

// DeleteTag removes a tag together with its join rows.
func (s *CatalogService) DeleteTag(p policy.Principal, id uint) error {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !policy.CanManageCatalog(p) {
		return ErrForbidden
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		return err
	}
	s.tags.Invalidate(catalogListKey)
	return nil
}

func validateCatalogName(name, kind string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invalid("%s name is required.", kind)
	}
	if utf8.RuneCountInString(trimmed) > 50 {
		return invalid("%s name must be at most 50 characters.", kind)
	}
	return nil
}
