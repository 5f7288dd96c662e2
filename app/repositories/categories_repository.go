package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/bekmuradov/uzmarket/app/models"
	"gorm.io/gorm"
)

type CategoryFilter struct {
	ParentOnly bool
	ParentID   string
	Search     string
}

type CategoryRepositoryImpl interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetAll(ctx context.Context, filter CategoryFilter) ([]models.Category, error)
	GetTopLevel(ctx context.Context) ([]models.Category, error)
	GetChildren(ctx context.Context, parentID string) ([]models.Category, error)
	GetPopular(ctx context.Context, limit int) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
	CountProducts(ctx context.Context, categoryID string, includeChildren bool) (int64, error)
	Breadcrumbs(ctx context.Context, category *models.Category) ([]models.Category, error)
	IsDescendantOf(ctx context.Context, candidateID, ancestorID string) (bool, error)
	TopLevelForCompany(ctx context.Context, companyID string) ([]models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryImpl {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Parent").
		Preload("Children", "is_active = ?", true).
		First(&category, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetAll(ctx context.Context, filter CategoryFilter) ([]models.Category, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)

	if filter.ParentOnly {
		query = query.Where("parent_id IS NULL")
	}
	if filter.ParentID != "" {
		query = query.Where("parent_id = ?", filter.ParentID)
	}
	if filter.Search != "" {
		keyword := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", keyword, keyword)
	}

	var categories []models.Category
	if err := query.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetTopLevel(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Preload("Children", "is_active = ?", true).
		Where("parent_id IS NULL AND is_active = ?", true).
		Order("ordinal, name").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) GetChildren(ctx context.Context, parentID string) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("parent_id = ? AND is_active = ?", parentID, true).
		Order("ordinal, name").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) GetPopular(ctx context.Context, limit int) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.*, COUNT(products.id) AS total_products").
		Joins("JOIN products ON products.category_id = categories.id AND products.is_active = ? AND products.deleted_at IS NULL", true).
		Where("categories.is_active = ?", true).
		Group("categories.id").
		Order("total_products DESC").
		Limit(limit).
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) CountProducts(ctx context.Context, categoryID string, includeChildren bool) (int64, error) {
	ids := []string{categoryID}
	if includeChildren {
		children, err := r.GetChildren(ctx, categoryID)
		if err != nil {
			return 0, err
		}
		for _, child := range children {
			ids = append(ids, child.ID)
		}
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_id IN ? AND is_active = ?", ids, true).
		Count(&count).Error
	return count, err
}

// Breadcrumbs walks the parent chain and returns it root-first, ending with
// the category itself.
func (r *categoryRepository) Breadcrumbs(ctx context.Context, category *models.Category) ([]models.Category, error) {
	trail := []models.Category{*category}
	current := category
	for current.ParentID != nil {
		var parent models.Category
		err := r.db.WithContext(ctx).First(&parent, "id = ?", *current.ParentID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				break
			}
			return nil, fmt.Errorf("failed to resolve breadcrumb parent %s: %w", *current.ParentID, err)
		}
		trail = append([]models.Category{parent}, trail...)
		current = &parent
	}
	return trail, nil
}

// IsDescendantOf reports whether candidateID sits below ancestorID in the
// tree. Used to reject circular reparenting.
func (r *categoryRepository) IsDescendantOf(ctx context.Context, candidateID, ancestorID string) (bool, error) {
	currentID := candidateID
	for currentID != "" {
		if currentID == ancestorID {
			return true, nil
		}
		var category models.Category
		err := r.db.WithContext(ctx).Select("id", "parent_id").First(&category, "id = ?", currentID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return false, nil
			}
			return false, err
		}
		if category.ParentID == nil {
			return false, nil
		}
		currentID = *category.ParentID
	}
	return false, nil
}

func (r *categoryRepository) TopLevelForCompany(ctx context.Context, companyID string) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND parent_id IS NULL AND is_active = ?", companyID, true).
		Order("ordinal, name").
		Find(&categories).Error
	return categories, err
}
