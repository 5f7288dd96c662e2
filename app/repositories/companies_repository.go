package repositories

import (
	"context"

	"github.com/bekmuradov/uzmarket/app/models"
	"gorm.io/gorm"
)

type CompanyRepositoryImpl interface {
	Create(ctx context.Context, company *models.Company) error
	GetAll(ctx context.Context) ([]models.Company, error)
	GetBySlug(ctx context.Context, slug string) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id string) error
	CountCategories(ctx context.Context, companyID string) (int64, error)
	CountProducts(ctx context.Context, companyID string) (int64, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepositoryImpl {
	return &companyRepository{db}
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) GetAll(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("ordinal, name").
		Find(&companies).Error
	return companies, err
}

func (r *companyRepository) GetBySlug(ctx context.Context, slug string) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).First(&company, "slug = ? AND is_active = ?", slug, true).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Update(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Company{}, "id = ?", id).Error
}

func (r *companyRepository) CountCategories(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("company_id = ? AND parent_id IS NULL AND is_active = ?", companyID, true).
		Count(&count).Error
	return count, err
}

func (r *companyRepository) CountProducts(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.company_id = ? AND products.is_active = ?", companyID, true).
		Count(&count).Error
	return count, err
}
