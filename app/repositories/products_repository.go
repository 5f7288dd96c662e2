package repositories

import (
	"context"
	"strings"

	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductFilter struct {
	CategoryIDs []string
	CompanyID   string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStock     *bool
	Featured    *bool
	Brand       string
	Search      string
	Ordering    string
}

// Facets summarises the filter options available over the active catalog.
type Facets struct {
	MinPrice      decimal.Decimal
	MaxPrice      decimal.Decimal
	Brands        []string
	InStockCount  int64
	OutStockCount int64
	Total         int64
}

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetPaginated(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.Product, int64, error)
	GetFeatured(ctx context.Context, limit int) ([]models.Product, error)
	GetLatest(ctx context.Context, limit int) ([]models.Product, error)
	GetSimilar(ctx context.Context, product *models.Product, limit int) ([]models.Product, error)
	GetByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
	TitleSuggestions(ctx context.Context, keyword string, limit int) ([]string, error)
	BrandSuggestions(ctx context.Context, keyword string, limit int) ([]string, error)
	GetFacets(ctx context.Context) (*Facets, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) active(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx).Model(&models.Product{}).Where("products.is_active = ?", true)
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.active(ctx).
		Preload("Category").
		Preload("Seller").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_primary DESC, ordinal, created_at")
		}).
		Preload("Specifications", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordinal")
		}).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func applyFilter(query *gorm.DB, filter ProductFilter) *gorm.DB {
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.CompanyID != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.company_id = ?", filter.CompanyID)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.InStock != nil {
		query = query.Where("in_stock = ?", *filter.InStock)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Brand != "" {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(filter.Brand))
	}
	if filter.Search != "" {
		keyword := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(seller_code) LIKE ? OR LOWER(brand) LIKE ?",
			keyword, keyword, keyword, keyword,
		)
	}
	return query
}

var orderings = map[string]string{
	"price":       "price",
	"-price":      "price DESC",
	"title":       "title",
	"created_at":  "products.created_at",
	"-created_at": "products.created_at DESC",
}

func (p *productRepository) GetPaginated(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.Product, int64, error) {
	var total int64
	if err := applyFilter(p.active(ctx), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := orderings[filter.Ordering]
	if !ok {
		order = "products.created_at DESC"
	}

	var products []models.Product
	err := applyFilter(p.active(ctx), filter).
		Preload("Category").
		Preload("Seller").
		Preload("Images").
		Order(order).
		Limit(limit).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) GetFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.active(ctx).
		Preload("Category").
		Preload("Seller").
		Preload("Images").
		Where("is_featured = ?", true).
		Order("products.created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetLatest(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.active(ctx).
		Preload("Category").
		Preload("Seller").
		Preload("Images").
		Order("products.created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetSimilar(ctx context.Context, product *models.Product, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.active(ctx).
		Preload("Category").
		Preload("Seller").
		Preload("Images").
		Where("category_id = ? AND id <> ?", product.CategoryID, product.ID).
		Order("products.created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	var products []models.Product
	err := p.active(ctx).
		Preload("Images").
		Where("category_id = ?", categoryID).
		Order("products.created_at DESC").
		Find(&products).Error
	return products, err
}

func (p *productRepository) TitleSuggestions(ctx context.Context, keyword string, limit int) ([]string, error) {
	var titles []string
	err := p.active(ctx).
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(keyword)+"%").
		Limit(limit).
		Pluck("title", &titles).Error
	return titles, err
}

func (p *productRepository) BrandSuggestions(ctx context.Context, keyword string, limit int) ([]string, error) {
	var brands []string
	err := p.active(ctx).
		Distinct("brand").
		Where("brand <> '' AND LOWER(brand) LIKE ?", "%"+strings.ToLower(keyword)+"%").
		Limit(limit).
		Pluck("brand", &brands).Error
	return brands, err
}

func (p *productRepository) GetFacets(ctx context.Context) (*Facets, error) {
	facets := &Facets{}

	type priceRow struct {
		Min decimal.NullDecimal
		Max decimal.NullDecimal
	}
	var prices priceRow
	if err := p.active(ctx).
		Select("MIN(price) AS min, MAX(price) AS max").
		Scan(&prices).Error; err != nil {
		return nil, err
	}
	if prices.Min.Valid {
		facets.MinPrice = prices.Min.Decimal
	}
	if prices.Max.Valid {
		facets.MaxPrice = prices.Max.Decimal
	}

	if err := p.active(ctx).
		Distinct("brand").
		Where("brand <> ''").
		Order("brand").
		Pluck("brand", &facets.Brands).Error; err != nil {
		return nil, err
	}

	if err := p.active(ctx).Where("in_stock = ?", true).Count(&facets.InStockCount).Error; err != nil {
		return nil, err
	}
	if err := p.active(ctx).Where("in_stock = ?", false).Count(&facets.OutStockCount).Error; err != nil {
		return nil, err
	}
	if err := p.active(ctx).Count(&facets.Total).Error; err != nil {
		return nil, err
	}

	return facets, nil
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Save(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}
