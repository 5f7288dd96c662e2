package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	SellerCode  string          `gorm:"size:50;not null;uniqueIndex" json:"seller_code"`
	Slug        string          `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CategoryID  string          `gorm:"size:36;not null;index" json:"category_id"`
	Category    Category        `gorm:"foreignKey:CategoryID" json:"-"`
	SellerID    string          `gorm:"size:36;not null;index" json:"seller_id"`
	Seller      User            `gorm:"foreignKey:SellerID" json:"-"`

	InStock bool `gorm:"default:true" json:"in_stock"`

	Brand      string           `gorm:"size:100" json:"brand"`
	Weight     *decimal.Decimal `gorm:"type:decimal(8,3)" json:"weight"`
	Dimensions string           `gorm:"size:100" json:"dimensions"`
	Color      string           `gorm:"size:50" json:"color"`
	Material   string           `gorm:"size:100" json:"material"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsFeatured bool `gorm:"default:false" json:"is_featured"`

	Images         []ProductImage         `gorm:"foreignKey:ProductID" json:"images"`
	Specifications []ProductSpecification `gorm:"foreignKey:ProductID" json:"specifications"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

type ProductImage struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string    `gorm:"size:36;not null;index" json:"-"`
	Path      string    `gorm:"size:255;not null" json:"image"`
	AltText   string    `gorm:"size:200" json:"alt_text"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	Ordinal   int       `gorm:"default:0" json:"ordinal"`
	CreatedAt time.Time `json:"-"`
}

func (pi *ProductImage) BeforeCreate(tx *gorm.DB) (err error) {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return
}

type ProductSpecification struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string `gorm:"size:36;not null;index:idx_product_spec_name,unique" json:"-"`
	Name      string `gorm:"size:100;not null;index:idx_product_spec_name,unique" json:"name"`
	Value     string `gorm:"size:255;not null" json:"value"`
	Ordinal   int    `gorm:"default:0" json:"ordinal"`
}

func (ps *ProductSpecification) BeforeCreate(tx *gorm.DB) (err error) {
	if ps.ID == "" {
		ps.ID = uuid.New().String()
	}
	return
}
