package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          string         `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Slug        string         `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	ImagePath   string         `gorm:"size:255" json:"image"`
	ParentID    *string        `gorm:"size:36;index" json:"parent"`
	Parent      *Category      `gorm:"foreignKey:ParentID" json:"-"`
	Children    []Category     `gorm:"foreignKey:ParentID" json:"-"`
	CompanyID   *string        `gorm:"size:36;index" json:"company"`
	Company     *Company       `gorm:"foreignKey:CompanyID" json:"-"`
	Products    []Product      `gorm:"foreignKey:CategoryID" json:"-"`
	Ordinal     int            `gorm:"default:0" json:"ordinal"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
