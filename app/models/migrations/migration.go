package migrations

import (
	"github.com/bekmuradov/uzmarket/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Company{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductSpecification{},
		&models.Order{},
		&models.OrderItem{},
	)
}
