package seeders

import (
	"log"

	"github.com/bekmuradov/uzmarket/app/db/fakers"
	"github.com/bekmuradov/uzmarket/app/helpers"
	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var companyNames = []string{"EPA", "Number One", "RODEX", "PID"}

var categoryNames = map[string][]string{
	"Elektr asboblar": {"Drellar", "Bolg'alar"},
	"Qurilish":        {"Sement", "Bo'yoqlar"},
	"Maishiy texnika": {"Muzlatgichlar", "Kir yuvish mashinalari"},
}

// DBSeed fills an empty database with an admin, demo customers and a small
// catalog spread across the demo companies.
func DBSeed(db *gorm.DB) error {
	adminPassword, err := helpers.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := &models.User{
		ID:          uuid.New().String(),
		PhoneNumber: "+998901112233",
		FirstName:   "Admin",
		LastName:    "User",
		Password:    adminPassword,
		Role:        models.RoleAdmin,
		IsVerified:  true,
	}
	if err := db.FirstOrCreate(admin, "phone_number = ?", admin.PhoneNumber).Error; err != nil {
		return err
	}

	companies := make([]*models.Company, 0, len(companyNames))
	for i, name := range companyNames {
		company := fakers.CompanyFaker(name, i)
		if err := db.FirstOrCreate(company, "name = ?", name).Error; err != nil {
			return err
		}
		companies = append(companies, company)
	}

	seller := fakers.UserFaker()
	if err := db.FirstOrCreate(seller, "phone_number = ?", seller.PhoneNumber).Error; err != nil {
		return err
	}

	companyIdx := 0
	for parentName, childNames := range categoryNames {
		company := companies[companyIdx%len(companies)]
		companyIdx++

		parent := fakers.CategoryFaker(parentName, nil, company)
		if err := db.Create(parent).Error; err != nil {
			return err
		}

		for _, childName := range childNames {
			child := fakers.CategoryFaker(childName, parent, company)
			if err := db.Create(child).Error; err != nil {
				return err
			}

			for i := 0; i < 5; i++ {
				product := fakers.ProductFaker(child, seller)
				if err := db.Create(product).Error; err != nil {
					return err
				}
			}
		}
	}

	log.Println("✅ Seeded demo companies, categories and products")
	return nil
}
