package fakers

import (
	"math"
	"math/rand"

	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

func CompanyFaker(name string, ordinal int) *models.Company {
	return &models.Company{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name),
		LogoPath:    "/images/companies/" + slug.Make(name) + ".png",
		Description: faker.Sentence(),
		Ordinal:     ordinal,
		IsActive:    true,
	}
}

func CategoryFaker(name string, parent *models.Category, company *models.Company) *models.Category {
	category := &models.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Sentence(),
		ImagePath:   "/images/categories/" + slug.Make(name) + ".jpg",
		Ordinal:     rand.Intn(10),
		IsActive:    true,
	}
	if parent != nil {
		category.ParentID = &parent.ID
	}
	if company != nil {
		category.CompanyID = &company.ID
	}
	return category
}

var fakeBrands = []string{"Bosch", "Makita", "Hilti", "Artel", "Samsung"}

func ProductFaker(category *models.Category, seller *models.User) *models.Product {
	title := faker.Word() + " " + faker.Word()
	productID := uuid.New().String()

	imagePaths := []string{
		"/images/products/demo1.jpg",
		"/images/products/demo2.jpg",
		"/images/products/demo3.jpg",
	}

	numImages := rand.Intn(3) + 1
	images := make([]models.ProductImage, numImages)
	for i := 0; i < numImages; i++ {
		images[i] = models.ProductImage{
			ID:        uuid.New().String(),
			ProductID: productID,
			Path:      imagePaths[rand.Intn(len(imagePaths))],
			AltText:   title,
			IsPrimary: i == 0,
			Ordinal:   i,
		}
	}

	weight := decimal.NewFromFloat(precision(rand.Float64()*5, 3))

	return &models.Product{
		ID:          productID,
		Title:       title,
		SellerCode:  slug.Make(title + "-" + uuid.NewString()[:6]),
		Slug:        slug.Make(title + "-" + uuid.NewString()[:6]),
		Description: faker.Paragraph(),
		Price:       decimal.NewFromFloat(fakePrice()),
		CategoryID:  category.ID,
		SellerID:    seller.ID,
		InStock:     rand.Intn(4) != 0,
		Brand:       fakeBrands[rand.Intn(len(fakeBrands))],
		Weight:      &weight,
		Color:       faker.Word(),
		IsActive:    true,
		IsFeatured:  rand.Intn(3) == 0,
		Images:      images,
		Specifications: []models.ProductSpecification{
			{ID: uuid.New().String(), ProductID: productID, Name: "Material", Value: faker.Word(), Ordinal: 0},
			{ID: uuid.New().String(), ProductID: productID, Name: "Country", Value: "Uzbekistan", Ordinal: 1},
		},
	}
}

func fakePrice() float64 {
	return precision(rand.Float64()*math.Pow10(rand.Intn(6)+2), 2)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}
