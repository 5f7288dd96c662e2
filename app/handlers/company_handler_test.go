package handlers_test

import (
	"net/http"
	"testing"

	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createCompany(t *testing.T, db *gorm.DB, name, companySlug string) *models.Company {
	t.Helper()
	company := &models.Company{
		Name:     name,
		Slug:     companySlug,
		IsActive: true,
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatal(err)
	}
	return company
}

func createCompanyCategory(t *testing.T, db *gorm.DB, name string, company *models.Company) *models.Category {
	t.Helper()
	category := createCategory(t, db, name, nil)
	if err := db.Model(category).Update("company_id", company.ID).Error; err != nil {
		t.Fatal(err)
	}
	category.CompanyID = &company.ID
	return category
}

func TestCompanyListWithCounts(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	company := createCompany(t, db, "EPA", "epa")
	createCompany(t, db, "RODEX", "rodex")
	category := createCompanyCategory(t, db, "Drills", company)
	createProduct(t, db, "Drill", "100.00", category, seller, nil)

	w := doJSON(t, router, "GET", "/api/companies/", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var items []struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		Slug            string `json:"slug"`
		CategoriesCount int64  `json:"categories_count"`
		ProductsCount   int64  `json:"products_count"`
	}
	decodeBody(t, w, &items)
	require.Len(t, items, 2)

	for _, item := range items {
		if item.ID != company.ID {
			continue
		}
		assert.Equal(t, int64(1), item.CategoriesCount)
		assert.Equal(t, int64(1), item.ProductsCount)
	}
}

func TestCompanyDetailAndCategories(t *testing.T) {
	router, db := setupRouter(t)
	company := createCompany(t, db, "EPA", "epa")
	category := createCompanyCategory(t, db, "Drills", company)

	w := doJSON(t, router, "GET", "/api/companies/epa/", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var detail struct {
		ID         string                   `json:"id"`
		Name       string                   `json:"name"`
		Categories []map[string]interface{} `json:"categories"`
	}
	decodeBody(t, w, &detail)
	assert.Equal(t, company.ID, detail.ID)
	assert.Equal(t, "EPA", detail.Name)
	require.Len(t, detail.Categories, 1)
	assert.Equal(t, category.ID, detail.Categories[0]["id"])

	w = doJSON(t, router, "GET", "/api/companies/epa/categories/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	decodeBody(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, category.ID, items[0]["id"])
}

func TestCompanyDetailNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, "GET", "/api/companies/missing/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Company not found.")
}

func TestCompanyProducts(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	company := createCompany(t, db, "EPA", "epa")
	other := createCompany(t, db, "RODEX", "rodex")
	category := createCompanyCategory(t, db, "Drills", company)
	otherCategory := createCompanyCategory(t, db, "Paint", other)
	createProduct(t, db, "Drill", "100.00", category, seller, nil)
	createProduct(t, db, "Hammer", "900.00", category, seller, nil)
	createProduct(t, db, "Brush", "50.00", otherCategory, seller, nil)

	w := doJSON(t, router, "GET", "/api/companies/epa/products/", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	envelope := decodePaged(t, w, nil)
	assert.Equal(t, int64(2), envelope.Count)

	w = doJSON(t, router, "GET", "/api/companies/epa/products/?max_price=500", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	envelope = decodePaged(t, w, &items)
	require.Equal(t, int64(1), envelope.Count)
	assert.Equal(t, "Drill", items[0]["title"])
}

func TestCompanyCreateRequiresAdmin(t *testing.T) {
	router, db := setupRouter(t)
	_, customerToken := createUser(t, db, "+998901234567", models.RoleCustomer)
	_, adminToken := createUser(t, db, "+998901112233", models.RoleAdmin)

	body := map[string]interface{}{"name": "Number One", "description": "Hardware importer"}

	w := doJSON(t, router, "POST", "/api/companies/", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "POST", "/api/companies/", customerToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, "POST", "/api/companies/", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Company
	decodeBody(t, w, &created)
	assert.Equal(t, "Number One", created.Name)
	assert.Equal(t, "number-one", created.Slug)
	assert.True(t, created.IsActive)
}
