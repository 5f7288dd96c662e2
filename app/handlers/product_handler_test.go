package handlers_test

import (
	"net/http"
	"testing"

	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductListPagination(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	category := createCategory(t, db, "Drills", nil)
	for _, title := range []string{"Drill A", "Drill B", "Drill C"} {
		createProduct(t, db, title, "100.00", category, seller, nil)
	}

	w := doJSON(t, router, "GET", "/api/products/?page_size=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var items []map[string]interface{}
	envelope := decodePaged(t, w, &items)
	assert.Equal(t, int64(3), envelope.Count)
	assert.Equal(t, 1, envelope.Page)
	assert.Equal(t, 2, envelope.PageSize)
	assert.Equal(t, 2, envelope.TotalPages)
	assert.Len(t, items, 2)

	w = doJSON(t, router, "GET", "/api/products/?page_size=2&page=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope = decodePaged(t, w, &items)
	assert.Equal(t, 2, envelope.Page)
	assert.Len(t, items, 1)
}

func TestProductListHidesInactive(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	category := createCategory(t, db, "Drills", nil)
	createProduct(t, db, "Visible", "100.00", category, seller, nil)
	createProduct(t, db, "Hidden", "100.00", category, seller, func(p *models.Product) {
		p.IsActive = false
	})

	w := doJSON(t, router, "GET", "/api/products/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]interface{}
	envelope := decodePaged(t, w, &items)
	require.Equal(t, int64(1), envelope.Count)
	assert.Equal(t, "Visible", items[0]["title"])
}

func TestProductListCategoryFilterIncludesChildren(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	parent := createCategory(t, db, "Tools", nil)
	child := createCategory(t, db, "Drills", parent)
	other := createCategory(t, db, "Paint", nil)
	createProduct(t, db, "Toolbox", "100.00", parent, seller, nil)
	createProduct(t, db, "Drill", "100.00", child, seller, nil)
	createProduct(t, db, "Brush", "100.00", other, seller, nil)

	w := doJSON(t, router, "GET", "/api/products/?category="+parent.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodePaged(t, w, nil)
	assert.Equal(t, int64(2), envelope.Count)
}

func TestProductListPriceAndStockFilters(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	category := createCategory(t, db, "Drills", nil)
	createProduct(t, db, "Cheap", "100.00", category, seller, nil)
	mid := createProduct(t, db, "Mid", "250.50", category, seller, nil)
	createProduct(t, db, "Expensive", "999.99", category, seller, func(p *models.Product) {
		p.InStock = false
	})

	w := doJSON(t, router, "GET", "/api/products/?min_price=200&max_price=500", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	envelope := decodePaged(t, w, &items)
	require.Equal(t, int64(1), envelope.Count)
	assert.Equal(t, mid.ID, items[0]["id"])

	w = doJSON(t, router, "GET", "/api/products/?in_stock=false", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope = decodePaged(t, w, &items)
	require.Equal(t, int64(1), envelope.Count)
	assert.Equal(t, "Expensive", items[0]["title"])
}

func TestProductListSearchAndOrdering(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	category := createCategory(t, db, "Drills", nil)
	createProduct(t, db, "Hammer Drill", "300.00", category, seller, nil)
	createProduct(t, db, "Impact Drill", "100.00", category, seller, nil)
	createProduct(t, db, "Paint Brush", "50.00", category, seller, nil)

	w := doJSON(t, router, "GET", "/api/products/?search=drill", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodePaged(t, w, nil)
	assert.Equal(t, int64(2), envelope.Count)

	w = doJSON(t, router, "GET", "/api/products/?ordering=price", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	decodePaged(t, w, &items)
	require.Len(t, items, 3)
	assert.Equal(t, "50.00", items[0]["price"])
	assert.Equal(t, "300.00", items[2]["price"])
}

func TestProductDetail(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	category := createCategory(t, db, "Drills", nil)
	product := createProduct(t, db, "Hammer Drill", "1500000", category, seller, func(p *models.Product) {
		p.Brand = "Bosch"
		p.Images = []models.ProductImage{
			{Path: "/images/p1.jpg", IsPrimary: false, Ordinal: 1},
			{Path: "/images/p0.jpg", IsPrimary: true, Ordinal: 0},
		}
		p.Specifications = []models.ProductSpecification{
			{Name: "Power", Value: "850W", Ordinal: 0},
		}
	})

	w := doJSON(t, router, "GET", "/api/products/"+product.ID+"/", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var detail map[string]interface{}
	decodeBody(t, w, &detail)
	assert.Equal(t, "Hammer Drill", detail["title"])
	assert.Equal(t, "1500000.00", detail["price"])
	assert.Equal(t, "1 500 000 so'm", detail["price_display"])
	assert.Equal(t, "/images/p0.jpg", detail["primary_image"])
	assert.Equal(t, "Bosch", detail["brand"])

	images, ok := detail["images"].([]interface{})
	require.True(t, ok)
	require.Len(t, images, 2)
	first := images[0].(map[string]interface{})
	assert.Equal(t, true, first["is_primary"])

	specs, ok := detail["specifications"].([]interface{})
	require.True(t, ok)
	assert.Len(t, specs, 1)
}

func TestProductDetailNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, "GET", "/api/products/"+uuid.NewString()+"/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found.")
}

func TestProductFeaturedAndLatest(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	category := createCategory(t, db, "Drills", nil)
	createProduct(t, db, "Plain", "100.00", category, seller, nil)
	featured := createProduct(t, db, "Star", "100.00", category, seller, func(p *models.Product) {
		p.IsFeatured = true
	})

	w := doJSON(t, router, "GET", "/api/products/featured/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	decodeBody(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, featured.ID, items[0]["id"])

	w = doJSON(t, router, "GET", "/api/products/latest/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &items)
	assert.Len(t, items, 2)
}

func TestProductSimilarExcludesSelf(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	category := createCategory(t, db, "Drills", nil)
	other := createCategory(t, db, "Paint", nil)
	product := createProduct(t, db, "Drill A", "100.00", category, seller, nil)
	sibling := createProduct(t, db, "Drill B", "100.00", category, seller, nil)
	createProduct(t, db, "Brush", "100.00", other, seller, nil)

	w := doJSON(t, router, "GET", "/api/products/"+product.ID+"/similar/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]interface{}
	decodeBody(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, sibling.ID, items[0]["id"])
}

func TestSearchSuggestions(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	category := createCategory(t, db, "Drills", nil)
	createProduct(t, db, "Hammer Drill", "100.00", category, seller, func(p *models.Product) {
		p.Brand = "Makita"
	})

	w := doJSON(t, router, "GET", "/api/products/search-suggestions/?q=d", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	decodeBody(t, w, &items)
	assert.Empty(t, items)

	w = doJSON(t, router, "GET", "/api/products/search-suggestions/?q=drill", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Hammer Drill", items[0]["text"])
	assert.Equal(t, "product", items[0]["type"])

	w = doJSON(t, router, "GET", "/api/products/search-suggestions/?q=maki", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Makita", items[0]["text"])
	assert.Equal(t, "brand", items[0]["type"])
}

func TestProductFilterFacets(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	category := createCategory(t, db, "Drills", nil)
	empty := createCategory(t, db, "Empty", nil)
	createProduct(t, db, "Cheap", "100.00", category, seller, func(p *models.Product) {
		p.Brand = "Bosch"
	})
	createProduct(t, db, "Expensive", "900.00", category, seller, func(p *models.Product) {
		p.Brand = "Makita"
		p.InStock = false
	})

	w := doJSON(t, router, "GET", "/api/products/filters/", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		PriceRange map[string]string `json:"price_range"`
		Brands     []string          `json:"brands"`
		Categories []struct {
			ID           string `json:"id"`
			ProductCount int64  `json:"product_count"`
		} `json:"categories"`
		Stock         map[string]int64 `json:"stock"`
		TotalProducts int64            `json:"total_products"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "100.00", resp.PriceRange["min"])
	assert.Equal(t, "900.00", resp.PriceRange["max"])
	assert.ElementsMatch(t, []string{"Bosch", "Makita"}, resp.Brands)
	assert.Equal(t, int64(1), resp.Stock["in_stock"])
	assert.Equal(t, int64(1), resp.Stock["out_of_stock"])
	assert.Equal(t, int64(2), resp.TotalProducts)
	// Categories with no products are dropped from the facet list.
	for _, facet := range resp.Categories {
		assert.NotEqual(t, empty.ID, facet.ID)
	}
}

func productWriteBody(category *models.Category) map[string]interface{} {
	return map[string]interface{}{
		"title":       "Cordless Drill",
		"seller_code": "CD-1001",
		"description": "18V cordless drill",
		"price":       "1250000.00",
		"category_id": category.ID,
		"brand":       "Makita",
	}
}

func TestProductCreateRequiresAdmin(t *testing.T) {
	router, db := setupRouter(t)
	category := createCategory(t, db, "Drills", nil)
	_, customerToken := createUser(t, db, "+998901234567", models.RoleCustomer)

	w := doJSON(t, router, "POST", "/api/products/", "", productWriteBody(category))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "POST", "/api/products/", customerToken, productWriteBody(category))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "permission")
}

func TestProductCreateAsAdmin(t *testing.T) {
	router, db := setupRouter(t)
	category := createCategory(t, db, "Drills", nil)
	admin, adminToken := createUser(t, db, "+998901112233", models.RoleAdmin)

	w := doJSON(t, router, "POST", "/api/products/", adminToken, productWriteBody(category))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Product
	decodeBody(t, w, &created)
	assert.Equal(t, "Cordless Drill", created.Title)
	assert.Equal(t, category.ID, created.CategoryID)
	assert.Equal(t, admin.ID, created.SellerID)
	assert.True(t, created.InStock)
	assert.NotEmpty(t, created.Slug)
}

func TestProductCreateRejectsBadPriceAndCategory(t *testing.T) {
	router, db := setupRouter(t)
	category := createCategory(t, db, "Drills", nil)
	_, adminToken := createUser(t, db, "+998901112233", models.RoleAdmin)

	body := productWriteBody(category)
	body["price"] = "not-a-price"
	w := doJSON(t, router, "POST", "/api/products/", adminToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = productWriteBody(category)
	body["category_id"] = uuid.NewString()
	w = doJSON(t, router, "POST", "/api/products/", adminToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "category_id")
}

func TestProductUpdateAndDelete(t *testing.T) {
	router, db := setupRouter(t)
	seller, _ := createUser(t, db, "+998901234567", models.RoleCustomer)
	_, adminToken := createUser(t, db, "+998901112233", models.RoleAdmin)
	category := createCategory(t, db, "Drills", nil)
	product := createProduct(t, db, "Old Title", "100.00", category, seller, nil)

	body := productWriteBody(category)
	body["title"] = "New Title"
	body["in_stock"] = false
	w := doJSON(t, router, "PUT", "/api/products/"+product.ID+"/", adminToken, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Product
	decodeBody(t, w, &updated)
	assert.Equal(t, "New Title", updated.Title)
	assert.False(t, updated.InStock)

	w = doJSON(t, router, "DELETE", "/api/products/"+product.ID+"/", adminToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, "GET", "/api/products/"+product.ID+"/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
