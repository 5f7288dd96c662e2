package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bekmuradov/uzmarket/app/helpers"
	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/bekmuradov/uzmarket/app/models/migrations"
	"github.com/bekmuradov/uzmarket/app/routes"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// getTestDB opens a fresh in-memory database per test. The DSN is keyed by
// the test name so parallel packages do not share state.
func getTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatal("failed to connect to test database:", err)
	}
	if err := migrations.AutoMigrate(db); err != nil {
		t.Fatal("failed to migrate test database:", err)
	}
	return db
}

func setupRouter(t *testing.T) (*mux.Router, *gorm.DB) {
	t.Helper()
	db := getTestDB(t)
	return routes.NewRouter(db), db
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

// paged mirrors the list envelope; Results stays raw so each test can decode
// it into its own item type.
type paged struct {
	Count      int64           `json:"count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	Results    json.RawMessage `json:"results"`
}

func decodePaged(t *testing.T, w *httptest.ResponseRecorder, items interface{}) paged {
	t.Helper()
	var envelope paged
	decodeBody(t, w, &envelope)
	if items != nil {
		if err := json.Unmarshal(envelope.Results, items); err != nil {
			t.Fatalf("failed to decode results %q: %v", envelope.Results, err)
		}
	}
	return envelope
}

// createUser inserts a user and a token directly, bypassing the register
// endpoint, for tests that only need an authenticated caller.
func createUser(t *testing.T, db *gorm.DB, phone, role string) (*models.User, string) {
	t.Helper()
	hash, err := helpers.HashPassword("password123")
	if err != nil {
		t.Fatal(err)
	}
	user := &models.User{
		PhoneNumber: phone,
		FirstName:   "Test",
		LastName:    "User",
		Password:    hash,
		Role:        role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatal(err)
	}
	key, err := helpers.GenerateTokenKey()
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.AuthToken{Key: key, UserID: user.ID}).Error; err != nil {
		t.Fatal(err)
	}
	return user, key
}

func createCategory(t *testing.T, db *gorm.DB, name string, parent *models.Category) *models.Category {
	t.Helper()
	category := &models.Category{
		Name:     name,
		Slug:     name + "-" + uuid.NewString()[:6],
		IsActive: true,
	}
	if parent != nil {
		category.ParentID = &parent.ID
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatal(err)
	}
	return category
}

func createProduct(t *testing.T, db *gorm.DB, title string, price string, category *models.Category, seller *models.User, mutate func(*models.Product)) *models.Product {
	t.Helper()
	amount, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatal(err)
	}
	product := &models.Product{
		Title:      title,
		SellerCode: title + "-" + uuid.NewString()[:6],
		Slug:       title + "-" + uuid.NewString()[:6],
		Price:      amount,
		CategoryID: category.ID,
		SellerID:   seller.ID,
		InStock:    true,
		IsActive:   true,
	}
	if mutate != nil {
		mutate(product)
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatal(err)
	}
	return product
}
