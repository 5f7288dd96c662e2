package handlers

import (
	"log"
	"net/http"

	"github.com/bekmuradov/uzmarket/app/helpers"
	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/bekmuradov/uzmarket/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	render       *render.Render
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	validator    *validator.Validate
}

func NewProductHandler(r *render.Render, productRepo repositories.ProductRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl, validator *validator.Validate) *ProductHandler {
	return &ProductHandler{
		render:       r,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		validator:    validator,
	}
}

// filterFromQuery translates list query params into a repository filter.
// A category filter fans out to the category's direct subcategories.
func (h *ProductHandler) filterFromQuery(r *http.Request) (repositories.ProductFilter, error) {
	q := r.URL.Query()
	filter := repositories.ProductFilter{
		Brand:    q.Get("brand"),
		Search:   q.Get("search"),
		Ordering: q.Get("ordering"),
	}

	if categoryID := q.Get("category"); categoryID != "" {
		ids := []string{categoryID}
		children, err := h.categoryRepo.GetChildren(r.Context(), categoryID)
		if err != nil {
			return filter, err
		}
		for _, child := range children {
			ids = append(ids, child.ID)
		}
		filter.CategoryIDs = ids
	}

	if raw := q.Get("min_price"); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil {
			filter.MinPrice = &price
		}
	}
	if raw := q.Get("max_price"); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil {
			filter.MaxPrice = &price
		}
	}
	if raw := q.Get("in_stock"); raw == "true" || raw == "false" {
		inStock := raw == "true"
		filter.InStock = &inStock
	}
	if raw := q.Get("featured"); raw == "true" {
		featured := true
		filter.Featured = &featured
	}

	return filter, nil
}

func (h *ProductHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filterFromQuery(r)
	if err != nil {
		log.Printf("ProductListHandler: error resolving category filter: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load products.")
		return
	}

	page := helpers.ParsePagination(r)
	products, total, err := h.productRepo.GetPaginated(r.Context(), filter, page.Limit(), page.Offset())
	if err != nil {
		log.Printf("ProductListHandler: error listing products: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load products.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, helpers.NewPaged(page, total, newProductList(products)))
}

func (h *ProductHandler) DetailHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ProductDetailHandler: error loading product %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load product.")
		return
	}
	if product == nil {
		respondDetail(h.render, w, http.StatusNotFound, "Product not found.")
		return
	}

	count, err := h.categoryRepo.CountProducts(r.Context(), product.CategoryID, false)
	if err != nil {
		log.Printf("ProductDetailHandler: error counting category products for %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load product.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, newProductDetail(*product, count))
}

func (h *ProductHandler) FeaturedHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.GetFeatured(r.Context(), 12)
	if err != nil {
		log.Printf("ProductFeaturedHandler: error loading featured products: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load products.")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, newProductList(products))
}

func (h *ProductHandler) LatestHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.GetLatest(r.Context(), 20)
	if err != nil {
		log.Printf("ProductLatestHandler: error loading latest products: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load products.")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, newProductList(products))
}

func (h *ProductHandler) SimilarHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ProductSimilarHandler: error loading product %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load products.")
		return
	}
	if product == nil {
		respondDetail(h.render, w, http.StatusNotFound, "Product not found.")
		return
	}

	similar, err := h.productRepo.GetSimilar(r.Context(), product, 8)
	if err != nil {
		log.Printf("ProductSimilarHandler: error loading similar products for %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load products.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, newProductList(similar))
}

type suggestion struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

func (h *ProductHandler) SearchSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(query) < 2 {
		_ = h.render.JSON(w, http.StatusOK, []suggestion{})
		return
	}

	titles, err := h.productRepo.TitleSuggestions(r.Context(), query, 5)
	if err != nil {
		log.Printf("SearchSuggestionsHandler: error loading title suggestions: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load suggestions.")
		return
	}
	brands, err := h.productRepo.BrandSuggestions(r.Context(), query, 3)
	if err != nil {
		log.Printf("SearchSuggestionsHandler: error loading brand suggestions: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load suggestions.")
		return
	}

	suggestions := make([]suggestion, 0, len(titles)+len(brands))
	for _, title := range titles {
		suggestions = append(suggestions, suggestion{Text: title, Type: "product"})
	}
	for _, brand := range brands {
		suggestions = append(suggestions, suggestion{Text: brand, Type: "brand"})
	}
	if len(suggestions) > 8 {
		suggestions = suggestions[:8]
	}

	_ = h.render.JSON(w, http.StatusOK, suggestions)
}

func (h *ProductHandler) FiltersHandler(w http.ResponseWriter, r *http.Request) {
	facets, err := h.productRepo.GetFacets(r.Context())
	if err != nil {
		log.Printf("ProductFiltersHandler: error loading facets: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load filters.")
		return
	}

	categories, err := h.categoryRepo.GetAll(r.Context(), repositories.CategoryFilter{})
	if err != nil {
		log.Printf("ProductFiltersHandler: error loading categories: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load filters.")
		return
	}

	categoryFacets := make([]map[string]interface{}, 0, len(categories))
	for _, category := range categories {
		count, err := h.categoryRepo.CountProducts(r.Context(), category.ID, false)
		if err != nil {
			log.Printf("ProductFiltersHandler: error counting products for %s: %v", category.ID, err)
			respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load filters.")
			return
		}
		if count == 0 {
			continue
		}
		categoryFacets = append(categoryFacets, map[string]interface{}{
			"id":            category.ID,
			"name":          category.Name,
			"product_count": count,
		})
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"price_range": map[string]string{
			"min": facets.MinPrice.StringFixed(2),
			"max": facets.MaxPrice.StringFixed(2),
		},
		"brands":     facets.Brands,
		"categories": categoryFacets,
		"stock": map[string]int64{
			"in_stock":     facets.InStockCount,
			"out_of_stock": facets.OutStockCount,
		},
		"total_products": facets.Total,
	})
}

type ProductWriteRequest struct {
	Title       string  `json:"title" validate:"required,min=2,max=200"`
	SellerCode  string  `json:"seller_code" validate:"required,min=2,max=50"`
	Description string  `json:"description" validate:"omitempty"`
	Price       string  `json:"price" validate:"required"`
	CategoryID  string  `json:"category_id" validate:"required,uuid4"`
	InStock     *bool   `json:"in_stock"`
	Brand       string  `json:"brand" validate:"omitempty,max=100"`
	Weight      *string `json:"weight"`
	Dimensions  string  `json:"dimensions" validate:"omitempty,max=100"`
	Color       string  `json:"color" validate:"omitempty,max=50"`
	Material    string  `json:"material" validate:"omitempty,max=100"`
	IsFeatured  bool    `json:"is_featured"`
}

func (h *ProductHandler) applyWriteRequest(w http.ResponseWriter, r *http.Request, req ProductWriteRequest, product *models.Product) bool {
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		respondDetail(h.render, w, http.StatusBadRequest, "price must be a non-negative decimal.")
		return false
	}

	category, err := h.categoryRepo.GetByID(r.Context(), req.CategoryID)
	if err != nil {
		log.Printf("ProductWriteHandler: error loading category %s: %v", req.CategoryID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to save product.")
		return false
	}
	if category == nil {
		respondDetail(h.render, w, http.StatusBadRequest, "category_id does not reference an active category.")
		return false
	}

	product.Title = req.Title
	product.SellerCode = req.SellerCode
	product.Description = req.Description
	product.Price = price
	product.CategoryID = req.CategoryID
	product.Brand = req.Brand
	product.Dimensions = req.Dimensions
	product.Color = req.Color
	product.Material = req.Material
	product.IsFeatured = req.IsFeatured
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.Weight != nil {
		weight, err := decimal.NewFromString(*req.Weight)
		if err != nil {
			respondDetail(h.render, w, http.StatusBadRequest, "weight must be a decimal.")
			return false
		}
		product.Weight = &weight
	}
	return true
}

func (h *ProductHandler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductWriteRequest
	if !decodeJSON(h.render, w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationErrors(h.render, w, err.(validator.ValidationErrors))
		return
	}

	sellerID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	product := &models.Product{
		SellerID: sellerID,
		InStock:  true,
		IsActive: true,
	}
	if !h.applyWriteRequest(w, r, req, product) {
		return
	}
	product.Slug = slug.Make(req.Title + "-" + uuid.NewString()[:6])

	if err := h.productRepo.Create(r.Context(), product); err != nil {
		log.Printf("ProductCreateHandler: error creating product %s: %v", req.SellerCode, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to create product.")
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) UpdatePutHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ProductUpdateHandler: error loading product %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to update product.")
		return
	}
	if product == nil {
		respondDetail(h.render, w, http.StatusNotFound, "Product not found.")
		return
	}

	var req ProductWriteRequest
	if !decodeJSON(h.render, w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationErrors(h.render, w, err.(validator.ValidationErrors))
		return
	}

	if !h.applyWriteRequest(w, r, req, product) {
		return
	}

	if err := h.productRepo.Update(r.Context(), product); err != nil {
		log.Printf("ProductUpdateHandler: error updating product %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to update product.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ProductDeleteHandler: error loading product %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to delete product.")
		return
	}
	if product == nil {
		respondDetail(h.render, w, http.StatusNotFound, "Product not found.")
		return
	}

	if err := h.productRepo.Delete(r.Context(), id); err != nil {
		log.Printf("ProductDeleteHandler: error deleting product %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to delete product.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
