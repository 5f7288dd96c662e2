package handlers

import (
	"log"
	"net/http"

	"github.com/bekmuradov/uzmarket/app/helpers"
	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/bekmuradov/uzmarket/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/unrolled/render"
)

type CompanyHandler struct {
	render       *render.Render
	companyRepo  repositories.CompanyRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	validator    *validator.Validate
}

func NewCompanyHandler(r *render.Render, companyRepo repositories.CompanyRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl, productRepo repositories.ProductRepositoryImpl, validator *validator.Validate) *CompanyHandler {
	return &CompanyHandler{
		render:       r,
		companyRepo:  companyRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		validator:    validator,
	}
}

type CompanyListItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Logo            string `json:"logo"`
	Slug            string `json:"slug"`
	CategoriesCount int64  `json:"categories_count"`
	ProductsCount   int64  `json:"products_count"`
}

func (h *CompanyHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("CompanyListHandler: error listing companies: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load companies.")
		return
	}

	items := make([]CompanyListItem, 0, len(companies))
	for _, company := range companies {
		categories, err := h.companyRepo.CountCategories(r.Context(), company.ID)
		if err != nil {
			log.Printf("CompanyListHandler: error counting categories for %s: %v", company.ID, err)
			respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load companies.")
			return
		}
		products, err := h.companyRepo.CountProducts(r.Context(), company.ID)
		if err != nil {
			log.Printf("CompanyListHandler: error counting products for %s: %v", company.ID, err)
			respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load companies.")
			return
		}
		items = append(items, CompanyListItem{
			ID:              company.ID,
			Name:            company.Name,
			Logo:            company.LogoPath,
			Slug:            company.Slug,
			CategoriesCount: categories,
			ProductsCount:   products,
		})
	}

	_ = h.render.JSON(w, http.StatusOK, items)
}

func (h *CompanyHandler) findCompany(w http.ResponseWriter, r *http.Request) *models.Company {
	companySlug := mux.Vars(r)["slug"]

	company, err := h.companyRepo.GetBySlug(r.Context(), companySlug)
	if err != nil {
		log.Printf("CompanyHandler: error loading company %s: %v", companySlug, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load company.")
		return nil
	}
	if company == nil {
		respondDetail(h.render, w, http.StatusNotFound, "Company not found.")
		return nil
	}
	return company
}

func (h *CompanyHandler) companyCategories(r *http.Request, companyID string) ([]CategoryListItem, error) {
	categories, err := h.categoryRepo.TopLevelForCompany(r.Context(), companyID)
	if err != nil {
		return nil, err
	}
	items := make([]CategoryListItem, 0, len(categories))
	for _, category := range categories {
		count, err := h.categoryRepo.CountProducts(r.Context(), category.ID, false)
		if err != nil {
			return nil, err
		}
		items = append(items, newCategoryListItem(category, count))
	}
	return items, nil
}

func (h *CompanyHandler) DetailHandler(w http.ResponseWriter, r *http.Request) {
	company := h.findCompany(w, r)
	if company == nil {
		return
	}

	categories, err := h.companyCategories(r, company.ID)
	if err != nil {
		log.Printf("CompanyDetailHandler: error loading categories for %s: %v", company.ID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load company.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"id":          company.ID,
		"name":        company.Name,
		"logo":        company.LogoPath,
		"description": company.Description,
		"slug":        company.Slug,
		"categories":  categories,
		"created_at":  company.CreatedAt,
	})
}

func (h *CompanyHandler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	company := h.findCompany(w, r)
	if company == nil {
		return
	}

	categories, err := h.companyCategories(r, company.ID)
	if err != nil {
		log.Printf("CompanyCategoriesHandler: error loading categories for %s: %v", company.ID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load categories.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, categories)
}

func (h *CompanyHandler) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	company := h.findCompany(w, r)
	if company == nil {
		return
	}

	q := r.URL.Query()
	filter := repositories.ProductFilter{
		CompanyID: company.ID,
		Search:    q.Get("search"),
	}
	if categoryID := q.Get("category"); categoryID != "" {
		filter.CategoryIDs = []string{categoryID}
	}
	if raw := q.Get("min_price"); raw != "" {
		if price, err := decimalFromQuery(raw); err == nil {
			filter.MinPrice = price
		}
	}
	if raw := q.Get("max_price"); raw != "" {
		if price, err := decimalFromQuery(raw); err == nil {
			filter.MaxPrice = price
		}
	}

	page := helpers.ParsePagination(r)
	products, total, err := h.productRepo.GetPaginated(r.Context(), filter, page.Limit(), page.Offset())
	if err != nil {
		log.Printf("CompanyProductsHandler: error listing products for %s: %v", company.ID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load products.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, helpers.NewPaged(page, total, newProductList(products)))
}

type CompanyWriteRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Logo        string `json:"logo" validate:"omitempty,max=255"`
	Description string `json:"description" validate:"omitempty"`
	Ordinal     int    `json:"ordinal"`
	IsActive    *bool  `json:"is_active"`
}

func (h *CompanyHandler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	var req CompanyWriteRequest
	if !decodeJSON(h.render, w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationErrors(h.render, w, err.(validator.ValidationErrors))
		return
	}

	company := &models.Company{
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		LogoPath:    req.Logo,
		Description: req.Description,
		Ordinal:     req.Ordinal,
		IsActive:    true,
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}

	if err := h.companyRepo.Create(r.Context(), company); err != nil {
		log.Printf("CompanyCreateHandler: error creating company %s: %v", req.Name, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to create company.")
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, company)
}
