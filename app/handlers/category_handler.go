package handlers

import (
	"log"
	"net/http"

	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/bekmuradov/uzmarket/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/unrolled/render"
)

type CategoryHandler struct {
	render       *render.Render
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	validator    *validator.Validate
}

func NewCategoryHandler(r *render.Render, categoryRepo repositories.CategoryRepositoryImpl, productRepo repositories.ProductRepositoryImpl, validator *validator.Validate) *CategoryHandler {
	return &CategoryHandler{
		render:       r,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		validator:    validator,
	}
}

func (h *CategoryHandler) listItems(r *http.Request, categories []models.Category) ([]CategoryListItem, error) {
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

func (h *CategoryHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	filter := repositories.CategoryFilter{
		ParentOnly: r.URL.Query().Get("parent_only") != "",
		ParentID:   r.URL.Query().Get("parent"),
		Search:     r.URL.Query().Get("search"),
	}

	categories, err := h.categoryRepo.GetAll(r.Context(), filter)
	if err != nil {
		log.Printf("CategoryListHandler: error listing categories: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load categories.")
		return
	}

	items, err := h.listItems(r, categories)
	if err != nil {
		log.Printf("CategoryListHandler: error counting products: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load categories.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, items)
}

func (h *CategoryHandler) detail(r *http.Request, category *models.Category) (*CategoryDetail, error) {
	count, err := h.categoryRepo.CountProducts(r.Context(), category.ID, true)
	if err != nil {
		return nil, err
	}

	children, err := h.listItems(r, category.Children)
	if err != nil {
		return nil, err
	}

	trail, err := h.categoryRepo.Breadcrumbs(r.Context(), category)
	if err != nil {
		return nil, err
	}
	breadcrumbs := make([]Breadcrumb, 0, len(trail))
	for _, crumb := range trail {
		breadcrumbs = append(breadcrumbs, Breadcrumb{ID: crumb.ID, Name: crumb.Name})
	}

	detail := &CategoryDetail{
		ID:           category.ID,
		Name:         category.Name,
		Slug:         category.Slug,
		Description:  category.Description,
		Image:        category.ImagePath,
		Parent:       category.ParentID,
		ProductCount: count,
		Children:     children,
		Breadcrumbs:  breadcrumbs,
		IsActive:     category.IsActive,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
	if category.Parent != nil {
		detail.ParentName = category.Parent.Name
	}
	return detail, nil
}

func (h *CategoryHandler) DetailHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("CategoryDetailHandler: error loading category %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load category.")
		return
	}
	if category == nil {
		respondDetail(h.render, w, http.StatusNotFound, "Category not found.")
		return
	}

	detail, err := h.detail(r, category)
	if err != nil {
		log.Printf("CategoryDetailHandler: error building payload for %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load category.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, detail)
}

func (h *CategoryHandler) TreeHandler(w http.ResponseWriter, r *http.Request) {
	parents, err := h.categoryRepo.GetTopLevel(r.Context())
	if err != nil {
		log.Printf("CategoryTreeHandler: error loading tree: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load category tree.")
		return
	}

	tree := make([]*CategoryDetail, 0, len(parents))
	for i := range parents {
		detail, err := h.detail(r, &parents[i])
		if err != nil {
			log.Printf("CategoryTreeHandler: error building payload for %s: %v", parents[i].ID, err)
			respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load category tree.")
			return
		}
		tree = append(tree, detail)
	}

	_ = h.render.JSON(w, http.StatusOK, tree)
}

func (h *CategoryHandler) PopularHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetPopular(r.Context(), 10)
	if err != nil {
		log.Printf("CategoryPopularHandler: error loading popular categories: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load categories.")
		return
	}

	items, err := h.listItems(r, categories)
	if err != nil {
		log.Printf("CategoryPopularHandler: error counting products: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load categories.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, items)
}

func (h *CategoryHandler) SubcategoriesHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("SubcategoriesHandler: error loading category %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load subcategories.")
		return
	}
	if category == nil {
		respondDetail(h.render, w, http.StatusNotFound, "Category not found.")
		return
	}

	items, err := h.listItems(r, category.Children)
	if err != nil {
		log.Printf("SubcategoriesHandler: error counting products: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load subcategories.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, items)
}

func (h *CategoryHandler) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("CategoryProductsHandler: error loading category %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load products.")
		return
	}
	if category == nil {
		respondDetail(h.render, w, http.StatusNotFound, "Category not found.")
		return
	}

	products, err := h.productRepo.GetByCategory(r.Context(), category.ID)
	if err != nil {
		log.Printf("CategoryProductsHandler: error loading products for %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load products.")
		return
	}

	detail, err := h.detail(r, category)
	if err != nil {
		log.Printf("CategoryProductsHandler: error building payload for %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load products.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"category": detail,
		"products": newProductList(products),
		"count":    len(products),
	})
}

type CategoryWriteRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"omitempty"`
	Image       string  `json:"image" validate:"omitempty,max=255"`
	ParentID    *string `json:"parent" validate:"omitempty,uuid4"`
	CompanyID   *string `json:"company" validate:"omitempty,uuid4"`
	Ordinal     int     `json:"ordinal"`
	IsActive    *bool   `json:"is_active"`
}

func (h *CategoryHandler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	var req CategoryWriteRequest
	if !decodeJSON(h.render, w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationErrors(h.render, w, err.(validator.ValidationErrors))
		return
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
		ImagePath:   req.Image,
		ParentID:    req.ParentID,
		CompanyID:   req.CompanyID,
		Ordinal:     req.Ordinal,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		log.Printf("CategoryCreateHandler: error creating category %s: %v", req.Name, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to create category.")
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) UpdatePutHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("CategoryUpdateHandler: error loading category %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to update category.")
		return
	}
	if category == nil {
		respondDetail(h.render, w, http.StatusNotFound, "Category not found.")
		return
	}

	var req CategoryWriteRequest
	if !decodeJSON(h.render, w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationErrors(h.render, w, err.(validator.ValidationErrors))
		return
	}

	if req.ParentID != nil {
		if *req.ParentID == category.ID {
			respondDetail(h.render, w, http.StatusBadRequest, "Category cannot be its own parent.")
			return
		}
		circular, err := h.categoryRepo.IsDescendantOf(r.Context(), *req.ParentID, category.ID)
		if err != nil {
			log.Printf("CategoryUpdateHandler: error checking parent chain for %s: %v", id, err)
			respondDetail(h.render, w, http.StatusInternalServerError, "Failed to update category.")
			return
		}
		if circular {
			respondDetail(h.render, w, http.StatusBadRequest, "Cannot create a circular parent relationship.")
			return
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	category.ImagePath = req.Image
	category.ParentID = req.ParentID
	category.CompanyID = req.CompanyID
	category.Ordinal = req.Ordinal
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.categoryRepo.Update(r.Context(), category); err != nil {
		log.Printf("CategoryUpdateHandler: error updating category %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to update category.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("CategoryDeleteHandler: error loading category %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to delete category.")
		return
	}
	if category == nil {
		respondDetail(h.render, w, http.StatusNotFound, "Category not found.")
		return
	}

	if err := h.categoryRepo.Delete(r.Context(), id); err != nil {
		log.Printf("CategoryDeleteHandler: error deleting category %s: %v", id, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to delete category.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
