package routes

import (
	"log"
	"net/http"

	"github.com/bekmuradov/uzmarket/app/handlers"
	"github.com/bekmuradov/uzmarket/app/helpers"
	"github.com/bekmuradov/uzmarket/app/middlewares"
	"github.com/bekmuradov/uzmarket/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB) *mux.Router {
	rnd := render.New()

	validate := validator.New()
	if err := helpers.RegisterValidations(validate); err != nil {
		log.Fatal("failed to register custom validations:", err)
	}

	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	authHandler := handlers.NewAuthHandler(rnd, userRepo, tokenRepo, validate)
	companyHandler := handlers.NewCompanyHandler(rnd, companyRepo, categoryRepo, productRepo, validate)
	categoryHandler := handlers.NewCategoryHandler(rnd, categoryRepo, productRepo, validate)
	productHandler := handlers.NewProductHandler(rnd, productRepo, categoryRepo, validate)
	orderHandler := handlers.NewOrderHandler(rnd, orderRepo, productRepo, validate)
	docsHandler := handlers.NewDocsHandler(rnd)

	router := mux.NewRouter().StrictSlash(true)
	router.Use(middlewares.LoggingMiddleware)
	router.Use(middlewares.TokenAuthMiddleware(tokenRepo))

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health/", docsHandler.HealthHandler).Methods("GET")
	api.HandleFunc("/docs/", docsHandler.PageHandler).Methods("GET")
	api.HandleFunc("/docs/openapi.json", docsHandler.SpecHandler).Methods("GET")

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/", authHandler.RegisterPostHandler).Methods("POST")
	auth.HandleFunc("/login/", authHandler.LoginPostHandler).Methods("POST")

	authRequired := api.PathPrefix("/auth").Subrouter()
	authRequired.Use(middlewares.RequireAuth(rnd))
	authRequired.HandleFunc("/logout/", authHandler.LogoutPostHandler).Methods("POST")
	authRequired.HandleFunc("/profile/", authHandler.ProfileGetHandler).Methods("GET")
	authRequired.HandleFunc("/profile/", authHandler.ProfilePutHandler).Methods("PUT")

	api.HandleFunc("/companies/", companyHandler.ListHandler).Methods("GET")
	api.HandleFunc("/companies/{slug}/", companyHandler.DetailHandler).Methods("GET")
	api.HandleFunc("/companies/{slug}/categories/", companyHandler.CategoriesHandler).Methods("GET")
	api.HandleFunc("/companies/{slug}/products/", companyHandler.ProductsHandler).Methods("GET")

	// Fixed category/product paths register before the {id} routes so mux
	// does not swallow them as identifiers.
	api.HandleFunc("/categories/", categoryHandler.ListHandler).Methods("GET")
	api.HandleFunc("/categories/tree/", categoryHandler.TreeHandler).Methods("GET")
	api.HandleFunc("/categories/popular/", categoryHandler.PopularHandler).Methods("GET")
	api.HandleFunc("/categories/{id}/", categoryHandler.DetailHandler).Methods("GET")
	api.HandleFunc("/categories/{id}/subcategories/", categoryHandler.SubcategoriesHandler).Methods("GET")
	api.HandleFunc("/categories/{id}/products/", categoryHandler.ProductsHandler).Methods("GET")

	api.HandleFunc("/products/", productHandler.ListHandler).Methods("GET")
	api.HandleFunc("/products/featured/", productHandler.FeaturedHandler).Methods("GET")
	api.HandleFunc("/products/latest/", productHandler.LatestHandler).Methods("GET")
	api.HandleFunc("/products/filters/", productHandler.FiltersHandler).Methods("GET")
	api.HandleFunc("/products/search-suggestions/", productHandler.SearchSuggestionsHandler).Methods("GET")
	api.HandleFunc("/products/{id}/", productHandler.DetailHandler).Methods("GET")
	api.HandleFunc("/products/{id}/similar/", productHandler.SimilarHandler).Methods("GET")

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middlewares.RequireAdmin(rnd))
	admin.HandleFunc("/products/", productHandler.CreatePostHandler).Methods("POST")
	admin.HandleFunc("/products/{id}/", productHandler.UpdatePutHandler).Methods("PUT")
	admin.HandleFunc("/products/{id}/", productHandler.DeleteHandler).Methods("DELETE")
	admin.HandleFunc("/categories/", categoryHandler.CreatePostHandler).Methods("POST")
	admin.HandleFunc("/categories/{id}/", categoryHandler.UpdatePutHandler).Methods("PUT")
	admin.HandleFunc("/categories/{id}/", categoryHandler.DeleteHandler).Methods("DELETE")
	admin.HandleFunc("/companies/", companyHandler.CreatePostHandler).Methods("POST")

	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(middlewares.RequireAuth(rnd))
	orders.HandleFunc("/", orderHandler.CreatePostHandler).Methods("POST")
	orders.HandleFunc("/", orderHandler.ListHandler).Methods("GET")
	orders.HandleFunc("/{number}/", orderHandler.DetailHandler).Methods("GET")
	orders.HandleFunc("/{number}/cancel/", orderHandler.CancelPostHandler).Methods("POST")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = rnd.JSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	})

	return router
}
