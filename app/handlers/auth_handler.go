package handlers

import (
	"log"
	"net/http"

	"github.com/bekmuradov/uzmarket/app/helpers"
	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/bekmuradov/uzmarket/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render    *render.Render
	userRepo  repositories.UserRepositoryImpl
	tokenRepo repositories.TokenRepositoryImpl
	validator *validator.Validate
}

func NewAuthHandler(r *render.Render, userRepo repositories.UserRepositoryImpl, tokenRepo repositories.TokenRepositoryImpl, validator *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:    r,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		validator: validator,
	}
}

type RegisterRequest struct {
	PhoneNumber     string   `json:"phone_number" validate:"required,uzphone"`
	FirstName       string   `json:"first_name" validate:"required,min=2,max=150"`
	LastName        string   `json:"last_name" validate:"required,min=2,max=150"`
	Password        string   `json:"password" validate:"required,min=6"`
	PasswordConfirm string   `json:"password_confirm" validate:"required,eqfield=Password"`
	Location        string   `json:"location" validate:"omitempty,max=255"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

func (h *AuthHandler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(h.render, w, r, &req) {
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondValidationErrors(h.render, w, err.(validator.ValidationErrors))
		return
	}

	phone := helpers.NormalizePhone(req.PhoneNumber)

	existing, err := h.userRepo.FindByPhone(r.Context(), phone)
	if err != nil {
		log.Printf("RegisterPostHandler: error checking existing user: %v", err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Registration failed.")
		return
	}
	if existing != nil {
		respondDetail(h.render, w, http.StatusBadRequest, "A user with this phone number already exists.")
		return
	}

	user := &models.User{
		PhoneNumber: phone,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Role:        models.RoleCustomer,
	}

	if err := h.userRepo.Create(r.Context(), user); err != nil {
		log.Printf("RegisterPostHandler: error creating user %s: %v", phone, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Registration failed.")
		return
	}

	token, err := h.tokenRepo.GetOrCreate(r.Context(), user.ID)
	if err != nil {
		log.Printf("RegisterPostHandler: error issuing token for user %s: %v", user.ID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Registration failed.")
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registration successful.",
		"user":    user,
		"token":   token.Key,
	})
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

func (h *AuthHandler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(h.render, w, r, &req) {
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondValidationErrors(h.render, w, err.(validator.ValidationErrors))
		return
	}

	phone := helpers.NormalizePhone(req.PhoneNumber)

	user, err := h.userRepo.FindByPhone(r.Context(), phone)
	if err != nil {
		log.Printf("LoginPostHandler: error getting user by phone %s: %v", phone, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Login failed.")
		return
	}
	if user == nil || !helpers.CheckPassword(user.Password, req.Password) {
		respondDetail(h.render, w, http.StatusBadRequest, "Phone number or password is incorrect.")
		return
	}

	token, err := h.tokenRepo.GetOrCreate(r.Context(), user.ID)
	if err != nil {
		log.Printf("LoginPostHandler: error issuing token for user %s: %v", user.ID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Login failed.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful.",
		"user":    user,
		"token":   token.Key,
	})
}

func (h *AuthHandler) LogoutPostHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	if err := h.tokenRepo.DeleteForUser(r.Context(), userID); err != nil {
		log.Printf("LogoutPostHandler: error deleting token for user %s: %v", userID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Logout failed.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Logout successful."})
}

func (h *AuthHandler) ProfileGetHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil || user == nil {
		log.Printf("ProfileGetHandler: error loading user %s: %v", userID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load profile.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, user)
}

// ProfileUpdateRequest is a partial update: only the fields present in the
// body change. phone_number and is_verified are read-only.
type ProfileUpdateRequest struct {
	FirstName *string  `json:"first_name" validate:"omitempty,min=2,max=150"`
	LastName  *string  `json:"last_name" validate:"omitempty,min=2,max=150"`
	Location  *string  `json:"location" validate:"omitempty,max=255"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

func (h *AuthHandler) ProfilePutHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	var req ProfileUpdateRequest
	if !decodeJSON(h.render, w, r, &req) {
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondValidationErrors(h.render, w, err.(validator.ValidationErrors))
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil || user == nil {
		log.Printf("ProfilePutHandler: error loading user %s: %v", userID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load profile.")
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Latitude != nil {
		user.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		user.Longitude = req.Longitude
	}

	if err := h.userRepo.Update(r.Context(), user); err != nil {
		log.Printf("ProfilePutHandler: error updating user %s: %v", userID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to update profile.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, user)
}
