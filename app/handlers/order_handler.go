package handlers

import (
	"log"
	"net/http"

	"github.com/bekmuradov/uzmarket/app/configs"
	"github.com/bekmuradov/uzmarket/app/helpers"
	"github.com/bekmuradov/uzmarket/app/models"
	"github.com/bekmuradov/uzmarket/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	render      *render.Render
	orderRepo   repositories.OrderRepositoryImpl
	productRepo repositories.ProductRepositoryImpl
	validator   *validator.Validate
}

func NewOrderHandler(r *render.Render, orderRepo repositories.OrderRepositoryImpl, productRepo repositories.ProductRepositoryImpl, validator *validator.Validate) *OrderHandler {
	return &OrderHandler{
		render:      r,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		validator:   validator,
	}
}

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

type OrderCreateRequest struct {
	PaymentMethod   string             `json:"payment_method" validate:"required,oneof=cash payme click"`
	DeliveryAddress string             `json:"delivery_address" validate:"required"`
	DeliveryPhone   string             `json:"delivery_phone" validate:"required,uzphone"`
	DeliveryNotes   string             `json:"delivery_notes"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (h *OrderHandler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	var req OrderCreateRequest
	if !decodeJSON(h.render, w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondValidationErrors(h.render, w, err.(validator.ValidationErrors))
		return
	}

	// Prices are snapshot at order time; the item rows keep the title and
	// seller code so later product edits do not rewrite order history.
	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		product, err := h.productRepo.GetByID(r.Context(), line.ProductID)
		if err != nil {
			log.Printf("OrderCreateHandler: error loading product %s: %v", line.ProductID, err)
			respondDetail(h.render, w, http.StatusInternalServerError, "Failed to create order.")
			return
		}
		if product == nil {
			respondDetail(h.render, w, http.StatusBadRequest, "Order contains an unknown product.")
			return
		}
		if !product.InStock {
			respondDetail(h.render, w, http.StatusBadRequest, "Product "+product.Title+" is out of stock.")
			return
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID:    product.ID,
			ProductTitle: product.Title,
			SellerCode:   product.SellerCode,
			Quantity:     line.Quantity,
			Price:        product.Price,
			TotalPrice:   lineTotal,
		})
	}

	deliveryFee := configs.DeliveryFee()
	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		Subtotal:        subtotal,
		DeliveryFee:     deliveryFee,
		TotalAmount:     subtotal.Add(deliveryFee),
		DeliveryAddress: req.DeliveryAddress,
		DeliveryPhone:   helpers.NormalizePhone(req.DeliveryPhone),
		DeliveryNotes:   req.DeliveryNotes,
		Items:           items,
	}

	if err := h.orderRepo.Create(r.Context(), order); err != nil {
		log.Printf("OrderCreateHandler: error creating order for user %s: %v", userID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to create order.")
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, newOrderPayload(*order))
}

func (h *OrderHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)

	page := helpers.ParsePagination(r)
	orders, total, err := h.orderRepo.GetPaginatedForUser(r.Context(), userID, page.Limit(), page.Offset())
	if err != nil {
		log.Printf("OrderListHandler: error listing orders for user %s: %v", userID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load orders.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, helpers.NewPaged(page, total, newOrderList(orders)))
}

func (h *OrderHandler) findOwnOrder(w http.ResponseWriter, r *http.Request) *models.Order {
	userID, _ := r.Context().Value(helpers.ContextKeyUserID).(string)
	orderNumber := mux.Vars(r)["number"]

	order, err := h.orderRepo.GetByNumberForUser(r.Context(), orderNumber, userID)
	if err != nil {
		log.Printf("OrderHandler: error loading order %s for user %s: %v", orderNumber, userID, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to load order.")
		return nil
	}
	if order == nil {
		// Foreign orders are indistinguishable from missing ones.
		respondDetail(h.render, w, http.StatusNotFound, "Order not found.")
		return nil
	}
	return order
}

func (h *OrderHandler) DetailHandler(w http.ResponseWriter, r *http.Request) {
	order := h.findOwnOrder(w, r)
	if order == nil {
		return
	}
	_ = h.render.JSON(w, http.StatusOK, newOrderPayload(*order))
}

func (h *OrderHandler) CancelPostHandler(w http.ResponseWriter, r *http.Request) {
	order := h.findOwnOrder(w, r)
	if order == nil {
		return
	}

	if order.Status != models.OrderStatusPending {
		respondDetail(h.render, w, http.StatusConflict, "Only pending orders can be cancelled.")
		return
	}

	if err := h.orderRepo.UpdateStatus(r.Context(), order.ID, models.OrderStatusCancelled); err != nil {
		log.Printf("OrderCancelHandler: error cancelling order %s: %v", order.OrderNumber, err)
		respondDetail(h.render, w, http.StatusInternalServerError, "Failed to cancel order.")
		return
	}

	order.Status = models.OrderStatusCancelled
	_ = h.render.JSON(w, http.StatusOK, newOrderPayload(*order))
}
