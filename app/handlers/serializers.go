package handlers

import (
	"time"

	"github.com/bekmuradov/uzmarket/app/helpers"
	"github.com/bekmuradov/uzmarket/app/models"
)

type CategoryListItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Image        string  `json:"image"`
	Parent       *string `json:"parent"`
	ProductCount int64   `json:"product_count"`
}

type Breadcrumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategoryDetail struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	Description  string             `json:"description"`
	Image        string             `json:"image"`
	Parent       *string            `json:"parent"`
	ParentName   string             `json:"parent_name,omitempty"`
	ProductCount int64              `json:"product_count"`
	Children     []CategoryListItem `json:"children"`
	Breadcrumbs  []Breadcrumb       `json:"breadcrumbs"`
	IsActive     bool               `json:"is_active"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func newCategoryListItem(category models.Category, productCount int64) CategoryListItem {
	return CategoryListItem{
		ID:           category.ID,
		Name:         category.Name,
		Slug:         category.Slug,
		Image:        category.ImagePath,
		Parent:       category.ParentID,
		ProductCount: productCount,
	}
}

type ProductImagePayload struct {
	ID        string `json:"id"`
	Image     string `json:"image"`
	AltText   string `json:"alt_text"`
	IsPrimary bool   `json:"is_primary"`
	Ordinal   int    `json:"ordinal"`
}

type ProductSpecPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Value   string `json:"value"`
	Ordinal int    `json:"ordinal"`
}

type ProductListItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	SellerCode   string    `json:"seller_code"`
	Slug         string    `json:"slug"`
	Price        string    `json:"price"`
	PriceDisplay string    `json:"price_display"`
	PrimaryImage *string   `json:"primary_image"`
	CategoryName string    `json:"category_name"`
	SellerName   string    `json:"seller_name"`
	InStock      bool      `json:"in_stock"`
	IsFeatured   bool      `json:"is_featured"`
	Brand        string    `json:"brand"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProductDetail struct {
	ProductListItem
	Description    string                `json:"description"`
	Category       CategoryListItem      `json:"category"`
	SellerPhone    string                `json:"seller_phone"`
	Weight         *string               `json:"weight"`
	Dimensions     string                `json:"dimensions"`
	Color          string                `json:"color"`
	Material       string                `json:"material"`
	Images         []ProductImagePayload `json:"images"`
	Specifications []ProductSpecPayload  `json:"specifications"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func primaryImagePath(product models.Product) *string {
	for _, img := range product.Images {
		if img.IsPrimary {
			return &img.Path
		}
	}
	if len(product.Images) > 0 {
		return &product.Images[0].Path
	}
	return nil
}

func newProductListItem(product models.Product) ProductListItem {
	return ProductListItem{
		ID:           product.ID,
		Title:        product.Title,
		SellerCode:   product.SellerCode,
		Slug:         product.Slug,
		Price:        product.Price.StringFixed(2),
		PriceDisplay: helpers.FormatSom(product.Price),
		PrimaryImage: primaryImagePath(product),
		CategoryName: product.Category.Name,
		SellerName:   product.Seller.FirstName + " " + product.Seller.LastName,
		InStock:      product.InStock,
		IsFeatured:   product.IsFeatured,
		Brand:        product.Brand,
		CreatedAt:    product.CreatedAt,
	}
}

func newProductList(products []models.Product) []ProductListItem {
	items := make([]ProductListItem, 0, len(products))
	for _, product := range products {
		items = append(items, newProductListItem(product))
	}
	return items
}

func newProductDetail(product models.Product, categoryCount int64) ProductDetail {
	detail := ProductDetail{
		ProductListItem: newProductListItem(product),
		Description:     product.Description,
		Category:        newCategoryListItem(product.Category, categoryCount),
		SellerPhone:     product.Seller.PhoneNumber,
		Dimensions:      product.Dimensions,
		Color:           product.Color,
		Material:        product.Material,
		Images:          make([]ProductImagePayload, 0, len(product.Images)),
		Specifications:  make([]ProductSpecPayload, 0, len(product.Specifications)),
		UpdatedAt:       product.UpdatedAt,
	}

	if product.Weight != nil {
		weight := product.Weight.StringFixed(3)
		detail.Weight = &weight
	}
	for _, img := range product.Images {
		detail.Images = append(detail.Images, ProductImagePayload{
			ID:        img.ID,
			Image:     img.Path,
			AltText:   img.AltText,
			IsPrimary: img.IsPrimary,
			Ordinal:   img.Ordinal,
		})
	}
	for _, spec := range product.Specifications {
		detail.Specifications = append(detail.Specifications, ProductSpecPayload{
			ID:      spec.ID,
			Name:    spec.Name,
			Value:   spec.Value,
			Ordinal: spec.Ordinal,
		})
	}

	return detail
}

type OrderItemPayload struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ProductTitle string `json:"product_title"`
	SellerCode   string `json:"seller_code"`
	Quantity     int    `json:"quantity"`
	Price        string `json:"price"`
	TotalPrice   string `json:"total_price"`
}

type OrderPayload struct {
	ID                string             `json:"id"`
	OrderNumber       string             `json:"order_number"`
	Status            string             `json:"status"`
	PaymentMethod     string             `json:"payment_method"`
	Subtotal          string             `json:"subtotal"`
	DeliveryFee       string             `json:"delivery_fee"`
	TotalAmount       string             `json:"total_amount"`
	TotalDisplay      string             `json:"total_display"`
	DeliveryAddress   string             `json:"delivery_address"`
	DeliveryPhone     string             `json:"delivery_phone"`
	DeliveryNotes     string             `json:"delivery_notes"`
	Items             []OrderItemPayload `json:"items"`
	EstimatedDelivery *time.Time         `json:"estimated_delivery"`
	CreatedAt         time.Time          `json:"created_at"`
}

func newOrderPayload(order models.Order) OrderPayload {
	payload := OrderPayload{
		ID:                order.ID,
		OrderNumber:       order.OrderNumber,
		Status:            order.Status,
		PaymentMethod:     order.PaymentMethod,
		Subtotal:          order.Subtotal.StringFixed(2),
		DeliveryFee:       order.DeliveryFee.StringFixed(2),
		TotalAmount:       order.TotalAmount.StringFixed(2),
		TotalDisplay:      helpers.FormatSom(order.TotalAmount),
		DeliveryAddress:   order.DeliveryAddress,
		DeliveryPhone:     order.DeliveryPhone,
		DeliveryNotes:     order.DeliveryNotes,
		Items:             make([]OrderItemPayload, 0, len(order.Items)),
		EstimatedDelivery: order.EstimatedDelivery,
		CreatedAt:         order.CreatedAt,
	}
	for _, item := range order.Items {
		payload.Items = append(payload.Items, OrderItemPayload{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductTitle: item.ProductTitle,
			SellerCode:   item.SellerCode,
			Quantity:     item.Quantity,
			Price:        item.Price.StringFixed(2),
			TotalPrice:   item.TotalPrice.StringFixed(2),
		})
	}
	return payload
}

func newOrderList(orders []models.Order) []OrderPayload {
	payloads := make([]OrderPayload, 0, len(orders))
	for _, order := range orders {
		payloads = append(payloads, newOrderPayload(order))
	}
	return payloads
}
