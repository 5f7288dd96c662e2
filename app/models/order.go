package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentMethodCash  = "cash"
	PaymentMethodPayme = "payme"
	PaymentMethodClick = "click"
)

type Order struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID      string `gorm:"size:36;not null;index" json:"-"`
	User        User   `gorm:"foreignKey:UserID" json:"-"`
	OrderNumber string `gorm:"size:20;not null;uniqueIndex" json:"order_number"`

	Status        string `gorm:"size:20;default:'pending'" json:"status"`
	PaymentMethod string `gorm:"size:20;not null" json:"payment_method"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"delivery_fee"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`

	DeliveryAddress string `gorm:"type:text;not null" json:"delivery_address"`
	DeliveryPhone   string `gorm:"size:20;not null" json:"delivery_phone"`
	DeliveryNotes   string `gorm:"type:text" json:"delivery_notes"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	EstimatedDelivery *time.Time     `json:"estimated_delivery"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.OrderNumber == "" {
		o.OrderNumber = fmt.Sprintf("ORD-%s", strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8]))
	}
	return
}

type OrderItem struct {
	ID           string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID      string          `gorm:"size:36;not null;index" json:"-"`
	ProductID    string          `gorm:"size:36;not null;index" json:"product_id"`
	Product      Product         `gorm:"foreignKey:ProductID" json:"-"`
	ProductTitle string          `gorm:"size:200;not null" json:"product_title"`
	SellerCode   string          `gorm:"size:50" json:"seller_code"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt    time.Time       `json:"-"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

// ValidPaymentMethod reports whether m is one of the accepted payment enums.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodPayme, PaymentMethodClick:
		return true
	}
	return false
}
