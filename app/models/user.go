package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string         `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	PhoneNumber string         `gorm:"size:20;not null;uniqueIndex" json:"phone_number"`
	FirstName   string         `gorm:"size:150;not null" json:"first_name"`
	LastName    string         `gorm:"size:150;not null" json:"last_name"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Location    string         `gorm:"size:255" json:"location"`
	Latitude    *float64       `json:"latitude"`
	Longitude   *float64       `json:"longitude"`
	Role        string         `gorm:"size:20;default:'customer';not null" json:"-"`
	IsVerified  bool           `gorm:"default:false" json:"is_verified"`
	CreatedAt   time.Time      `json:"date_joined"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
