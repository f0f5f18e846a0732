package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a seller's listing. Rating is derived: the mean grade of the product's active reviews,
// 0 when there are none.
type Product struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"size:200;not null" json:"name"`
	Description string            `gorm:"size:500;default:''" json:"description"`
	Price       float64           `gorm:"type:numeric(10,2);not null" json:"price"`
	ImageURL    string            `gorm:"size:200;default:''" json:"image_url"`
	Stock       int               `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Attributes  datatypes.JSONMap `json:"attributes,omitempty"`
	Rating      float64           `gorm:"not null;default:0" json:"rating"`
	CategoryID  uint              `gorm:"not null;index" json:"category_id"`
	SellerID    uint              `gorm:"not null;index" json:"seller_id"`
	IsActive    bool              `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"-"`
}
