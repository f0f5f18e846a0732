package models

import "time"

// Review is a buyer's grade for a product. Rows are never hard-deleted; IsActive=false is the tombstone.
// A (user, product) pair may own at most one row, active or not.
type Review struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_reviews_user_product" json:"user_id"`
	ProductID   uint      `gorm:"not null;index;uniqueIndex:idx_reviews_user_product" json:"product_id"`
	Comment     *string   `gorm:"type:text" json:"comment"`
	CommentDate time.Time `gorm:"not null" json:"comment_date"`
	Grade       int       `gorm:"not null;check:grade >= 1 AND grade <= 5" json:"grade"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}
