package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Active restricts a query to rows whose is_active flag is set. Every read of users, categories,
// products and reviews goes through it, so a soft-deleted row never leaks.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: "is_active"},
		Value:  true,
	})
}

// All lists every model managed by AutoMigrate, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Product{},
		&Review{},
		&CartItem{},
		&Order{},
		&OrderItem{},
	}
}
