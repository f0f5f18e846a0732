package models

type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:50;not null" json:"name"`
	ParentID *uint  `gorm:"index" json:"parent_id"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	Parent *Category `gorm:"foreignKey:ParentID" json:"-"`
}
