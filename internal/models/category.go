package models

// Category represents a product category. The ID is assigned by the
// database on insert.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(60);not null"`
}
