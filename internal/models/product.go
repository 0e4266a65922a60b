package models

import "time"

// Product represents a product in the catalog. Categories is an unordered
// set backed by the product_categories join table; the join rows keep a
// RESTRICT constraint so a category that is still referenced cannot be
// deleted out from under a product.
type Product struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"type:varchar(100);not null"`
	Description string     `json:"description" gorm:"type:text"`
	Price       float64    `json:"price"`
	ImgURL      string     `json:"imgUrl" gorm:"type:varchar(255)"`
	Date        time.Time  `json:"date"`
	Categories  []Category `json:"categories" gorm:"many2many:product_categories;constraint:OnDelete:RESTRICT"`
}
