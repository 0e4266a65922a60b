package repositories

import (
	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access. Reads
// return products with their category set already loaded.
type ProductRepository interface {
	FindAllPaged(page, size int, sort, direction string) ([]models.Product, int64, error)
	FindByID(id uint) (*models.Product, error)
	Save(product *models.Product) error
	DeleteByID(id uint) error
}
