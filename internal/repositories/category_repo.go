package repositories

import (
	"catalog/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	FindAllPaged(page, size int, sort, direction string) ([]models.Category, int64, error)
	FindByID(id uint) (*models.Category, error)
	Save(category *models.Category) error
	DeleteByID(id uint) error
}
