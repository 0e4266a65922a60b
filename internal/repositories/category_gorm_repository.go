package repositories

import (
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

var categorySortColumns = map[string]bool{
	"id":   true,
	"name": true,
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// FindAllPaged retrieves one page of categories and the total row count.
// Page numbering is zero-based.
func (r *GORMCategoryRepository) FindAllPaged(page, size int, sort, direction string) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	if err := r.db.Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	err := r.db.
		Order(orderClause(categorySortColumns, sort, direction, "name")).
		Offset(page * size).
		Limit(size).
		Find(&categories).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

// FindByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) FindByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

// Save inserts the category when its ID is zero and updates it otherwise.
func (r *GORMCategoryRepository) Save(category *models.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// DeleteByID removes a category. It returns ErrNotFound for an unknown id
// and ErrIntegrityViolation when the category is still linked to products.
func (r *GORMCategoryRepository) DeleteByID(id uint) error {
	res := r.db.Delete(&models.Category{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
