package repositories

import (
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

var productSortColumns = map[string]bool{
	"id":    true,
	"name":  true,
	"price": true,
	"date":  true,
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// FindAllPaged retrieves one page of products, categories included, and the
// total row count. Page numbering is zero-based.
func (r *GORMProductRepository) FindAllPaged(page, size int, sort, direction string) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := r.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	err := r.db.
		Preload("Categories").
		Order(orderClause(productSortColumns, sort, direction, "name")).
		Offset(page * size).
		Limit(size).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// FindByID retrieves a single product with its category set loaded.
func (r *GORMProductRepository) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Categories").First(&product, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// Save persists the product and replaces its category associations with the
// set currently on the entity, atomically. An insert and its join rows
// either commit together or not at all.
func (r *GORMProductRepository) Save(product *models.Product) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Save(product).Error; err != nil {
			return err
		}
		return tx.Model(product).Association("Categories").Replace(product.Categories)
	})
	if err != nil {
		return translateError(err)
	}
	return nil
}

// DeleteByID removes a product and its join rows. Returns ErrNotFound for an
// unknown id.
func (r *GORMProductRepository) DeleteByID(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{ID: id}).Association("Categories").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return translateError(err)
	}
	return nil
}
