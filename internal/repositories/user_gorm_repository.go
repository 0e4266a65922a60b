package repositories

import (
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

var userSortColumns = map[string]bool{
	"id":         true,
	"first_name": true,
	"last_name":  true,
	"email":      true,
}

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// FindAllPaged retrieves one page of users, roles included, and the total
// row count. Page numbering is zero-based.
func (r *GORMUserRepository) FindAllPaged(page, size int, sort, direction string) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	err := r.db.
		Preload("Roles").
		Order(orderClause(userSortColumns, sort, direction, "first_name")).
		Offset(page * size).
		Limit(size).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// FindByID retrieves a single user with their role set loaded.
func (r *GORMUserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// FindByEmail retrieves a single user by their unique email address.
func (r *GORMUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// Save persists the user and replaces their role associations with the set
// currently on the entity, atomically. A unique-index hit on the email
// column comes back as ErrDuplicateKey.
func (r *GORMUserRepository) Save(user *models.User) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").Save(user).Error; err != nil {
			return err
		}
		return tx.Model(user).Association("Roles").Replace(user.Roles)
	})
	if err != nil {
		return translateError(err)
	}
	return nil
}

// DeleteByID removes a user and their role links. Returns ErrNotFound for an
// unknown id.
func (r *GORMUserRepository) DeleteByID(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{ID: id}).Association("Roles").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, id)
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
