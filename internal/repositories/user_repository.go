package repositories

import (
	"catalog/internal/models"
)

// UserRepository defines the interface for user data access. Reads return
// users with their role set already loaded. FindByEmail returns ErrNotFound
// when no user has the address.
type UserRepository interface {
	FindAllPaged(page, size int, sort, direction string) ([]models.User, int64, error)
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Save(user *models.User) error
	DeleteByID(id uint) error
}
