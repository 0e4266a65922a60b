package repositories

import (
	"catalog/internal/models"

	"gorm.io/gorm"
)

// RoleRepository defines the interface for role data access.
type RoleRepository interface {
	FindByID(id uint) (*models.Role, error)
	FindByAuthority(authority string) (*models.Role, error)
	Save(role *models.Role) error
}

// GORMRoleRepository is a GORM implementation of RoleRepository.
type GORMRoleRepository struct {
	db *gorm.DB
}

// NewGORMRoleRepository creates a new instance of GORMRoleRepository.
func NewGORMRoleRepository(db *gorm.DB) *GORMRoleRepository {
	return &GORMRoleRepository{
		db: db,
	}
}

// FindByID retrieves a single role by its ID.
func (r *GORMRoleRepository) FindByID(id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &role, nil
}

// FindByAuthority retrieves a single role by its authority name.
func (r *GORMRoleRepository) FindByAuthority(authority string) (*models.Role, error) {
	var role models.Role
	if err := r.db.First(&role, "authority = ?", authority).Error; err != nil {
		return nil, translateError(err)
	}
	return &role, nil
}

// Save inserts the role when its ID is zero and updates it otherwise.
func (r *GORMRoleRepository) Save(role *models.Role) error {
	if err := r.db.Save(role).Error; err != nil {
		return translateError(err)
	}
	return nil
}
