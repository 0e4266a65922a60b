package dto

import "catalog/internal/models"

// RoleDTO is the transfer representation of a role.
type RoleDTO struct {
	ID        uint   `json:"id"`
	Authority string `json:"authority"`
}

// UserDTO is the transfer representation of a user. It never carries a
// password in either direction.
type UserDTO struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"firstName" validate:"required,min=5,max=60"`
	LastName  string    `json:"lastName" validate:"required,min=5,max=60"`
	Email     string    `json:"email" validate:"required,email"`
	Roles     []RoleDTO `json:"roles"`
}

// UserInsertDTO is the insert variant: UserDTO plus the plaintext password,
// which is hashed before it reaches the store.
type UserInsertDTO struct {
	UserDTO
	Password string `json:"password" validate:"required,min=8"`
}

// UserUpdateDTO is the update variant; updates cannot change the password.
type UserUpdateDTO struct {
	UserDTO
}

// NewRoleDTO builds a RoleDTO from an entity.
func NewRoleDTO(entity *models.Role) RoleDTO {
	return RoleDTO{
		ID:        entity.ID,
		Authority: entity.Authority,
	}
}

// NewUserDTO builds a UserDTO from an entity, including its loaded role set.
func NewUserDTO(entity *models.User) UserDTO {
	d := UserDTO{
		ID:        entity.ID,
		FirstName: entity.FirstName,
		LastName:  entity.LastName,
		Email:     entity.Email,
		Roles:     make([]RoleDTO, 0, len(entity.Roles)),
	}
	for i := range entity.Roles {
		d.Roles = append(d.Roles, NewRoleDTO(&entity.Roles[i]))
	}
	return d
}
