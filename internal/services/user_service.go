package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"catalog/internal/dto"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/events"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles business logic related to user accounts.
type UserService struct {
	repo     repositories.UserRepository
	roleRepo repositories.RoleRepository
	mqClient *events.Client
}

// NewUserService creates a new UserService. mqClient may be nil to disable
// event publishing.
func NewUserService(repo repositories.UserRepository, roleRepo repositories.RoleRepository, mqClient *events.Client) *UserService {
	return &UserService{
		repo:     repo,
		roleRepo: roleRepo,
		mqClient: mqClient,
	}
}

// FindAllPaged returns one page of users as DTOs, roles included and
// passwords omitted.
func (s *UserService) FindAllPaged(page, size int, sort, direction string) (*dto.Page[dto.UserDTO], error) {
	users, total, err := s.repo.FindAllPaged(page, size, sort, direction)
	if err != nil {
		return nil, err
	}

	content := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		content = append(content, dto.NewUserDTO(&users[i]))
	}
	result := dto.NewPage(content, total, page, size)
	return &result, nil
}

// FindByID returns a single user as a DTO.
func (s *UserService) FindByID(id uint) (*dto.UserDTO, error) {
	entity, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newNotFoundError("Entity not found")
		}
		return nil, err
	}
	d := dto.NewUserDTO(entity)
	return &d, nil
}

// Insert persists a new user. The email must not belong to any existing
// user, and the plaintext password is bcrypt-hashed before it is stored.
func (s *UserService) Insert(userDTO dto.UserInsertDTO) (*dto.UserDTO, error) {
	if err := s.validateEmailForInsert(userDTO.Email); err != nil {
		return nil, err
	}

	var entity models.User
	if err := s.copyDTOToEntity(&entity, userDTO.UserDTO); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userDTO.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	entity.Password = string(hashedPassword)

	if err := s.repo.Save(&entity); err != nil {
		// Two inserts can race past the advisory check; the unique index on
		// email is the authoritative guard.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, &ValidationError{Errors: []FieldMessage{{FieldName: "email", Message: "Email already exists"}}}
		}
		return nil, err
	}

	s.publishEvent("created", entity.ID, dto.NewUserDTO(&entity))

	d := dto.NewUserDTO(&entity)
	return &d, nil
}

// Update loads the user addressed by id, overwrites their mutable fields and
// role set from the DTO and persists them. The stored password hash is kept
// as-is. The target id is taken from the path, so a user keeping their own
// email does not trip the uniqueness check.
func (s *UserService) Update(id uint, userDTO dto.UserUpdateDTO) (*dto.UserDTO, error) {
	if err := s.validateEmailForUpdate(id, userDTO.Email); err != nil {
		return nil, err
	}

	entity, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newNotFoundError("Id not found : %d", id)
		}
		return nil, err
	}

	if err := s.copyDTOToEntity(entity, userDTO.UserDTO); err != nil {
		return nil, err
	}
	if err := s.repo.Save(entity); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, &ValidationError{Errors: []FieldMessage{{FieldName: "email", Message: "Email already exists"}}}
		}
		return nil, err
	}

	s.publishEvent("updated", entity.ID, dto.NewUserDTO(entity))

	d := dto.NewUserDTO(entity)
	return &d, nil
}

// Delete removes the user addressed by id.
func (s *UserService) Delete(id uint) error {
	if err := s.repo.DeleteByID(id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return newNotFoundError("Id not found : %d", id)
		case errors.Is(err, repositories.ErrIntegrityViolation):
			return &DatabaseError{Message: "Integrity violation"}
		}
		return err
	}

	s.publishEvent("deleted", id, nil)
	return nil
}

// copyDTOToEntity copies the scalar fields onto the entity and rebuilds its
// role set, resolving every referenced role id through the store.
func (s *UserService) copyDTOToEntity(entity *models.User, userDTO dto.UserDTO) error {
	entity.FirstName = userDTO.FirstName
	entity.LastName = userDTO.LastName
	entity.Email = userDTO.Email

	entity.Roles = entity.Roles[:0]
	for _, roleDTO := range userDTO.Roles {
		role, err := s.roleRepo.FindByID(roleDTO.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return newNotFoundError("Role id not found : %d", roleDTO.ID)
			}
			return err
		}
		entity.Roles = append(entity.Roles, *role)
	}
	return nil
}

func (s *UserService) publishEvent(action string, id uint, payload interface{}) {
	err := s.mqClient.PublishCatalogEvent(events.CatalogEvent{
		Entity:    "user",
		Action:    action,
		ID:        id,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("Failed to publish user %s event for id %d: %v", action, id, err)
	}
}
