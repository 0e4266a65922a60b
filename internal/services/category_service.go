package services

import (
	"errors"
	"log"
	"time"

	"catalog/internal/dto"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/events"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo     repositories.CategoryRepository
	mqClient *events.Client
}

// NewCategoryService creates a new CategoryService. mqClient may be nil to
// disable event publishing.
func NewCategoryService(repo repositories.CategoryRepository, mqClient *events.Client) *CategoryService {
	return &CategoryService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// FindAllPaged returns one page of categories as DTOs.
func (s *CategoryService) FindAllPaged(page, size int, sort, direction string) (*dto.Page[dto.CategoryDTO], error) {
	categories, total, err := s.repo.FindAllPaged(page, size, sort, direction)
	if err != nil {
		return nil, err
	}

	content := make([]dto.CategoryDTO, 0, len(categories))
	for i := range categories {
		content = append(content, dto.NewCategoryDTO(&categories[i]))
	}
	result := dto.NewPage(content, total, page, size)
	return &result, nil
}

// FindByID returns a single category as a DTO.
func (s *CategoryService) FindByID(id uint) (*dto.CategoryDTO, error) {
	entity, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newNotFoundError("Entity not found")
		}
		return nil, err
	}
	d := dto.NewCategoryDTO(entity)
	return &d, nil
}

// Insert persists a new category built from the DTO, ignoring any client
// supplied id, and returns it with the store-assigned id.
func (s *CategoryService) Insert(categoryDTO dto.CategoryDTO) (*dto.CategoryDTO, error) {
	entity := models.Category{Name: categoryDTO.Name}
	if err := s.repo.Save(&entity); err != nil {
		return nil, err
	}

	s.publishEvent("created", entity.ID, &entity)

	d := dto.NewCategoryDTO(&entity)
	return &d, nil
}

// Update loads the category addressed by id, overwrites its mutable fields
// from the DTO and persists it. The id always comes from the path, never
// from the body.
func (s *CategoryService) Update(id uint, categoryDTO dto.CategoryDTO) (*dto.CategoryDTO, error) {
	entity, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newNotFoundError("Id not found : %d", id)
		}
		return nil, err
	}

	entity.Name = categoryDTO.Name
	if err := s.repo.Save(entity); err != nil {
		return nil, err
	}

	s.publishEvent("updated", entity.ID, entity)

	d := dto.NewCategoryDTO(entity)
	return &d, nil
}

// Delete removes the category addressed by id. A category still referenced
// by products fails with a DatabaseError, leaving the record intact.
func (s *CategoryService) Delete(id uint) error {
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

func (s *CategoryService) publishEvent(action string, id uint, payload interface{}) {
	err := s.mqClient.PublishCatalogEvent(events.CatalogEvent{
		Entity:    "category",
		Action:    action,
		ID:        id,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		// The mutation already committed; a lost event is log-worthy only.
		log.Printf("Failed to publish category %s event for id %d: %v", action, id, err)
	}
}
