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

// ProductService handles business logic related to products.
type ProductService struct {
	repo         repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	mqClient     *events.Client
}

// NewProductService creates a new ProductService. mqClient may be nil to
// disable event publishing.
func NewProductService(repo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, mqClient *events.Client) *ProductService {
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
		mqClient:     mqClient,
	}
}

// FindAllPaged returns one page of products as DTOs, categories included.
func (s *ProductService) FindAllPaged(page, size int, sort, direction string) (*dto.Page[dto.ProductDTO], error) {
	products, total, err := s.repo.FindAllPaged(page, size, sort, direction)
	if err != nil {
		return nil, err
	}

	content := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		content = append(content, dto.NewProductDTO(&products[i]))
	}
	result := dto.NewPage(content, total, page, size)
	return &result, nil
}

// FindByID returns a single product as a DTO with its category set resolved.
func (s *ProductService) FindByID(id uint) (*dto.ProductDTO, error) {
	entity, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newNotFoundError("Entity not found")
		}
		return nil, err
	}
	d := dto.NewProductDTO(entity)
	return &d, nil
}

// Insert persists a new product built from the DTO, ignoring any client
// supplied id, and returns it with the store-assigned id. A zero date is
// filled with the insertion time.
func (s *ProductService) Insert(productDTO dto.ProductDTO) (*dto.ProductDTO, error) {
	var entity models.Product
	if err := s.copyDTOToEntity(&entity, productDTO); err != nil {
		return nil, err
	}
	if entity.Date.IsZero() {
		entity.Date = time.Now()
	}

	if err := s.repo.Save(&entity); err != nil {
		return nil, err
	}

	s.publishEvent("created", entity.ID, &entity)

	d := dto.NewProductDTO(&entity)
	return &d, nil
}

// Update loads the product addressed by id, overwrites its mutable fields
// and category set from the DTO and persists it.
func (s *ProductService) Update(id uint, productDTO dto.ProductDTO) (*dto.ProductDTO, error) {
	entity, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newNotFoundError("Id not found : %d", id)
		}
		return nil, err
	}

	if err := s.copyDTOToEntity(entity, productDTO); err != nil {
		return nil, err
	}
	if err := s.repo.Save(entity); err != nil {
		return nil, err
	}

	s.publishEvent("updated", entity.ID, entity)

	d := dto.NewProductDTO(entity)
	return &d, nil
}

// Delete removes the product addressed by id.
func (s *ProductService) Delete(id uint) error {
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
// category set: the existing set is dropped and every referenced id is
// resolved through the category store. An unresolvable id fails the whole
// operation before anything is persisted.
func (s *ProductService) copyDTOToEntity(entity *models.Product, productDTO dto.ProductDTO) error {
	entity.Name = productDTO.Name
	entity.Description = productDTO.Description
	entity.Price = productDTO.Price
	entity.ImgURL = productDTO.ImgURL
	if !productDTO.Date.IsZero() {
		entity.Date = productDTO.Date
	}

	entity.Categories = entity.Categories[:0]
	for _, categoryDTO := range productDTO.Categories {
		category, err := s.categoryRepo.FindByID(categoryDTO.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return newNotFoundError("Category id not found : %d", categoryDTO.ID)
			}
			return err
		}
		entity.Categories = append(entity.Categories, *category)
	}
	return nil
}

func (s *ProductService) publishEvent(action string, id uint, payload interface{}) {
	err := s.mqClient.PublishCatalogEvent(events.CatalogEvent{
		Entity:    "product",
		Action:    action,
		ID:        id,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("Failed to publish product %s event for id %d: %v", action, id, err)
	}
}
