package dto

import "catalog/internal/models"

// CategoryDTO is the transfer representation of a category. An ID of zero
// means the category has not been persisted yet; on insert any ID sent by
// the client is ignored.
type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name" validate:"required,min=10,max=60"`
}

// NewCategoryDTO builds a CategoryDTO from an entity.
func NewCategoryDTO(entity *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:   entity.ID,
		Name: entity.Name,
	}
}
