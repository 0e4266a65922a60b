package dto

import (
	"time"

	"catalog/internal/models"
)

// ProductDTO is the transfer representation of a product. Categories carries
// the referenced category ids on writes; on reads it is fully populated from
// the loaded association set.
type ProductDTO struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Price       float64       `json:"price" validate:"gte=0"`
	ImgURL      string        `json:"imgUrl" validate:"omitempty,url"`
	Date        time.Time     `json:"date"`
	Categories  []CategoryDTO `json:"categories"`
}

// NewProductDTO builds a ProductDTO from an entity, including its loaded
// category set.
func NewProductDTO(entity *models.Product) ProductDTO {
	d := ProductDTO{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		Price:       entity.Price,
		ImgURL:      entity.ImgURL,
		Date:        entity.Date,
		Categories:  make([]CategoryDTO, 0, len(entity.Categories)),
	}
	for i := range entity.Categories {
		d.Categories = append(d.Categories, NewCategoryDTO(&entity.Categories[i]))
	}
	return d
}
