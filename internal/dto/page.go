package dto

// Page is one page of a paged listing.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// NewPage wraps a slice of content into a Page with the derived page count.
func NewPage[T any](content []T, totalElements int64, number, size int) Page[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int(totalElements) / size
		if int(totalElements)%size != 0 {
			totalPages++
		}
	}
	return Page[T]{
		Content:       content,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		Number:        number,
		Size:          size,
	}
}
