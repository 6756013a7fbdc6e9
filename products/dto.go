package products

// CreateRequest is the product creation payload. Both language variants of
// every localized field are required and the price must be positive.
type CreateRequest struct {
	Name        LocalizedText `json:"name" validate:"required"`
	Price       float64       `json:"price" example:"5" validate:"required,gt=0"`
	Category    LocalizedText `json:"category" validate:"required"`
	Subcategory LocalizedText `json:"subcategory" validate:"required"`
}

// Pagination describes one page of a paginated listing.
type Pagination struct {
	CurrentPage  int   `json:"currentPage" example:"1"`
	TotalPages   int64 `json:"totalPages" example:"3"`
	TotalItems   int64 `json:"totalItems" example:"25"`
	ItemsPerPage int   `json:"itemsPerPage" example:"10"`
}

// ListResponse carries one localized page of products.
type ListResponse struct {
	Products   []View     `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// ToggleResponse is returned by the like endpoint: a localized status
// message and the updated product.
type ToggleResponse struct {
	Message string `json:"message" example:"Product liked"`
	Product View   `json:"product"`
}
