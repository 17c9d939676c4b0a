package pagination

// Response is a generic paginated response wrapper.
// T is the type of data items (e.g., content DTOs).
//
// Example usage:
//
//	response := pagination.NewResponse(items, metadata)
//	// response is of type pagination.Response[ItemDTO]
type Response[T any] struct {
	Data       []T      `json:"data"`       // Visible prefix of the filtered set
	Pagination Metadata `json:"pagination"` // Pagination metadata (total, shown, etc.)
}

// NewResponse creates a new paginated response with data and metadata.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}
