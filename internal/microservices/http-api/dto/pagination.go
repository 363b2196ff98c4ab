package dto

// PageResponse is the envelope every paginated list returns.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPage[T any](data []T, total int64, page, limit int) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PageResponse[T]{Data: data, Total: total, Page: page, Limit: limit, TotalPages: pages}
}

type ErrorResponse struct {
	Error string `json:"error"`
}
