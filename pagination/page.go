package pagination

// Page is the output of a list command.
type Page[T any] struct {
	Items        []T `json:"items"`
	PageNumber   int `json:"page_number"`
	TotalPages   int `json:"total_pages"`
	TotalRecords int `json:"total_records"`
}

// NewPage builds the page returned for cmd from the fetched items and the total record count.
func NewPage[T any](cmd PagingCommand, items []T, totalRecords int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:        items,
		PageNumber:   cmd.PagingRequest().PageNumber,
		TotalPages:   TotalPages(cmd, totalRecords),
		TotalRecords: totalRecords,
	}
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.PageNumber+1 < p.TotalPages
}
