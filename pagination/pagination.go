// Package pagination provides the paging parameters carried by list commands
// and the arithmetic to turn them into query windows.
//
// Page numbers are zero-based. A nil page size means "everything on one page".
package pagination

import (
	"math"
)

// Unbounded is the page size used when a request carries none.
const Unbounded = math.MaxInt32

// Request holds the paging parameters of a command.
type Request struct {
	PageNumber int  `json:"page_number" query:"page_number" validate:"gte=0"`
	PageSize   *int `json:"page_size"   query:"page_size"   validate:"omitempty,gte=1"`
}

// SortableRequest is a Request with an optional ordering.
type SortableRequest struct {
	Request

	SortProperty string `json:"sort_property" query:"sort_property"`
	Descending   bool   `json:"descending"    query:"descending"`
}

// PagingCommand is implemented by commands that carry paging parameters.
type PagingCommand interface {
	PagingRequest() Request
}

// PagingRequest lets a command embedding Request satisfy PagingCommand.
func (r Request) PagingRequest() Request {
	return r
}

// Size returns the page size, Unbounded when none was given.
func (r Request) Size() int {
	if r.PageSize == nil {
		return Unbounded
	}
	return *r.PageSize
}

// Skip returns the number of records before the requested page.
// It saturates at Unbounded instead of overflowing.
func Skip(cmd PagingCommand) int {
	req := cmd.PagingRequest()
	skip := int64(req.PageNumber) * int64(req.Size())
	if skip > Unbounded {
		return Unbounded
	}
	return int(skip)
}

// Take returns the number of records on the requested page.
func Take(cmd PagingCommand) int {
	return cmd.PagingRequest().Size()
}

// TotalPages returns the number of pages needed for totalRecords. It is at least 1.
func TotalPages(cmd PagingCommand, totalRecords int) int {
	size := cmd.PagingRequest().Size()
	pages := int(math.Ceil(float64(totalRecords) / float64(size)))
	return max(pages, 1)
}

// SizeOf is a helper for building a Request with a page size.
func SizeOf(n int) *int {
	return &n
}
