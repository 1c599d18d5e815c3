package domain

import "schedulepager/internal/calendar"

// PaginationParams holds the page request for calendar listings.
// Page selects the calendar bucket; PageSize caps the sessions listed inside it.
type PaginationParams struct {
	Page     int
	PageSize int
	Cycle    bool
}

// Request converts the params into the calendar package's page request.
func (p PaginationParams) Request() calendar.PageRequest {
	return calendar.PageRequest{Page: p.Page, Size: p.PageSize, Cycle: p.Cycle}
}
