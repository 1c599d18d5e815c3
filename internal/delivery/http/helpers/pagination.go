package helpers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"schedulepager/internal/calendar"
	"schedulepager/internal/domain"

	"github.com/google/uuid"
)

// Calendar query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
	DefaultUnit     = "month"
)

// calendarQueryParams is the raw query string of a calendar page request.
type calendarQueryParams struct {
	Unit     string `query:"unit" validate:"required,oneof=year month week day"`
	Order    string `query:"order" validate:"omitempty,oneof=asc desc"`
	Offset   int    `query:"offset"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size" validate:"gte=1"`
	Cycle    bool   `query:"cycle"`
	Format   string `query:"format" validate:"omitempty,contains=%"`
}

// ParseEventID reads the eventID path value and checks it is a UUID.
func ParseEventID(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.PathValue("eventID"))
	if raw == "" {
		return "", fmt.Errorf("missing eventID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("eventID must be a UUID")
	}
	return id.String(), nil
}

// ParseCalendarQuery reads unit, order, offset, page, page_size, cycle and format from the
// request query string. Missing values fall back to defaults; page_size is clamped to
// MaxPageSize. Page range checks are left to the calendar so overflow keeps its own error.
func ParseCalendarQuery(r *http.Request) (domain.CalendarQuery, domain.PaginationParams, error) {
	q := r.URL.Query()
	p := calendarQueryParams{
		Unit:     strings.ToLower(strings.TrimSpace(q.Get("unit"))),
		Order:    strings.ToLower(strings.TrimSpace(q.Get("order"))),
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Format:   q.Get("format"),
	}
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}

	var err error
	if p.Offset, err = intParam(q, "offset", 0); err != nil {
		return domain.CalendarQuery{}, domain.PaginationParams{}, err
	}
	if p.Page, err = intParam(q, "page", DefaultPage); err != nil {
		return domain.CalendarQuery{}, domain.PaginationParams{}, err
	}
	if p.PageSize, err = intParam(q, "page_size", DefaultPageSize); err != nil {
		return domain.CalendarQuery{}, domain.PaginationParams{}, err
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if s := q.Get("cycle"); s != "" {
		if p.Cycle, err = strconv.ParseBool(s); err != nil {
			return domain.CalendarQuery{}, domain.PaginationParams{}, fmt.Errorf("cycle must be a boolean")
		}
	}

	if errs := ValidateStruct(p); len(errs) > 0 {
		return domain.CalendarQuery{}, domain.PaginationParams{}, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	// Only week pages start on a weekday; other units ignore offset.
	if p.Unit == "week" && (p.Offset < 0 || p.Offset > 6) {
		return domain.CalendarQuery{}, domain.PaginationParams{}, fmt.Errorf("offset must be between 0 and 6")
	}

	unit, err := calendar.ParseUnit(p.Unit)
	if err != nil {
		return domain.CalendarQuery{}, domain.PaginationParams{}, err
	}
	order, err := calendar.ParseOrder(p.Order)
	if err != nil {
		return domain.CalendarQuery{}, domain.PaginationParams{}, err
	}
	query := domain.CalendarQuery{Unit: unit, Order: order, Offset: p.Offset, Format: p.Format}
	params := domain.PaginationParams{Page: p.Page, PageSize: p.PageSize, Cycle: p.Cycle}
	return query, params, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}
