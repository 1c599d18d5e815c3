package domain

import (
	"context"
	"time"

	"schedulepager/internal/calendar"
)

// CalendarQuery selects how an event's schedule is split into calendar pages.
type CalendarQuery struct {
	Unit   calendar.Unit
	Order  calendar.Order
	Offset int
	Format string
}

// CalendarPage is one calendar page of an event's schedule with the sessions starting in it.
// swagger:model CalendarPage
type CalendarPage struct {
	Event    *Event             `json:"event"`
	Unit     calendar.Unit      `json:"unit" swaggertype:"string"`
	Order    calendar.Order     `json:"order" swaggertype:"string"`
	Label    string             `json:"label"`
	Format   string             `json:"format"`
	Initial  time.Time          `json:"initial"`
	Final    time.Time          `json:"final"`
	Pages    int                `json:"pages"`
	Page     *calendar.PageView `json:"page"`
	Sessions []*Session         `json:"sessions"`
	Rooms    []*Room            `json:"rooms"`
	Total    int                `json:"total"`
}

// CalendarService pages an event's schedule by calendar unit.
type CalendarService interface {
	GetCalendarPage(ctx context.Context, eventID string, query CalendarQuery, params PaginationParams) (*CalendarPage, error)
}
