package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"schedulepager/internal/calendar"
	"schedulepager/internal/domain"
)

// DefaultPageSize caps the sessions returned for one calendar page when the caller sets none.
const DefaultPageSize = 50

type calendarService struct {
	eventRepo      domain.EventRepository
	sessionRepo    domain.SessionRepository
	contextTimeout time.Duration
}

func NewCalendarService(eventRepo domain.EventRepository, sessionRepo domain.SessionRepository, timeout time.Duration) domain.CalendarService {
	return &calendarService{
		eventRepo:      eventRepo,
		sessionRepo:    sessionRepo,
		contextTimeout: timeout,
	}
}

// GetCalendarPage splits the event's schedule span into calendar pages and returns the
// sessions starting inside the requested one. Calendar errors are returned unwrapped so
// callers can match them with errors.As.
func (s *calendarService) GetCalendarPage(ctx context.Context, eventID string, query domain.CalendarQuery, params domain.PaginationParams) (*domain.CalendarPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	loc, err := event.Location()
	if err != nil {
		return nil, err
	}

	start, end, err := s.sessionRepo.GetScheduleSpan(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEmptySchedule) {
			return nil, domain.ErrEmptySchedule
		}
		return nil, fmt.Errorf("get schedule span: %w", err)
	}

	cal, err := calendar.New(query.Unit, calendar.Options{
		Period: calendar.Period{Start: start.In(loc), End: end.In(loc)},
		Order:  query.Order,
		Offset: query.Offset,
		Format: query.Format,
	})
	if err != nil {
		return nil, err
	}
	view, err := cal.Resolve(params.Request())
	if err != nil {
		return nil, err
	}
	label, err := view.Label("")
	if err != nil {
		return nil, err
	}

	limit := params.PageSize
	if limit <= 0 {
		limit = DefaultPageSize
	}
	sessions, err := s.sessionRepo.ListSessionsInRange(ctx, eventID, view.From, view.To, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	total, err := s.sessionRepo.CountSessionsInRange(ctx, eventID, view.From, view.To)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	rooms, err := s.sessionRepo.ListRoomsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}

	return &domain.CalendarPage{
		Event:    event,
		Unit:     cal.Unit(),
		Order:    cal.Order(),
		Label:    label,
		Format:   cal.DefaultFormat(),
		Initial:  cal.Initial(),
		Final:    cal.Final(),
		Pages:    cal.Pages(),
		Page:     view,
		Sessions: sessions,
		Rooms:    rooms,
		Total:    total,
	}, nil
}
