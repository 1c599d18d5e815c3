package controllers

import (
	"context"
	"io"
	"log/slog"
	_ "time/tzdata"

	"schedulepager/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testEventID = "5f2b8c1e-3a4d-4e6f-9a0b-1c2d3e4f5a6b"
	testRoomID  = "0b1c2d3e-4f5a-4b6c-8d7e-9f0a1b2c3d4e"
)

// fakeScheduleService implements domain.ScheduleService for handler tests.
type fakeScheduleService struct {
	err          error
	event        *domain.Event
	rooms        []*domain.Room
	events       []*domain.Event
	lastEvent    *domain.Event
	lastEventID  string
	lastOwnerID  string
	lastRoomName string
	lastSession  *domain.Session
}

func (f *fakeScheduleService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.lastEvent = event
	if f.err != nil {
		return f.err
	}
	event.ID = testEventID
	if event.EventCode == "" {
		event.EventCode = "abcd"
	}
	return nil
}

func (f *fakeScheduleService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, []*domain.Room, error) {
	f.lastEventID = eventID
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.event, f.rooms, nil
}

func (f *fakeScheduleService) ListEventsByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	f.lastOwnerID = ownerID
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeScheduleService) CreateRoom(ctx context.Context, eventID, ownerID, name string) (*domain.Room, error) {
	f.lastEventID, f.lastOwnerID, f.lastRoomName = eventID, ownerID, name
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Room{ID: testRoomID, EventID: eventID, Name: name}, nil
}

func (f *fakeScheduleService) CreateSession(ctx context.Context, eventID, ownerID string, session *domain.Session) error {
	f.lastEventID, f.lastOwnerID, f.lastSession = eventID, ownerID, session
	if f.err != nil {
		return f.err
	}
	session.ID = "sess-1"
	return nil
}

// fakeCalendarService implements domain.CalendarService for handler tests.
type fakeCalendarService struct {
	page       *domain.CalendarPage
	err        error
	lastID     string
	lastQuery  domain.CalendarQuery
	lastParams domain.PaginationParams
}

func (f *fakeCalendarService) GetCalendarPage(ctx context.Context, eventID string, query domain.CalendarQuery, params domain.PaginationParams) (*domain.CalendarPage, error) {
	f.lastID, f.lastQuery, f.lastParams = eventID, query, params
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	user      *domain.User
	token     string
	err       error
	lastEmail string
	lastRole  string
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, name, role string) (*domain.User, error) {
	f.lastEmail, f.lastRole = email, role
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	f.lastEmail = email
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}
