package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"schedulepager/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, every call returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetByEventCode(ctx context.Context, eventCode string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	code := strings.ToLower(strings.TrimSpace(eventCode))
	for _, e := range f.byID {
		if e.EventCode == code {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// fakeSessionRepo is an in-memory SessionRepository for tests.
type fakeSessionRepo struct {
	rooms            []*domain.Room
	sessions         []*domain.Session
	roomID           int
	sessID           int
	createRoomErr    error
	createSessionErr error
	spanErr          error
	listErr          error
	lastLimit        int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{roomID: 1, sessID: 1}
}

func (f *fakeSessionRepo) CreateRoom(ctx context.Context, r *domain.Room) error {
	if f.createRoomErr != nil {
		return f.createRoomErr
	}
	r.ID = fmt.Sprintf("room-%d", f.roomID)
	f.roomID++
	f.rooms = append(f.rooms, r)
	return nil
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, s *domain.Session) error {
	if f.createSessionErr != nil {
		return f.createSessionErr
	}
	s.ID = fmt.Sprintf("sess-%d", f.sessID)
	f.sessID++
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *fakeSessionRepo) GetRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	for _, r := range f.rooms {
		if r.ID == roomID {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSessionRepo) ListRoomsByEventID(ctx context.Context, eventID string) ([]*domain.Room, error) {
	var out []*domain.Room
	for _, r := range f.rooms {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) eventSessions(eventID string) []*domain.Session {
	var out []*domain.Session
	for _, s := range f.sessions {
		if r, _ := f.GetRoomByID(context.Background(), s.RoomID); r != nil && r.EventID == eventID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

func (f *fakeSessionRepo) GetScheduleSpan(ctx context.Context, eventID string) (time.Time, time.Time, error) {
	if f.spanErr != nil {
		return time.Time{}, time.Time{}, f.spanErr
	}
	sessions := f.eventSessions(eventID)
	if len(sessions) == 0 {
		return time.Time{}, time.Time{}, domain.ErrEmptySchedule
	}
	start, end := sessions[0].StartTime, sessions[0].EndTime
	for _, s := range sessions[1:] {
		if s.EndTime.After(end) {
			end = s.EndTime
		}
	}
	return start, end, nil
}

func (f *fakeSessionRepo) inRange(eventID string, from, to time.Time) []*domain.Session {
	var out []*domain.Session
	for _, s := range f.eventSessions(eventID) {
		if !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeSessionRepo) ListSessionsInRange(ctx context.Context, eventID string, from, to time.Time, limit int) ([]*domain.Session, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.lastLimit = limit
	out := f.inRange(eventID, from, to)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSessionRepo) CountSessionsInRange(ctx context.Context, eventID string, from, to time.Time) (int, error) {
	return len(f.inRange(eventID, from, to)), nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byEmail   map[string]*domain.User
	userRoles map[string][]string
	nextID    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:   make(map[string]*domain.User),
		userRoles: make(map[string][]string),
		nextID:    1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) AssignRole(ctx context.Context, userID, roleID string) error {
	f.userRoles[userID] = append(f.userRoles[userID], roleID)
	return nil
}

// fakeRoleRepo serves the seeded roles and reads assignments from a fakeUserRepo.
type fakeRoleRepo struct {
	users *fakeUserRepo
}

var seededRoles = map[string]*domain.Role{
	domain.RoleOrganizer: domain.NewRole("role-organizer", domain.RoleOrganizer),
	domain.RoleAttendee:  domain.NewRole("role-attendee", domain.RoleAttendee),
}

func (f *fakeRoleRepo) GetByCode(ctx context.Context, code string) (*domain.Role, error) {
	if r, ok := seededRoles[code]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRoleRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	var out []*domain.Role
	for _, id := range f.users.userRoles[userID] {
		for _, r := range seededRoles {
			if r.ID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}
