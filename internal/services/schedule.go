package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"schedulepager/internal/domain"
)

// ErrInvalidSessionTime is returned when a session does not end after it starts.
var ErrInvalidSessionTime = errors.New("session end time must be after start time")

type scheduleService struct {
	eventRepo      domain.EventRepository
	sessionRepo    domain.SessionRepository
	contextTimeout time.Duration
	newEventCode   func() (string, error)
}

func NewScheduleService(eventRepo domain.EventRepository, sessionRepo domain.SessionRepository, timeout time.Duration) domain.ScheduleService {
	return &scheduleService{
		eventRepo:      eventRepo,
		sessionRepo:    sessionRepo,
		contextTimeout: timeout,
		newEventCode:   generateEventCode,
	}
}

func (s *scheduleService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OwnerID == "" {
		return fmt.Errorf("event owner is required")
	}
	if event.Timezone == "" {
		event.Timezone = domain.DefaultTimezone
	}
	if _, err := event.Location(); err != nil {
		return err
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if event.EventCode == "" {
		code, err := s.freeEventCode(ctx)
		if err != nil {
			return err
		}
		event.EventCode = code
	} else {
		event.EventCode = strings.ToLower(event.EventCode)
		taken, err := s.eventCodeTaken(ctx, event.EventCode)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrDuplicateEventCode
		}
	}

	return s.eventRepo.Create(ctx, event)
}

// freeEventCode draws random codes until one is not used by another event.
func (s *scheduleService) freeEventCode(ctx context.Context) (string, error) {
	for range maxEventCodeAttempts {
		code, err := s.newEventCode()
		if err != nil {
			return "", fmt.Errorf("generate event code: %w", err)
		}
		taken, err := s.eventCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("no free event code after %d attempts", maxEventCodeAttempts)
}

func (s *scheduleService) eventCodeTaken(ctx context.Context, code string) (bool, error) {
	_, err := s.eventRepo.GetByEventCode(ctx, code)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("look up event code: %w", err)
	}
}

const (
	eventCodeLength      = 4
	maxEventCodeAttempts = 5
)

var eventCodeAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

func generateEventCode() (string, error) {
	b := make([]rune, eventCodeLength)
	max := big.NewInt(int64(len(eventCodeAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = eventCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}

func (s *scheduleService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, []*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}

	rooms, err := s.sessionRepo.ListRoomsByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list rooms: %w", err)
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	return event, rooms, nil
}

func (s *scheduleService) ListEventsByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *scheduleService) CreateRoom(ctx context.Context, eventID, ownerID, name string) (*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.ownedEvent(ctx, eventID, ownerID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("room name is required")
	}
	now := time.Now()
	room := domain.NewRoom(eventID, name, now, now)
	if err := s.sessionRepo.CreateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

// CreateSession adds a session to one of the event's rooms.
func (s *scheduleService) CreateSession(ctx context.Context, eventID, ownerID string, session *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.ownedEvent(ctx, eventID, ownerID); err != nil {
		return err
	}
	if !session.EndTime.After(session.StartTime) {
		return ErrInvalidSessionTime
	}
	room, err := s.sessionRepo.GetRoomByID(ctx, session.RoomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get room: %w", err)
	}
	if room.EventID != eventID {
		return domain.ErrNotFound
	}

	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.Tags == nil {
		session.Tags = []string{}
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *scheduleService) ownedEvent(ctx context.Context, eventID, ownerID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}
