package domain

import (
	"context"
	"fmt"
	"time"
)

// DefaultTimezone is used for events created without an IANA timezone.
const DefaultTimezone = "UTC"

// Event represents a conference event
// swagger:model Event
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	EventCode string    `json:"event_code"`
	OwnerID   string    `json:"owner_id"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name, eventCode, ownerID, timezone string, createdAt, updatedAt time.Time) *Event {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	return &Event{
		Name:      name,
		EventCode: eventCode,
		OwnerID:   ownerID,
		Timezone:  timezone,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Location loads the event's timezone. Calendar pages of the event are aligned in it.
func (e *Event) Location() (*time.Location, error) {
	tz := e.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return loc, nil
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByEventCode(ctx context.Context, eventCode string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
}

// ScheduleService defines the business logic for managing an event's schedule
type ScheduleService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*Event, []*Room, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]*Event, error)
	CreateRoom(ctx context.Context, eventID, ownerID, name string) (*Room, error)
	CreateSession(ctx context.Context, eventID, ownerID string, session *Session) error
}
