package domain

import (
	"context"
	"time"
)

// Room represents a physical room or track at the event
// swagger:model Room
type Room struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRoom returns a new Room with the given fields. ID is typically set by the repository on create.
func NewRoom(eventID, name string, createdAt, updatedAt time.Time) *Room {
	return &Room{
		EventID:   eventID,
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Session represents a conference session or talk
// swagger:model Session
type Session struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"room_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSession returns a new Session with the given fields. ID is typically set by the repository on create.
func NewSession(roomID, title, description string, startTime, endTime, createdAt, updatedAt time.Time) *Session {
	return &Session{
		RoomID:      roomID,
		Title:       title,
		Description: description,
		StartTime:   startTime,
		EndTime:     endTime,
		Tags:        []string{},
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// SessionRepository defines the interface for session and room storage.
// Range queries select sessions whose start time falls in [from, to).
type SessionRepository interface {
	CreateRoom(ctx context.Context, room *Room) error
	CreateSession(ctx context.Context, session *Session) error
	GetRoomByID(ctx context.Context, roomID string) (*Room, error)
	ListRoomsByEventID(ctx context.Context, eventID string) ([]*Room, error)
	// GetScheduleSpan returns the earliest start and latest end of the event's sessions,
	// or ErrEmptySchedule when the event has none.
	GetScheduleSpan(ctx context.Context, eventID string) (start, end time.Time, err error)
	ListSessionsInRange(ctx context.Context, eventID string, from, to time.Time, limit int) ([]*Session, error)
	CountSessionsInRange(ctx context.Context, eventID string, from, to time.Time) (int, error)
}
