package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"schedulepager/internal/domain"

	"github.com/lib/pq"
)

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &SessionRepository{
		DB: db,
	}
}

func (r *SessionRepository) CreateRoom(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (event_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, name) DO UPDATE
		SET updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, room.EventID, room.Name, room.CreatedAt, room.UpdatedAt).Scan(&room.ID)
}

func (r *SessionRepository) CreateSession(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (room_id, title, description, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	if err := r.DB.QueryRowContext(ctx, query, s.RoomID, s.Title, s.Description, s.StartTime, s.EndTime, s.CreatedAt, s.UpdatedAt).Scan(&s.ID); err != nil {
		return err
	}
	for _, tag := range s.Tags {
		if _, err := r.DB.ExecContext(ctx, `INSERT INTO session_tags (session_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`, s.ID, tag); err != nil {
			return err
		}
	}
	return nil
}

func (r *SessionRepository) GetRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	query := `
		SELECT id, event_id, name, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`
	room := &domain.Room{}
	err := r.DB.QueryRowContext(ctx, query, roomID).Scan(&room.ID, &room.EventID, &room.Name, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (r *SessionRepository) ListRoomsByEventID(ctx context.Context, eventID string) ([]*domain.Room, error) {
	query := `
		SELECT id, event_id, name, created_at, updated_at
		FROM rooms
		WHERE event_id = $1
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var rooms []*domain.Room
	for rows.Next() {
		room := &domain.Room{}
		if err := rows.Scan(&room.ID, &room.EventID, &room.Name, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *SessionRepository) GetScheduleSpan(ctx context.Context, eventID string) (time.Time, time.Time, error) {
	query := `
		SELECT MIN(s.start_time), MAX(s.end_time)
		FROM sessions s
		INNER JOIN rooms r ON r.id = s.room_id
		WHERE r.event_id = $1
	`
	var start, end sql.NullTime
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&start, &end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !start.Valid || !end.Valid {
		return time.Time{}, time.Time{}, domain.ErrEmptySchedule
	}
	return start.Time, end.Time, nil
}

func (r *SessionRepository) ListSessionsInRange(ctx context.Context, eventID string, from, to time.Time, limit int) ([]*domain.Session, error) {
	query := `
		SELECT s.id, s.room_id, s.title, s.description, s.start_time, s.end_time, s.created_at, s.updated_at
		FROM sessions s
		INNER JOIN rooms r ON r.id = s.room_id
		WHERE r.event_id = $1 AND s.start_time >= $2 AND s.start_time < $3
		ORDER BY s.start_time, s.room_id
		LIMIT $4
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]*domain.Session, 0)
	var sessionIDs []string
	for rows.Next() {
		sess := &domain.Session{}
		if err := rows.Scan(&sess.ID, &sess.RoomID, &sess.Title, &sess.Description, &sess.StartTime, &sess.EndTime, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, err
		}
		sess.Tags = []string{}
		sessions = append(sessions, sess)
		sessionIDs = append(sessionIDs, sess.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sessionIDs) == 0 {
		return sessions, nil
	}
	if err := r.attachTags(ctx, sessions, sessionIDs); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepository) attachTags(ctx context.Context, sessions []*domain.Session, sessionIDs []string) error {
	tagRows, err := r.DB.QueryContext(ctx, `SELECT session_id, tag FROM session_tags WHERE session_id = ANY($1)`, pq.Array(sessionIDs))
	if err != nil {
		return err
	}
	defer tagRows.Close()
	tagsBySession := make(map[string][]string)
	for tagRows.Next() {
		var sessionID, tag string
		if err := tagRows.Scan(&sessionID, &tag); err != nil {
			return err
		}
		tagsBySession[sessionID] = append(tagsBySession[sessionID], tag)
	}
	if err := tagRows.Err(); err != nil {
		return err
	}
	for _, sess := range sessions {
		if t := tagsBySession[sess.ID]; t != nil {
			sess.Tags = t
		}
	}
	return nil
}

func (r *SessionRepository) CountSessionsInRange(ctx context.Context, eventID string, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM sessions s
		INNER JOIN rooms r ON r.id = s.room_id
		WHERE r.event_id = $1 AND s.start_time >= $2 AND s.start_time < $3
	`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, eventID, from, to).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
