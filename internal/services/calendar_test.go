package services

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"schedulepager/internal/calendar"
	"schedulepager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSchedule stores an event with one room and sessions starting at the given instants.
func seedSchedule(t *testing.T, events *fakeEventRepo, sessions *fakeSessionRepo, timezone string, starts ...time.Time) *domain.Event {
	t.Helper()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ev := domain.NewEvent("Conf", "conf", "owner-1", timezone, created, created)
	require.NoError(t, events.Create(context.Background(), ev))
	room := domain.NewRoom(ev.ID, "Main", created, created)
	require.NoError(t, sessions.CreateRoom(context.Background(), room))
	for _, start := range starts {
		s := domain.NewSession(room.ID, "Talk", "", start, start.Add(time.Hour), created, created)
		require.NoError(t, sessions.CreateSession(context.Background(), s))
	}
	return ev
}

func TestCalendarService_GetCalendarPage(t *testing.T) {
	ctx := context.Background()
	events := newFakeEventRepo()
	sessions := newFakeSessionRepo()
	ev := seedSchedule(t, events, sessions, "UTC",
		time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 15, 16, 0, 0, 0, time.UTC),
	)
	svc := NewCalendarService(events, sessions, 5*time.Second)

	tests := []struct {
		name      string
		query     domain.CalendarQuery
		params    domain.PaginationParams
		wantPage  int
		wantLabel string
		wantFrom  time.Time
		wantCount int
		wantTotal int
		wantNext  *int
	}{
		{
			name:      "first month",
			query:     domain.CalendarQuery{Unit: calendar.Month},
			params:    domain.PaginationParams{Page: 1, PageSize: 50},
			wantPage:  1,
			wantLabel: "2025-03",
			wantFrom:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			wantCount: 2,
			wantTotal: 2,
			wantNext:  intRef(2),
		},
		{
			name:      "page size limits sessions but not total",
			query:     domain.CalendarQuery{Unit: calendar.Month},
			params:    domain.PaginationParams{Page: 1, PageSize: 1},
			wantPage:  1,
			wantLabel: "2025-03",
			wantFrom:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			wantCount: 1,
			wantTotal: 2,
			wantNext:  intRef(2),
		},
		{
			name:      "desc puts latest month first",
			query:     domain.CalendarQuery{Unit: calendar.Month, Order: calendar.Desc},
			params:    domain.PaginationParams{Page: 1},
			wantPage:  1,
			wantLabel: "2025-04",
			wantFrom:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantCount: 1,
			wantTotal: 1,
			wantNext:  intRef(2),
		},
		{
			name:      "cycle wraps past the last page",
			query:     domain.CalendarQuery{Unit: calendar.Month},
			params:    domain.PaginationParams{Page: 3, Cycle: true},
			wantPage:  1,
			wantLabel: "2025-03",
			wantFrom:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			wantCount: 2,
			wantTotal: 2,
			wantNext:  intRef(2),
		},
		{
			name:      "custom format",
			query:     domain.CalendarQuery{Unit: calendar.Month, Format: "%B %Y"},
			params:    domain.PaginationParams{Page: 2},
			wantPage:  2,
			wantLabel: "April 2025",
			wantFrom:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantCount: 1,
			wantTotal: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.GetCalendarPage(ctx, ev.ID, tt.query, tt.params)
			require.NoError(t, err)
			assert.Equal(t, ev, page.Event)
			assert.Equal(t, 2, page.Pages)
			assert.Equal(t, tt.wantPage, page.Page.Page)
			assert.Equal(t, tt.wantLabel, page.Label)
			wantFormat := tt.query.Format
			if wantFormat == "" {
				wantFormat = "%Y-%m"
			}
			assert.Equal(t, wantFormat, page.Format)
			assert.True(t, tt.wantFrom.Equal(page.Page.From), "from = %s", page.Page.From)
			assert.Len(t, page.Sessions, tt.wantCount)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Equal(t, tt.wantNext, page.Page.Next)
			require.Len(t, page.Rooms, 1)
			assert.Equal(t, "Main", page.Rooms[0].Name)
		})
	}
}

func TestCalendarService_DefaultPageSize(t *testing.T) {
	events := newFakeEventRepo()
	sessions := newFakeSessionRepo()
	ev := seedSchedule(t, events, sessions, "UTC", time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := NewCalendarService(events, sessions, time.Second)

	_, err := svc.GetCalendarPage(context.Background(), ev.ID, domain.CalendarQuery{Unit: calendar.Day}, domain.PaginationParams{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, sessions.lastLimit)
}

func TestCalendarService_EventTimezone(t *testing.T) {
	events := newFakeEventRepo()
	sessions := newFakeSessionRepo()
	// 03:00 UTC on March 1st is still February 28th in New York.
	ev := seedSchedule(t, events, sessions, "America/New_York",
		time.Date(2025, 3, 1, 3, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC),
	)
	svc := NewCalendarService(events, sessions, time.Second)

	page, err := svc.GetCalendarPage(context.Background(), ev.ID, domain.CalendarQuery{Unit: calendar.Day}, domain.PaginationParams{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, "2025-02-28", page.Label)
	assert.Equal(t, "America/New_York", page.Page.From.Location().String())
	assert.Equal(t, 1, page.Total)
}

func TestCalendarService_Errors(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	t.Run("unknown event", func(t *testing.T) {
		svc := NewCalendarService(newFakeEventRepo(), newFakeSessionRepo(), time.Second)
		_, err := svc.GetCalendarPage(ctx, "missing", domain.CalendarQuery{Unit: calendar.Month}, domain.PaginationParams{Page: 1})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("event without sessions", func(t *testing.T) {
		events := newFakeEventRepo()
		sessions := newFakeSessionRepo()
		ev := seedSchedule(t, events, sessions, "UTC")
		svc := NewCalendarService(events, sessions, time.Second)
		_, err := svc.GetCalendarPage(ctx, ev.ID, domain.CalendarQuery{Unit: calendar.Month}, domain.PaginationParams{Page: 1})
		require.ErrorIs(t, err, domain.ErrEmptySchedule)
	})

	t.Run("overflow without cycle", func(t *testing.T) {
		events := newFakeEventRepo()
		sessions := newFakeSessionRepo()
		ev := seedSchedule(t, events, sessions, "UTC", time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
		svc := NewCalendarService(events, sessions, time.Second)
		_, err := svc.GetCalendarPage(ctx, ev.ID, domain.CalendarQuery{Unit: calendar.Month}, domain.PaginationParams{Page: 2})
		var overflow *calendar.OverflowError
		require.ErrorAs(t, err, &overflow)
		assert.Equal(t, 1, overflow.Last)
	})

	t.Run("invalid offset", func(t *testing.T) {
		events := newFakeEventRepo()
		sessions := newFakeSessionRepo()
		ev := seedSchedule(t, events, sessions, "UTC", time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
		svc := NewCalendarService(events, sessions, time.Second)
		_, err := svc.GetCalendarPage(ctx, ev.ID, domain.CalendarQuery{Unit: calendar.Week, Offset: 9}, domain.PaginationParams{Page: 1})
		assert.True(t, calendar.IsValidation(err))
	})

	t.Run("span lookup fails", func(t *testing.T) {
		events := newFakeEventRepo()
		sessions := newFakeSessionRepo()
		ev := seedSchedule(t, events, sessions, "UTC", time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
		sessions.spanErr = dbErr
		svc := NewCalendarService(events, sessions, time.Second)
		_, err := svc.GetCalendarPage(ctx, ev.ID, domain.CalendarQuery{Unit: calendar.Month}, domain.PaginationParams{Page: 1})
		require.ErrorIs(t, err, dbErr)
	})
}

func intRef(n int) *int { return &n }
