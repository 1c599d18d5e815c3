package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"schedulepager/internal/calendar"
	"schedulepager/internal/delivery/http/helpers"
	"schedulepager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePage() *domain.CalendarPage {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	next := 2
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.CalendarPage{
		Event:   &domain.Event{ID: testEventID, Name: "Conf", EventCode: "conf", Timezone: "UTC"},
		Unit:    calendar.Month,
		Order:   calendar.Asc,
		Label:   "2025-03",
		Initial: from,
		Final:   from.AddDate(0, 2, 0),
		Pages:   2,
		Page:    &calendar.PageView{Page: 1, Last: 2, Next: &next, From: from, To: from.AddDate(0, 1, 0)},
		Sessions: []*domain.Session{
			{ID: "sess-1", RoomID: testRoomID, Title: "Keynote", StartTime: start, EndTime: start.Add(time.Hour), Tags: []string{}},
		},
		Total: 1,
	}
}

func TestCalendarController_GetCalendarPage(t *testing.T) {
	tests := []struct {
		name        string
		eventID     string
		query       string
		fakeErr     error
		wantStatus  int
		wantCode    string
		checkParams func(t *testing.T, f *fakeCalendarService)
	}{
		{
			name:       "defaults",
			eventID:    testEventID,
			wantStatus: http.StatusOK,
			checkParams: func(t *testing.T, f *fakeCalendarService) {
				assert.Equal(t, testEventID, f.lastID)
				assert.Equal(t, domain.CalendarQuery{Unit: calendar.Month, Order: calendar.Asc}, f.lastQuery)
				assert.Equal(t, domain.PaginationParams{Page: 1, PageSize: helpers.DefaultPageSize}, f.lastParams)
			},
		},
		{
			name:       "all parameters",
			eventID:    testEventID,
			query:      "?unit=WEEK&order=desc&offset=1&page=3&page_size=500&cycle=true&format=%25d+%25b",
			wantStatus: http.StatusOK,
			checkParams: func(t *testing.T, f *fakeCalendarService) {
				assert.Equal(t, domain.CalendarQuery{Unit: calendar.Week, Order: calendar.Desc, Offset: 1, Format: "%d %b"}, f.lastQuery)
				assert.Equal(t, domain.PaginationParams{Page: 3, PageSize: helpers.MaxPageSize, Cycle: true}, f.lastParams)
			},
		},
		{name: "bad event id", eventID: "nope", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "unknown unit", eventID: testEventID, query: "?unit=fortnight", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "bad order", eventID: testEventID, query: "?order=sideways", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "offset out of range", eventID: testEventID, query: "?unit=week&offset=7", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "page not a number", eventID: testEventID, query: "?page=two", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "zero page size", eventID: testEventID, query: "?page_size=0", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "cycle not a bool", eventID: testEventID, query: "?cycle=maybe", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "format without directive", eventID: testEventID, query: "?format=plain", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{
			name:       "calendar validation error",
			eventID:    testEventID,
			fakeErr:    &calendar.ValidationError{Field: "format", Value: "%Q", Reason: "unknown directive"},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "page overflow",
			eventID:    testEventID,
			query:      "?page=9",
			fakeErr:    &calendar.OverflowError{Page: 9, Last: 2},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodePageOverflow,
		},
		{name: "empty schedule", eventID: testEventID, fakeErr: domain.ErrEmptySchedule, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeEmptySchedule},
		{name: "unknown event", eventID: testEventID, fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
		{
			name:       "internal calendar error",
			eventID:    testEventID,
			fakeErr:    &calendar.InternalError{Reason: "unsupported unit"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
		{name: "service error", eventID: testEventID, fakeErr: errors.New("db"), wantStatus: http.StatusInternalServerError, wantCode: helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCalendarService{page: samplePage(), err: tt.fakeErr}
			ctrl := NewCalendarController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "/events/"+tt.eventID+"/calendar"+tt.query, nil)
			req.SetPathValue("eventID", tt.eventID)
			rr := httptest.NewRecorder()

			ctrl.GetCalendarPage(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			require.Nil(t, envelope.Error)
			tt.checkParams(t, fake)
		})
	}
}

func TestCalendarController_PageBody(t *testing.T) {
	ctrl := NewCalendarController(testLogger, &fakeCalendarService{page: samplePage()})
	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/calendar", nil)
	req.SetPathValue("eventID", testEventID)
	rr := httptest.NewRecorder()

	ctrl.GetCalendarPage(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Data struct {
			Unit  string `json:"unit"`
			Order string `json:"order"`
			Label string `json:"label"`
			Pages int    `json:"pages"`
			Page  struct {
				Page int  `json:"page"`
				Last int  `json:"last"`
				Next *int `json:"next"`
				Prev *int `json:"prev"`
			} `json:"page"`
			Sessions []domain.Session `json:"sessions"`
			Total    int              `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "month", body.Data.Unit)
	assert.Equal(t, "asc", body.Data.Order)
	assert.Equal(t, "2025-03", body.Data.Label)
	assert.Equal(t, 2, body.Data.Pages)
	assert.Equal(t, 1, body.Data.Page.Page)
	require.NotNil(t, body.Data.Page.Next)
	assert.Equal(t, 2, *body.Data.Page.Next)
	assert.Nil(t, body.Data.Page.Prev)
	require.Len(t, body.Data.Sessions, 1)
	assert.Equal(t, 1, body.Data.Total)
}

func TestCalendarController_GetCalendarICS(t *testing.T) {
	page := samplePage()
	page.Rooms = []*domain.Room{{ID: testRoomID, Name: "Hall A"}}
	calendarSvc := &fakeCalendarService{page: page}
	ctrl := NewCalendarController(testLogger, calendarSvc)
	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/calendar.ics", nil)
	req.SetPathValue("eventID", testEventID)
	rr := httptest.NewRecorder()

	ctrl.GetCalendarICS(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename="conf-2025-03.ics"`)
	body := rr.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "SUMMARY:Keynote")
	assert.Contains(t, body, "LOCATION:Hall A")
	assert.Equal(t, testEventID, calendarSvc.lastID)
}

func TestCalendarController_GetCalendarICSOverflow(t *testing.T) {
	ctrl := NewCalendarController(testLogger, &fakeCalendarService{err: &calendar.OverflowError{Page: 5, Last: 2}})
	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/calendar.ics?page=5", nil)
	req.SetPathValue("eventID", testEventID)
	rr := httptest.NewRecorder()

	ctrl.GetCalendarICS(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodePageOverflow, envelope.Error.Code)
	assert.Contains(t, envelope.Error.Message, "last page is 2")
}
