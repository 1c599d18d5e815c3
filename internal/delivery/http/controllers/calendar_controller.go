package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"schedulepager/internal/adapters/ics"
	"schedulepager/internal/delivery/http/helpers"
	"schedulepager/internal/domain"
)

// CalendarPageSuccessResponse is the success response envelope for GET /events/{eventID}/calendar (200).
type CalendarPageSuccessResponse struct {
	Data  *domain.CalendarPage `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// CalendarController serves an event's schedule one calendar page at a time.
type CalendarController struct {
	Logger   *slog.Logger
	Calendar domain.CalendarService
}

func NewCalendarController(logger *slog.Logger, cal domain.CalendarService) *CalendarController {
	return &CalendarController{
		Logger:   logger,
		Calendar: cal,
	}
}

// GetCalendarPage godoc
// @Summary Get one calendar page of an event schedule
// @Description Splits the span between the event's first and last session into year, month, week or day pages (in the event timezone) and returns the sessions starting in the requested page. Out-of-range pages return 404 page_overflow unless cycle is set, in which case they wrap around.
// @Tags calendar
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param unit query string false "Page unit" Enums(year, month, week, day) default(month)
// @Param order query string false "Page order" Enums(asc, desc) default(asc)
// @Param offset query int false "First weekday of week pages, 0 Sunday to 6 Saturday" default(0)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Maximum sessions listed in the page" default(50)
// @Param cycle query bool false "Wrap out-of-range pages" default(false)
// @Param format query string false "strftime label template, e.g. %B %Y"
// @Success 200 {object} controllers.CalendarPageSuccessResponse "data contains the page and its sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found, empty_schedule or page_overflow"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/calendar [get]
func (c *CalendarController) GetCalendarPage(w http.ResponseWriter, r *http.Request) {
	page, ok := c.resolve(w, r)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// GetCalendarICS godoc
// @Summary Export one calendar page as iCalendar
// @Description Same page selection as GET /events/{eventID}/calendar, rendered as a text/calendar feed with one VEVENT per session.
// @Tags calendar
// @Produce text/calendar
// @Param eventID path string true "Event ID (UUID)"
// @Param unit query string false "Page unit" Enums(year, month, week, day) default(month)
// @Param order query string false "Page order" Enums(asc, desc) default(asc)
// @Param offset query int false "First weekday of week pages" default(0)
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Maximum sessions listed in the page" default(50)
// @Param cycle query bool false "Wrap out-of-range pages" default(false)
// @Success 200 {string} string "iCalendar document"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found, empty_schedule or page_overflow"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/calendar.ics [get]
func (c *CalendarController) GetCalendarICS(w http.ResponseWriter, r *http.Request) {
	page, ok := c.resolve(w, r)
	if !ok {
		return
	}
	body, err := ics.EncodePage(page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", icsFilename(page)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (c *CalendarController) resolve(w http.ResponseWriter, r *http.Request) (*domain.CalendarPage, bool) {
	eventID, err := helpers.ParseEventID(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return nil, false
	}
	query, params, err := helpers.ParseCalendarQuery(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return nil, false
	}
	page, err := c.Calendar.GetCalendarPage(r.Context(), eventID, query, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return nil, false
	}
	return page, true
}

// icsFilename builds "<event code>-<label>.ics" keeping only filename-safe characters.
func icsFilename(page *domain.CalendarPage) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, page.Event.EventCode+"-"+page.Label)
	return safe + ".ics"
}
