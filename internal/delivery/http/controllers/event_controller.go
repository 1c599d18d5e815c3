package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"schedulepager/internal/delivery/http/helpers"
	"schedulepager/internal/delivery/http/middleware"
	"schedulepager/internal/domain"
	"schedulepager/internal/services"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name      string `json:"name" validate:"required"`
	EventCode string `json:"event_code" validate:"omitempty,alphanum,max=32"`
	Timezone  string `json:"timezone" validate:"omitempty,timezone"`
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetEventByIDResponse is the response body for GET /events/{eventID}.
type GetEventByIDResponse struct {
	Event *domain.Event  `json:"event"`
	Rooms []*domain.Room `json:"rooms"`
}

// GetEventByIDSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventByIDSuccessResponse struct {
	Data  GetEventByIDResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// CreateRoomRequest is the request body for POST /events/{eventID}/rooms.
type CreateRoomRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateSessionRequest is the request body for POST /events/{eventID}/sessions.
type CreateSessionRequest struct {
	RoomID      string    `json:"room_id" validate:"required,uuid"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	Tags        []string  `json:"tags" validate:"omitempty,dive,required"`
}

// Validate implements Validator.
func (c CreateSessionRequest) Validate() []string {
	if !c.StartTime.IsZero() && !c.EndTime.IsZero() && !c.EndTime.After(c.StartTime) {
		return []string{"end_time must be after start_time"}
	}
	return nil
}

type ScheduleController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewScheduleController(logger *slog.Logger, svc domain.ScheduleService) *ScheduleController {
	return &ScheduleController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a new conference event. event_code is generated when omitted and timezone defaults to UTC. The authenticated user becomes the event owner.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *ScheduleController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	now := time.Now()
	event := domain.NewEvent(strings.TrimSpace(req.Name), req.EventCode, userID, req.Timezone, now, now)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListMyEvents godoc
// @Summary List my events
// @Description Returns the events owned by the authenticated user, newest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *ScheduleController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListEventsByOwner(r.Context(), userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Returns the event and its rooms.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventByIDSuccessResponse "data contains event and rooms"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *ScheduleController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID, err := helpers.ParseEventID(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	event, rooms, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, GetEventByIDResponse{Event: event, Rooms: rooms})
}

// CreateRoom godoc
// @Summary Add a room to an event
// @Description Creates a room (track) for the event. Only the event owner may add rooms. Creating a room that already exists returns it.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param room body CreateRoomRequest true "Room data"
// @Success 201 {object} helpers.APIResponse "data contains the room"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/rooms [post]
func (c *ScheduleController) CreateRoom(w http.ResponseWriter, r *http.Request) {
	eventID, err := helpers.ParseEventID(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	var req CreateRoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	room, err := c.Service.CreateRoom(r.Context(), eventID, userID, req.Name)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, room)
}

// CreateSession godoc
// @Summary Add a session to an event
// @Description Schedules a session in one of the event's rooms. Only the event owner may add sessions.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param session body CreateSessionRequest true "Session data"
// @Success 201 {object} helpers.APIResponse "data contains the session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/sessions [post]
func (c *ScheduleController) CreateSession(w http.ResponseWriter, r *http.Request) {
	eventID, err := helpers.ParseEventID(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	var req CreateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	now := time.Now()
	session := domain.NewSession(req.RoomID, strings.TrimSpace(req.Title), req.Description, req.StartTime, req.EndTime, now, now)
	if len(req.Tags) > 0 {
		session.Tags = req.Tags
	}
	if err := c.Service.CreateSession(r.Context(), eventID, userID, session); err != nil {
		if errors.Is(err, services.ErrInvalidSessionTime) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, session)
}
