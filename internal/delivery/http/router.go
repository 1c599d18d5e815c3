package http

import (
	"log/slog"
	"net/http"

	"schedulepager/internal/delivery/http/controllers"
	"schedulepager/internal/delivery/http/helpers"
	"schedulepager/internal/delivery/http/middleware"
	"schedulepager/internal/domain"

	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Auth     *controllers.AuthController
	Schedule *controllers.ScheduleController
	Calendar *controllers.CalendarController
}

// NewRouter initializes the HTTP router with all application routes and wraps it with
// request ID, panic recovery, request logging and CORS.
func NewRouter(logger *slog.Logger, verifier domain.TokenVerifier, allowedOrigins []string, c Controllers) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Events
	mux.HandleFunc("POST /events", auth(c.Schedule.CreateEvent))
	mux.HandleFunc("GET /events", auth(c.Schedule.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", c.Schedule.GetEventByID)
	mux.HandleFunc("POST /events/{eventID}/rooms", auth(c.Schedule.CreateRoom))
	mux.HandleFunc("POST /events/{eventID}/sessions", auth(c.Schedule.CreateSession))

	// Calendar pages are public so calendar clients can subscribe without a token.
	mux.HandleFunc("GET /events/{eventID}/calendar", c.Calendar.GetCalendarPage)
	mux.HandleFunc("GET /events/{eventID}/calendar.ics", c.Calendar.GetCalendarICS)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = mux
	h = middleware.CORS(allowedOrigins, h)
	h = chimw.Recoverer(h)
	h = middleware.LoggingMiddleware(logger, h)
	h = chimw.RequestID(h)
	return h
}
