package helpers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"schedulepager/internal/calendar"
	"schedulepager/internal/domain"
)

// WriteServiceError maps a service error to its HTTP status and error code.
// Unmapped errors are logged and answered with 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		validationErr *calendar.ValidationError
		overflowErr   *calendar.OverflowError
	)
	switch {
	case errors.As(err, &validationErr):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, validationErr.Error())
	case errors.As(err, &overflowErr):
		WriteJSONError(w, http.StatusNotFound, ErrCodePageOverflow,
			fmt.Sprintf("page %d is out of range, last page is %d", overflowErr.Page, overflowErr.Last))
	case errors.Is(err, domain.ErrEmptySchedule):
		WriteJSONError(w, http.StatusNotFound, ErrCodeEmptySchedule, "event has no sessions to paginate")
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrDuplicateEmail):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "email already registered")
	case errors.Is(err, domain.ErrDuplicateEventCode):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "event code already in use")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
