package shared

import (
	"net/http"
	"time"

	"pantry/internal/platform/datekey"
	"pantry/internal/transport/http/api"
	"pantry/internal/transport/http/middleware"
)

// DateKeyParam reads a YYYY-MM-DD query parameter. An absent value falls back
// to today; a malformed one writes the 400 itself and reports !ok.
func DateKeyParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, string, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		today := datekey.Today(time.Now())
		return today, datekey.Format(today), true
	}
	day, err := datekey.Parse(raw)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid date, expected YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return time.Time{}, "", false
	}
	return day, datekey.Format(day), true
}

// RequiredDateKeyParam is DateKeyParam without the today fallback.
func RequiredDateKeyParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, string, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", name+" is required", middleware.GetRequestID(r.Context()))
		return time.Time{}, "", false
	}
	day, err := datekey.Parse(raw)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid date, expected YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return time.Time{}, "", false
	}
	return day, datekey.Format(day), true
}
