package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"bakery-production/internal/http/request"
	"bakery-production/internal/http/response"
	"bakery-production/internal/service/production"
)

type AvailabilityResolver interface {
	Resolve(ctx context.Context, date string, excludeScheduleID int64) (*production.Availability, error)
}

// GetAvailability lists bakers, supervisors and equipment with their status on ?date=,
// ignoring the schedule given in ?exclude_schedule_id= (the one being edited).
func GetAvailability(log *slog.Logger, resolver AvailabilityResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.GetAvailability"

		exclude, err := request.QueryInt64(r, "exclude_schedule_id")
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		availability, err := resolver.Resolve(r.Context(), r.URL.Query().Get("date"), exclude)
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		render.JSON(w, r, availability)
	}
}
