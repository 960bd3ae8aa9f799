package delete

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"bakery-production/internal/apperr"
	"bakery-production/internal/http/request"
	"bakery-production/internal/http/response"
)

type ScheduleDeleter interface {
	Delete(ctx context.Context, id int64) error
}

// Request is the body of the form-style delete endpoint.
type Request struct {
	ScheduleID int64 `json:"schedule_id"`
}

func DeleteSchedule(log *slog.Logger, schedules ScheduleDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.DeleteSchedule"

		id, err := request.PathID(r, "id")
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		remove(w, r, log, op, schedules, id)
	}
}

// DeleteScheduleByBody reads the schedule id from a JSON body.
func DeleteScheduleByBody(log *slog.Logger, schedules ScheduleDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.DeleteScheduleByBody"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.ScheduleID <= 0 {
			response.Fail(w, r, log, op, apperr.Validation("schedule_id is required"))
			return
		}

		remove(w, r, log, op, schedules, req.ScheduleID)
	}
}

func remove(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, schedules ScheduleDeleter, id int64) {
	if err := schedules.Delete(r.Context(), id); err != nil {
		response.Fail(w, r, log, op, err)
		return
	}

	log.Info("schedule deleted", slog.String("op", op), slog.Int64("schedule_id", id))

	render.JSON(w, r, response.OK("Schedule deleted successfully"))
}
