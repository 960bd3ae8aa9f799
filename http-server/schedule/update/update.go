package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"bakery-production/internal/http/request"
	"bakery-production/internal/http/response"
	"bakery-production/internal/service/production"
)

type ScheduleUpdater interface {
	Update(ctx context.Context, id int64, req production.UpdateScheduleRequest) (*production.ScheduleResult, error)
}

type Response struct {
	response.Response
	production.ScheduleResult
}

func UpdateSchedule(log *slog.Logger, schedules ScheduleUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.UpdateSchedule"

		id, err := request.PathID(r, "id")
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		var req production.UpdateScheduleRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}

		res, err := schedules.Update(r.Context(), id, req)
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		log.Info("schedule updated",
			slog.String("op", op),
			slog.Int64("schedule_id", id),
			slog.String("status", string(req.Status)),
		)

		render.JSON(w, r, Response{
			Response:       response.OK("Schedule updated successfully"),
			ScheduleResult: *res,
		})
	}
}
