package save

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"bakery-production/internal/http/response"
	"bakery-production/internal/service/production"
)

type ScheduleCreator interface {
	Create(ctx context.Context, req production.CreateScheduleRequest) (*production.ScheduleResult, error)
}

type Response struct {
	response.Response
	production.ScheduleResult
}

func SaveSchedule(log *slog.Logger, schedules ScheduleCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.SaveSchedule"

		var req production.CreateScheduleRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}

		res, err := schedules.Create(r.Context(), req)
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		log.Info("schedule created",
			slog.String("op", op),
			slog.Int64("schedule_id", res.ScheduleID),
			slog.Int("batch_number", res.BatchNumber),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Response:       response.OK("Schedule created successfully"),
			ScheduleResult: *res,
		})
	}
}
