package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"bakery-production/internal/http/request"
	"bakery-production/internal/http/response"
	"bakery-production/internal/storage"
)

type ScheduleProvider interface {
	Get(ctx context.Context, id int64) (*storage.Schedule, error)
	List(ctx context.Context, f storage.ScheduleFilter) ([]storage.Schedule, error)
}

type ListResponse struct {
	Success   bool               `json:"success"`
	Schedules []storage.Schedule `json:"schedules"`
}

type ItemResponse struct {
	Success  bool              `json:"success"`
	Schedule *storage.Schedule `json:"schedule"`
}

// ListSchedules supports the date, from, to, recipe_id, status, sort and order query parameters.
func ListSchedules(log *slog.Logger, schedules ScheduleProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.ListSchedules"

		recipeID, err := request.QueryInt64(r, "recipe_id")
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		q := r.URL.Query()
		list, err := schedules.List(r.Context(), storage.ScheduleFilter{
			Date:     q.Get("date"),
			From:     q.Get("from"),
			To:       q.Get("to"),
			RecipeID: recipeID,
			Status:   storage.Status(q.Get("status")),
			Sort:     q.Get("sort"),
			Order:    q.Get("order"),
		})
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}
		if list == nil {
			list = []storage.Schedule{}
		}

		render.JSON(w, r, ListResponse{Success: true, Schedules: list})
	}
}

func GetSchedule(log *slog.Logger, schedules ScheduleProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.GetSchedule"

		id, err := request.PathID(r, "id")
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		sc, err := schedules.Get(r.Context(), id)
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		render.JSON(w, r, ItemResponse{Success: true, Schedule: sc})
	}
}
