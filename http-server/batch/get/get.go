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

type BatchProvider interface {
	Get(ctx context.Context, id int64) (*storage.Batch, error)
	List(ctx context.Context, f storage.BatchFilter) ([]storage.Batch, error)
}

type ListResponse struct {
	Success bool            `json:"success"`
	Batches []storage.Batch `json:"batches"`
}

type ItemResponse struct {
	Success bool           `json:"success"`
	Batch   *storage.Batch `json:"batch"`
}

func ListBatches(log *slog.Logger, batches BatchProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.batch.ListBatches"

		recipeID, err := request.QueryInt64(r, "recipe_id")
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		q := r.URL.Query()
		list, err := batches.List(r.Context(), storage.BatchFilter{
			RecipeID: recipeID,
			Status:   storage.Status(q.Get("status")),
			Date:     q.Get("date"),
			Sort:     q.Get("sort"),
			Order:    q.Get("order"),
		})
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}
		if list == nil {
			list = []storage.Batch{}
		}

		render.JSON(w, r, ListResponse{Success: true, Batches: list})
	}
}

func GetBatch(log *slog.Logger, batches BatchProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.batch.GetBatch"

		id, err := request.PathID(r, "id")
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		b, err := batches.Get(r.Context(), id)
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		render.JSON(w, r, ItemResponse{Success: true, Batch: b})
	}
}
