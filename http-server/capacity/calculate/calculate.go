package calculate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"bakery-production/internal/apperr"
	"bakery-production/internal/http/response"
	"bakery-production/internal/service/production"
)

type CapacityProvider interface {
	Capacity(ctx context.Context, recipeID int64, orderVolume int) (production.Capacity, error)
}

type Request struct {
	OrderVolume int      `json:"order_volume"`
	BatchSize   *float64 `json:"batch_size,omitempty"`
	RecipeID    int64    `json:"recipe_id,omitempty"`
}

type Response struct {
	response.Response
	production.Capacity
}

// CalculateCapacity answers how many batches an order needs, from an explicit batch size or
// from the recipe's.
func CalculateCapacity(log *slog.Logger, provider CapacityProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.capacity.CalculateCapacity"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}

		var (
			capacity production.Capacity
			err      error
		)
		switch {
		case req.BatchSize != nil:
			capacity, err = production.CalculateCapacity(req.OrderVolume, *req.BatchSize)
		case req.RecipeID > 0:
			capacity, err = provider.Capacity(r.Context(), req.RecipeID, req.OrderVolume)
		default:
			err = apperr.Validation("batch_size or recipe_id is required")
		}
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		render.JSON(w, r, Response{Response: response.OK(""), Capacity: capacity})
	}
}
