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

type BatchUpdater interface {
	Update(ctx context.Context, id int64, req production.UpdateBatchRequest) error
}

func UpdateBatch(log *slog.Logger, batches BatchUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.batch.UpdateBatch"

		id, err := request.PathID(r, "id")
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		var req production.UpdateBatchRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := batches.Update(r.Context(), id, req); err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		log.Info("batch updated",
			slog.String("op", op),
			slog.Int64("batch_id", id),
			slog.String("status", string(req.Status)),
		)

		render.JSON(w, r, response.OK("Batch updated successfully"))
	}
}
