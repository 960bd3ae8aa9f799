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

type BatchDeleter interface {
	Delete(ctx context.Context, id int64) error
}

type Request struct {
	BatchID int64 `json:"batch_id"`
}

func DeleteBatch(log *slog.Logger, batches BatchDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.batch.DeleteBatch"

		id, err := request.PathID(r, "id")
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		remove(w, r, log, op, batches, id)
	}
}

// DeleteBatchByBody reads the batch id from a JSON body.
func DeleteBatchByBody(log *slog.Logger, batches BatchDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.batch.DeleteBatchByBody"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.BatchID <= 0 {
			response.Fail(w, r, log, op, apperr.Validation("batch_id is required"))
			return
		}

		remove(w, r, log, op, batches, req.BatchID)
	}
}

func remove(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, batches BatchDeleter, id int64) {
	if err := batches.Delete(r.Context(), id); err != nil {
		response.Fail(w, r, log, op, err)
		return
	}

	log.Info("batch deleted", slog.String("op", op), slog.Int64("batch_id", id))

	render.JSON(w, r, response.OK("Batch deleted successfully"))
}
