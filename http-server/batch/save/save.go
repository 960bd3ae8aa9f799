package save

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"bakery-production/internal/http/response"
	"bakery-production/internal/service/production"
)

type BatchCreator interface {
	Create(ctx context.Context, req production.CreateBatchRequest) (int64, error)
}

type Response struct {
	response.Response
	BatchID int64 `json:"batch_id"`
}

func SaveBatch(log *slog.Logger, batches BatchCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.batch.SaveBatch"

		var req production.CreateBatchRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}

		id, err := batches.Create(r.Context(), req)
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		log.Info("batch created",
			slog.String("op", op),
			slog.Int64("batch_id", id),
			slog.Int64("schedule_id", req.ScheduleID),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Response: response.OK("Batch created successfully"),
			BatchID:  id,
		})
	}
}
