package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"bakery-production/internal/http/request"
	"bakery-production/internal/http/response"
	"bakery-production/internal/storage"
)

type EquipmentStatusProvider interface {
	SetEquipmentStatus(ctx context.Context, id int64, status storage.EquipmentStatus) error
}

type Request struct {
	Status storage.EquipmentStatus `json:"status"`
}

// UpdateEquipmentStatus lets an operator mark equipment Available or Out of Order.
func UpdateEquipmentStatus(log *slog.Logger, update EquipmentStatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.UpdateEquipmentStatus"

		id, err := request.PathID(r, "id")
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			response.Error(w, r, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := update.SetEquipmentStatus(r.Context(), id, req.Status); err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		log.Info("equipment status updated",
			slog.String("op", op),
			slog.Int64("equipment_id", id),
			slog.String("status", string(req.Status)),
		)

		render.JSON(w, r, response.OK("Equipment status updated"))
	}
}
