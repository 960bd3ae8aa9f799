package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"bakery-production/internal/http/response"
	"bakery-production/internal/middleware/auth"
	"bakery-production/internal/storage"
)

type StatsProvider interface {
	Stats(ctx context.Context, role storage.Role) (*storage.DashboardStats, error)
}

type Response struct {
	Success bool `json:"success"`
	*storage.DashboardStats
}

func GetDashboard(log *slog.Logger, stats StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.GetDashboard"

		session, ok := auth.SessionFrom(r.Context())
		if !ok {
			response.Error(w, r, http.StatusUnauthorized, "session required")
			return
		}

		s, err := stats.Stats(r.Context(), session.Role)
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		render.JSON(w, r, Response{Success: true, DashboardStats: s})
	}
}
