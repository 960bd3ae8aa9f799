package response

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"bakery-production/internal/apperr"
)

// Response is the envelope of every JSON mutation reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func OK(msg string) Response {
	return Response{Success: true, Message: msg}
}

func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Response{Success: false, Message: msg})
}

// Fail logs err and replies with the status and client-safe message of its kind.
// Storage details stay in the log.
func Fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	status := apperr.HTTPStatus(err)

	attrs := []any{
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("kind", apperr.KindOf(err).String()),
		slog.String("error", err.Error()),
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", attrs...)
	} else {
		log.Info("request rejected", attrs...)
	}

	Error(w, r, status, apperr.Message(err))
}
