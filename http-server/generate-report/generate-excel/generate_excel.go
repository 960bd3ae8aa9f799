package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"bakery-production/internal/apperr"
	"bakery-production/internal/http/response"
	"bakery-production/internal/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, from, to string) ([]byte, error)
}

// GenerateReportExcel streams the schedule report for ?from=&to=. The range defaults to the
// first day of the current month through today.
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return generateReport(log, gen, time.Now)
}

func generateReport(log *slog.Logger, gen GenerateExcelHandler, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GenerateReportExcel"

		today := now()
		startOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

		from, err := dateParam(r, "from", startOfMonth)
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}
		to, err := dateParam(r, "to", today)
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		excelBytes, err := gen.GenerateExcel(r.Context(), from, to)
		if err != nil {
			response.Fail(w, r, log, op, err)
			return
		}

		fileName := fmt.Sprintf("Production_Report_%s_%s.xlsx", from, to)

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Header().Set("Content-Length", strconv.Itoa(len(excelBytes)))
		if _, err := w.Write(excelBytes); err != nil {
			log.Error("failed to write report", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}

func dateParam(r *http.Request, name string, fallback time.Time) (string, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback.Format(storage.DateLayout), nil
	}
	if _, err := time.Parse(storage.DateLayout, raw); err != nil {
		return "", apperr.Validation("%s must be in YYYY-MM-DD format", name)
	}
	return raw, nil
}
