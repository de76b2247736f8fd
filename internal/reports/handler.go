package reports

import (
	"net/http"

	apperrors "turfly/pkg/errors"
	httputil "turfly/pkg/http"
	"turfly/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type ReportHandler struct {
	service ReportService
	log     *logger.Logger
}

func NewReportHandler(service ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log,
	}
}

// Daily serves GET /api/v1/reports/daily?owner_id=...&date=YYYY-MM-DD&tz=...
// The tz parameter is optional; the configured report zone applies when it
// is absent.
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	ownerID := query.Get("owner_id")
	date := query.Get("date")
	timeZone := query.Get("tz")

	if ownerID == "" || date == "" {
		err := apperrors.InvalidInput("Query parameters owner_id and date are required")
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Daily", "error", writeErr)
		}
		return
	}

	report, err := h.service.DailyReport(r.Context(), ownerID, date, timeZone)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Daily", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, report); err != nil {
		h.log.Error("failed to write success response", "handler", "Daily", "error", err)
	}
}

func (h *ReportHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/reports/daily", h.Daily)
}
