package handlers

import (
	"net/http"

	"invoiceapp/internal/httpx"
	"invoiceapp/internal/services"
)

const reportNotFound = "Report not found"

type ReportHandler struct {
	Svc *services.ReportService
}

func NewReportHandler(svc *services.ReportService) *ReportHandler {
	return &ReportHandler{Svc: svc}
}

// List: GET /api/reports
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}
	reports, err := h.Svc.List(uid)
	if err != nil {
		writeServiceError(w, err, reportNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"reports": reports})
}

// Generate: POST /api/reports/generate
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}
	data, err := decodeJSON(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	report, err := h.Svc.Generate(uid,
		stringValue(data, "report_type"),
		stringValue(data, "start_date"),
		stringValue(data, "end_date"))
	if err != nil {
		writeServiceError(w, err, reportNotFound)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message": "Report generated successfully",
		"report":  report,
	})
}

// Dashboard: GET /api/reports/dashboard
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}
	dashboard, err := h.Svc.Dashboard(uid)
	if err != nil {
		writeServiceError(w, err, reportNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, dashboard)
}

// Delete: DELETE /api/reports/{id}
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, reportNotFound)
		return
	}
	if err := h.Svc.Delete(uid, id); err != nil {
		writeServiceError(w, err, reportNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Report deleted successfully"})
}
