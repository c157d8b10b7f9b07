package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/export"
	"github.com/clocklabs/timeclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ExportHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

type ExportHandlerImpl struct {
	exportService export.Service
}

func NewExportHandler(exportService export.Service) ExportHandler {
	return &ExportHandlerImpl{exportService: exportService}
}

// Create implements ExportHandler.
func (h *ExportHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq export.CreateExportRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create export decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	createResp, err := h.exportService.CreateExport(r.Context(), createReq)
	if err != nil {
		slog.Error("Create export service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Accepted(w, "Export job queued", createResp)
}

// Status implements ExportHandler.
func (h *ExportHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	statusResp, err := h.exportService.GetExportStatus(r.Context(), jobID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, statusResp)
}
