package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/attendance"
	"github.com/clocklabs/timeclock-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Toggle(w http.ResponseWriter, r *http.Request)
	ToggleBreak(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Toggle implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	toggleResp, err := h.attendanceService.Toggle(r.Context())
	if err != nil {
		slog.Error("Toggle service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, toggleResp)
}

// ToggleBreak implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ToggleBreak(w http.ResponseWriter, r *http.Request) {
	var breakReq attendance.ToggleBreakRequest

	if err := json.NewDecoder(r.Body).Decode(&breakReq); err != nil {
		slog.Error("ToggleBreak decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	toggleResp, err := h.attendanceService.ToggleBreak(r.Context(), breakReq)
	if err != nil {
		slog.Error("ToggleBreak service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, toggleResp)
}

// ListMine implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	filter := attendance.MyEntriesFilter{
		Page:  getIntQueryParam(r, "page", 1),
		Limit: getIntQueryParam(r, "limit", 20),
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := r.URL.Query().Get("kind"); v != "" {
		filter.Kind = &v
	}
	if v := r.URL.Query().Get("state"); v != "" {
		filter.State = &v
	}

	listResp, err := h.attendanceService.ListMine(r.Context(), filter)
	if err != nil {
		slog.Error("ListMine service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, listResp.Entries, &response.Meta{
		Page:       listResp.Page,
		Limit:      listResp.Limit,
		TotalItems: listResp.TotalCount,
		TotalPages: listResp.TotalPages,
	})
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}
