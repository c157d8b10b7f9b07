package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/kiosk"
	"github.com/clocklabs/timeclock-backend-go/internal/handler/http/response"
)

type KioskHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
}

type KioskHandlerImpl struct {
	kioskService kiosk.Service
}

func NewKioskHandler(kioskService kiosk.Service) KioskHandler {
	return &KioskHandlerImpl{kioskService: kioskService}
}

// Punch implements KioskHandler. The request body is never logged because
// it carries the raw badge id.
func (h *KioskHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	var punchReq kiosk.PunchRequest

	if err := json.NewDecoder(r.Body).Decode(&punchReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	punchResp, err := h.kioskService.Punch(r.Context(), punchReq)
	if err != nil {
		slog.Error("Kiosk punch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, punchResp)
}
