package api

import (
	"encoding/json"
	"net/http"
	"time"

	"slotpark/internal/entities"
	apperrors "slotpark/internal/errors"
	"slotpark/internal/service"
)

type SlotHandler struct {
	Service *service.SlotService
}

func NewSlotHandler(svc *service.SlotService) *SlotHandler {
	return &SlotHandler{Service: svc}
}

func parseWindow(req entities.SlotBookingRequest) (date, start, end time.Time, err error) {
	if date, err = entities.ParseDate(req.Date); err != nil {
		return
	}
	if start, err = entities.ParseClock(req.StartTime); err != nil {
		return
	}
	end, err = entities.ParseClock(req.EndTime)
	return
}

// ListAvailable handles GET /api/slotsing/available?date=YYYY-MM-DD.
func (h *SlotHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	date, err := entities.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	slots, err := h.Service.AvailableSlots(date)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	out := make([]entities.SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

// Check handles POST /api/slotsing/check.
func (h *SlotHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req entities.SlotBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	date, start, end, err := parseWindow(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	available, err := h.Service.CheckAvailability(req.SlotID, date, start, end)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	if available {
		writeText(w, msgSlotAvailable)
		return
	}
	writeText(w, msgSlotUnavailable)
}

// Book handles POST /api/slotsing/book.
func (h *SlotHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req entities.SlotBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	date, start, end, err := parseWindow(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	booked, err := h.Service.Book(r.Context(), req.SlotID, date, start, end)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	if booked {
		writeText(w, msgSlotBooked)
		return
	}
	writeText(w, msgSlotUnavailable)
}
