package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"slotpark/internal/db"
	"slotpark/internal/entities"
	apperrors "slotpark/internal/errors"
	"slotpark/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func bookingFromRequest(req entities.BookingRequest) (*db.Booking, error) {
	date, err := entities.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	start, err := entities.ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	end, err := entities.ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return &db.Booking{
		SlotName:    req.SlotName,
		DriverName:  req.DriverName,
		DriverEmail: req.DriverEmail,
		DriverPhone: req.DriverPhone,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		UserID:      req.UserID,
		Cost:        req.Cost,
	}, nil
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", apperrors.ErrValidation, name)
	}
	return id, nil
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	booking, err := bookingFromRequest(req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	created, err := h.Service.CreateBooking(r.Context(), booking)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bookingResponse(created))
}

// Get handles GET /api/bookings/{id}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	booking, err := h.Service.BookingByID(id)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingResponse(booking))
}

// Update handles PUT /api/bookings/{id}.
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	patch, err := bookingFromRequest(req)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	updated, err := h.Service.UpdateBooking(id, patch)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingResponse(updated))
}

// UpdateStatus handles PUT /api/bookings/{id}/status.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	h.updateStatusField(w, r, h.Service.UpdateStatus)
}

// UpdatePrepayment handles PUT /api/bookings/{id}/prepayment.
func (h *BookingHandler) UpdatePrepayment(w http.ResponseWriter, r *http.Request) {
	h.updateStatusField(w, r, h.Service.UpdatePrepaymentStatus)
}

func (h *BookingHandler) updateStatusField(w http.ResponseWriter, r *http.Request, apply func(int, string) (*db.Booking, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	var req entities.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	updated, err := apply(id, req.Status)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingResponse(updated))
}

// Checkout handles POST /api/bookings/{id}/checkout.
func (h *BookingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	var req entities.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	checkout, err := entities.ParseClock(req.CheckoutTime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.Service.Checkout(id, checkout)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingResponse(updated))
}

// ListByUser handles GET /api/bookings?user_id=N.
func (h *BookingHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get("user_id"))
	if err != nil {
		http.Error(w, "Invalid user_id", http.StatusBadRequest)
		return
	}
	bookings, err := h.Service.BookingsByUser(userID)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingResponses(bookings))
}

// SlotNames handles GET /api/bookings/slots?date=YYYY-MM-DD.
func (h *BookingHandler) SlotNames(w http.ResponseWriter, r *http.Request) {
	date, err := entities.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}
	names, err := h.Service.SlotNamesForDate(date)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// List handles GET /admin/bookings.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.AllBookings()
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingResponses(bookings))
}

// ListPaid handles GET /admin/bookings/paid.
func (h *BookingHandler) ListPaid(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.PaidBookings()
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingResponses(bookings))
}

// Earnings handles GET /admin/earnings.
func (h *BookingHandler) Earnings(w http.ResponseWriter, r *http.Request) {
	total, err := h.Service.TotalEarnings()
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"total_earnings": total})
}

// ReleaseSlot handles POST /admin/slots/release.
func (h *BookingHandler) ReleaseSlot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
		Time string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	date, err := entities.ParseDate(req.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	at, err := entities.ParseClock(req.Time)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.ReleaseSlot(date, at); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Slot released"})
}
