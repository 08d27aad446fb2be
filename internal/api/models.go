package api

import (
	"encoding/json"
	"net/http"

	"slotpark/internal/db"
	"slotpark/internal/entities"
)

// Fixed response strings for the slot check/book endpoints.
const (
	msgSlotAvailable    = "Slot is available!"
	msgSlotUnavailable  = "Slot is not available or the details do not match!"
	msgSlotBooked       = "Slot booked successfully!"
	msgPaymentProcessed = "Payment processed successfully."
	msgPaymentDeleted   = "Payment deleted successfully."
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(msg))
}

func slotResponse(s db.Slot) entities.SlotResponse {
	resp := entities.SlotResponse{
		ID:        s.ID,
		Name:      s.Name,
		Available: s.Available,
	}
	if !s.Date.IsZero() {
		resp.Date = s.Date.Format(entities.DateLayout)
		resp.StartTime = s.StartTime.Format(entities.ClockLayout)
		resp.EndTime = s.EndTime.Format(entities.ClockLayout)
	}
	return resp
}

func bookingResponse(b *db.Booking) entities.BookingResponse {
	return entities.BookingResponse{
		ID:               b.ID,
		SlotName:         b.SlotName,
		DriverName:       b.DriverName,
		DriverEmail:      b.DriverEmail,
		DriverPhone:      b.DriverPhone,
		Date:             b.Date.Format(entities.DateLayout),
		StartTime:        b.StartTime.Format(entities.ClockLayout),
		EndTime:          b.EndTime.Format(entities.ClockLayout),
		Status:           b.Status,
		PrepaymentStatus: b.PrepaymentStatus,
		NotificationSent: b.NotificationSent,
		Cost:             b.Cost,
		UserID:           b.UserID,
	}
}

func bookingResponses(bookings []db.Booking) []entities.BookingResponse {
	out := make([]entities.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookingResponse(&bookings[i]))
	}
	return out
}

func userResponse(u *db.User) entities.UserResponse {
	return entities.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
	}
}
