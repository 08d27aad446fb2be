package entities

// PaymentRequest is the body of /api/payments/process. Amount is ignored on
// the booking-backed path; the recorder copies it from the booking.
type PaymentRequest struct {
	BookingID int     `json:"booking_id"`
	Amount    float64 `json:"amount,omitempty"`
}

type PaymentResponse struct {
	ID          int     `json:"id"`
	BookingID   int     `json:"booking_id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
}
