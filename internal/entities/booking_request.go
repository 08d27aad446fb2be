package entities

// BookingRequest carries the mutable booking fields for create and update.
type BookingRequest struct {
	SlotName    string  `json:"slot_name"`
	DriverName  string  `json:"driver_name"`
	DriverEmail string  `json:"driver_email"`
	DriverPhone string  `json:"driver_phone"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	UserID      int     `json:"user_id"`
	Cost        float64 `json:"cost,omitempty"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type CheckoutRequest struct {
	CheckoutTime string `json:"checkout_time"`
}

type BookingResponse struct {
	ID               int     `json:"id"`
	SlotName         string  `json:"slot_name"`
	DriverName       string  `json:"driver_name"`
	DriverEmail      string  `json:"driver_email"`
	DriverPhone      string  `json:"driver_phone,omitempty"`
	Date             string  `json:"date"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Status           string  `json:"status"`
	PrepaymentStatus string  `json:"prepayment_status"`
	NotificationSent bool    `json:"notification_sent"`
	Cost             float64 `json:"cost"`
	UserID           int     `json:"user_id"`
}
