package db

import "time"

// Booking statuses as stored in the bookings.status column.
const (
	BookingPending   = "PENDING"
	BookingApproved  = "APPROVED"
	BookingRejected  = "REJECTED"
	BookingCompleted = "COMPLETED"
)

// Prepayment statuses.
const (
	PrepaymentUnpaid = "UNPAID"
	PrepaymentPaid   = "PAID"
)

// Slot is a parking space row. A row with Available=false carries the time
// window it is reserved for; the table acts as a ledger of reservations
// rather than a pre-seeded inventory.
type Slot struct {
	ID        int
	Name      string
	Available bool
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
}

type Booking struct {
	ID               int
	SlotName         string
	DriverName       string
	DriverEmail      string
	DriverPhone      string
	Date             time.Time
	StartTime        time.Time
	EndTime          time.Time
	Status           string
	PrepaymentStatus string
	NotificationSent bool
	Cost             float64
	UserID           int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Payment struct {
	ID          int
	BookingID   int
	Amount      float64
	PaymentDate time.Time
}

type User struct {
	ID           int
	Username     string
	PasswordHash string
	Name         string
	Email        string
	Phone        string
}
