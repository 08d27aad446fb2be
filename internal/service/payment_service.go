package service

import (
	"fmt"
	"time"

	"slotpark/internal/db"
	apperrors "slotpark/internal/errors"
)

type PaymentStore interface {
	Save(p *db.Payment) error
	FindByID(id int) (*db.Payment, error)
	DeleteByID(id int) error
}

// PaymentService attaches payments to bookings and can cascade a
// prepayment-status change back onto the booking.
type PaymentService struct {
	Repo     PaymentStore
	Bookings BookingStore

	now func() time.Time
}

func NewPaymentService(repo PaymentStore, bookings BookingStore) *PaymentService {
	return &PaymentService{Repo: repo, Bookings: bookings, now: time.Now}
}

// Process records a payment against a booking. The amount is always the
// booking's current cost, and the payment date is stamped at processing time.
func (s *PaymentService) Process(bookingID int, p *db.Payment) error {
	booking, err := s.Bookings.FindByID(bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("%w: booking %d", apperrors.ErrNotFound, bookingID)
	}

	p.BookingID = booking.ID
	p.Amount = booking.Cost
	p.PaymentDate = s.now()
	return s.Repo.Save(p)
}

// ProcessPrepared persists a fully populated payment as-is.
func (s *PaymentService) ProcessPrepared(p *db.Payment) error {
	return s.Repo.Save(p)
}

// Delete removes a payment by id. Deleting an absent payment is a no-op.
func (s *PaymentService) Delete(paymentID int) error {
	return s.Repo.DeleteByID(paymentID)
}

// UpdatePrepaymentStatus sets the prepayment status on the referenced
// booking, failing with NotFound when the id does not resolve.
func (s *PaymentService) UpdatePrepaymentStatus(bookingID int, status string) error {
	booking, err := s.Bookings.FindByID(bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return fmt.Errorf("%w: booking %d", apperrors.ErrNotFound, bookingID)
	}
	booking.PrepaymentStatus = status
	return s.Bookings.Update(booking)
}
