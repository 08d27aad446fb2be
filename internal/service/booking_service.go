package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"slotpark/internal/db"
	apperrors "slotpark/internal/errors"
)

// notificationLookahead is how far ahead of a booking's end time the
// reminder fires.
const notificationLookahead = 20 * time.Minute

type BookingStore interface {
	FindByID(id int) (*db.Booking, error)
	FindAll() ([]db.Booking, error)
	FindByDate(date time.Time) ([]db.Booking, error)
	FindByStatus(status string) ([]db.Booking, error)
	FindByUserID(userID int) ([]db.Booking, error)
	Create(b *db.Booking) error
	Update(b *db.Booking) error
	FindNotificationPending() ([]db.Booking, error)
	MarkNotificationSent(id int) error
	TotalEarnings() (float64, error)
}

// SlotBooker is the slice of the availability engine the lifecycle manager
// uses: atomically reserving a window and releasing one.
type SlotBooker interface {
	Book(ctx context.Context, identifier string, date time.Time, start, end time.Time) (bool, error)
	Release(date time.Time, at time.Time) error
}

type Notifier interface {
	SendReminderEmail(toEmail, driverName, slotName string, endTime time.Time) error
	SendBookingSMS(toPhone, message string) error
}

// BookingService owns booking records: creation, status transitions,
// cost recalculation and the upcoming-booking reminder scan.
type BookingService struct {
	Repo       BookingStore
	Slots      SlotBooker
	Notifier   Notifier
	HourlyRate float64

	now func() time.Time
}

func NewBookingService(repo BookingStore, slots SlotBooker, notifier Notifier, hourlyRate float64) *BookingService {
	return &BookingService{
		Repo:       repo,
		Slots:      slots,
		Notifier:   notifier,
		HourlyRate: hourlyRate,
		now:        time.Now,
	}
}

// SlotNamesForDate returns the slot names of all bookings on the date.
// Deliberately not filtered by the slots table's available flag.
func (s *BookingService) SlotNamesForDate(date time.Time) ([]string, error) {
	bookings, err := s.Repo.FindByDate(date)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(bookings))
	for _, b := range bookings {
		names = append(names, b.SlotName)
	}
	return names, nil
}

// RecalculateCost prices the span between the booked end time and the actual
// checkout time. Checkouts at or before the booked end cost nothing extra.
func (s *BookingService) RecalculateCost(endTime, checkoutTime time.Time) float64 {
	hours := checkoutTime.Sub(endTime).Hours()
	if hours <= 0 {
		return 0
	}
	return hours * s.HourlyRate
}

// CreateBooking reserves the slot window through the availability engine and
// persists the booking priced at the configured hourly rate. Returns
// Conflict when the window is taken.
func (s *BookingService) CreateBooking(ctx context.Context, b *db.Booking) (*db.Booking, error) {
	if err := validateWindow(b.StartTime, b.EndTime); err != nil {
		return nil, err
	}

	booked, err := s.Slots.Book(ctx, b.SlotName, b.Date, b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, fmt.Errorf("%w: slot %q on %s", apperrors.ErrConflict, b.SlotName, b.Date.Format("2006-01-02"))
	}

	if b.Cost == 0 {
		b.Cost = b.EndTime.Sub(b.StartTime).Hours() * s.HourlyRate
	}
	b.Status = db.BookingPending
	b.PrepaymentStatus = db.PrepaymentUnpaid
	b.NotificationSent = false

	if err := s.Repo.Create(b); err != nil {
		return nil, err
	}

	if b.DriverPhone != "" {
		msg := fmt.Sprintf("Your parking booking for slot %s on %s (%s-%s) is registered.",
			b.SlotName, b.Date.Format("2006-01-02"),
			b.StartTime.Format("15:04"), b.EndTime.Format("15:04"))
		if err := s.Notifier.SendBookingSMS(b.DriverPhone, msg); err != nil {
			log.Printf("Booking %d created, but confirmation SMS to %s failed: %v", b.ID, b.DriverPhone, err)
		}
	}
	return b, nil
}

func (s *BookingService) BookingByID(id int) (*db.Booking, error) {
	b, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: booking %d", apperrors.ErrNotFound, id)
	}
	return b, nil
}

func (s *BookingService) AllBookings() ([]db.Booking, error) {
	return s.Repo.FindAll()
}

// UpdateBooking overwrites the mutable fields of an existing booking.
// Unknown ids fail with NotFound before anything is written.
func (s *BookingService) UpdateBooking(id int, patch *db.Booking) (*db.Booking, error) {
	b, err := s.BookingByID(id)
	if err != nil {
		return nil, err
	}
	if err := validateWindow(patch.StartTime, patch.EndTime); err != nil {
		return nil, err
	}

	b.SlotName = patch.SlotName
	b.DriverName = patch.DriverName
	b.DriverEmail = patch.DriverEmail
	b.DriverPhone = patch.DriverPhone
	b.Date = patch.Date
	b.StartTime = patch.StartTime
	b.EndTime = patch.EndTime
	if patch.Cost != 0 {
		b.Cost = patch.Cost
	}

	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) UpdateStatus(id int, status string) (*db.Booking, error) {
	b, err := s.BookingByID(id)
	if err != nil {
		return nil, err
	}
	b.Status = status
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) UpdatePrepaymentStatus(id int, status string) (*db.Booking, error) {
	b, err := s.BookingByID(id)
	if err != nil {
		return nil, err
	}
	b.PrepaymentStatus = status
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Checkout records the actual checkout time, charging any overstay past the
// booked end time at the hourly rate, and completes the booking.
func (s *BookingService) Checkout(id int, checkoutTime time.Time) (*db.Booking, error) {
	b, err := s.BookingByID(id)
	if err != nil {
		return nil, err
	}
	b.Cost += s.RecalculateCost(b.EndTime, checkoutTime)
	b.EndTime = checkoutTime
	b.Status = db.BookingCompleted
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ScanUpcoming emails each driver whose booking ends within the lookahead
// window today and has not been notified yet. The notification_sent latch is
// flipped only after the email goes out, and never flips back.
func (s *BookingService) ScanUpcoming() error {
	pending, err := s.Repo.FindNotificationPending()
	if err != nil {
		return fmt.Errorf("reminder scan: %w", err)
	}

	now := s.now()
	for _, b := range pending {
		if !sameDate(b.Date, now) {
			continue
		}
		end := time.Date(now.Year(), now.Month(), now.Day(),
			b.EndTime.Hour(), b.EndTime.Minute(), 0, 0, now.Location())
		if end.Before(now) || end.Sub(now) > notificationLookahead {
			continue
		}

		if err := s.Notifier.SendReminderEmail(b.DriverEmail, b.DriverName, b.SlotName, end); err != nil {
			log.Printf("Reminder scan: email for booking %d to %s failed: %v", b.ID, b.DriverEmail, err)
			continue
		}
		if err := s.Repo.MarkNotificationSent(b.ID); err != nil {
			return fmt.Errorf("reminder scan: marking booking %d: %w", b.ID, err)
		}
	}
	return nil
}

func (s *BookingService) PaidBookings() ([]db.Booking, error) {
	return s.Repo.FindByStatus(db.BookingApproved)
}

func (s *BookingService) TotalEarnings() (float64, error) {
	return s.Repo.TotalEarnings()
}

func (s *BookingService) BookingsByUser(userID int) ([]db.Booking, error) {
	return s.Repo.FindByUserID(userID)
}

// BookingByUser returns the user's first booking, NotFound when there is none.
func (s *BookingService) BookingByUser(userID int) (*db.Booking, error) {
	bookings, err := s.Repo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, fmt.Errorf("%w: no booking for user %d", apperrors.ErrNotFound, userID)
	}
	return &bookings[0], nil
}

// ReleaseSlot resets a slot's availability for a date and time. Best effort;
// a miss is a no-op.
func (s *BookingService) ReleaseSlot(date time.Time, at time.Time) error {
	return s.Slots.Release(date, at)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
