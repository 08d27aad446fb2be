package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"slotpark/internal/db"
)

const bookingColumns = `id, slot_name, driver_name, driver_email, driver_phone, date,
	start_time, end_time, status, prepayment_status, notification_sent, cost, user_id,
	created_at, updated_at`

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

func scanBooking(row interface{ Scan(...any) error }) (*db.Booking, error) {
	var b db.Booking
	err := row.Scan(
		&b.ID, &b.SlotName, &b.DriverName, &b.DriverEmail, &b.DriverPhone, &b.Date,
		&b.StartTime, &b.EndTime, &b.Status, &b.PrepaymentStatus, &b.NotificationSent,
		&b.Cost, &b.UserID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) queryBookings(query string, args ...any) ([]db.Booking, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) FindByID(id int) (*db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying booking %d: %w", id, err)
	}
	return b, nil
}

func (r *BookingRepository) FindAll() ([]db.Booking, error) {
	return r.queryBookings(`SELECT ` + bookingColumns + ` FROM bookings ORDER BY id`)
}

func (r *BookingRepository) FindByDate(date time.Time) ([]db.Booking, error) {
	return r.queryBookings(`SELECT `+bookingColumns+` FROM bookings WHERE date = $1 ORDER BY id`, date)
}

func (r *BookingRepository) FindByStatus(status string) ([]db.Booking, error) {
	return r.queryBookings(`SELECT `+bookingColumns+` FROM bookings WHERE status = $1 ORDER BY id`, status)
}

func (r *BookingRepository) FindByUserID(userID int) ([]db.Booking, error) {
	return r.queryBookings(`SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *BookingRepository) Create(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(slot_name, driver_name, driver_email, driver_phone, date, start_time, end_time,
		 status, prepayment_status, notification_sent, cost, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		b.SlotName, b.DriverName, b.DriverEmail, b.DriverPhone, b.Date,
		b.StartTime.Format(clockColumnLayout), b.EndTime.Format(clockColumnLayout),
		b.Status, b.PrepaymentStatus, b.NotificationSent, b.Cost, b.UserID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookingRepository) Update(b *db.Booking) error {
	query := `
		UPDATE bookings SET
			slot_name = $1, driver_name = $2, driver_email = $3, driver_phone = $4,
			date = $5, start_time = $6, end_time = $7, status = $8,
			prepayment_status = $9, notification_sent = $10, cost = $11, user_id = $12,
			updated_at = NOW()
		WHERE id = $13`
	_, err := r.DB.Exec(query,
		b.SlotName, b.DriverName, b.DriverEmail, b.DriverPhone, b.Date,
		b.StartTime.Format(clockColumnLayout), b.EndTime.Format(clockColumnLayout),
		b.Status, b.PrepaymentStatus, b.NotificationSent, b.Cost, b.UserID, b.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating booking %d: %w", b.ID, err)
	}
	return nil
}

// FindNotificationPending returns bookings whose reminder has not fired yet.
func (r *BookingRepository) FindNotificationPending() ([]db.Booking, error) {
	return r.queryBookings(`SELECT ` + bookingColumns + ` FROM bookings WHERE notification_sent = FALSE ORDER BY id`)
}

func (r *BookingRepository) MarkNotificationSent(id int) error {
	_, err := r.DB.Exec(`UPDATE bookings SET notification_sent = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking notification sent for booking %d: %w", id, err)
	}
	return nil
}

func (r *BookingRepository) TotalEarnings() (float64, error) {
	var total float64
	err := r.DB.QueryRow(`SELECT COALESCE(SUM(cost), 0) FROM bookings`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing booking earnings: %w", err)
	}
	return total, nil
}
