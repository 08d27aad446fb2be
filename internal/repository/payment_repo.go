package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"slotpark/internal/db"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(database *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: database}
}

func (r *PaymentRepository) Save(p *db.Payment) error {
	query := `
		INSERT INTO payments (booking_id, amount, payment_date)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.DB.QueryRow(query, p.BookingID, p.Amount, p.PaymentDate).Scan(&p.ID); err != nil {
		return fmt.Errorf("error saving payment for booking %d: %w", p.BookingID, err)
	}
	return nil
}

func (r *PaymentRepository) FindByID(id int) (*db.Payment, error) {
	var p db.Payment
	query := `SELECT id, booking_id, amount, payment_date FROM payments WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&p.ID, &p.BookingID, &p.Amount, &p.PaymentDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying payment %d: %w", id, err)
	}
	return &p, nil
}

// DeleteByID removes a payment. Deleting an absent row is a no-op.
func (r *PaymentRepository) DeleteByID(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM payments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting payment %d: %w", id, err)
	}
	return nil
}
