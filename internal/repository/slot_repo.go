package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"slotpark/internal/db"
)

const clockColumnLayout = "15:04:05"

type SlotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(database *sql.DB) *SlotRepository {
	return &SlotRepository{DB: database}
}

func (r *SlotRepository) ListAvailableByDate(date time.Time) ([]db.Slot, error) {
	query := `
		SELECT id, name, available, date, start_time, end_time
		FROM slots
		WHERE date = $1 AND available = TRUE
		ORDER BY id`

	rows, err := r.DB.Query(query, date)
	if err != nil {
		return nil, fmt.Errorf("error querying available slots: %w", err)
	}
	defer rows.Close()

	var slots []db.Slot
	for rows.Next() {
		var s db.Slot
		if err := rows.Scan(&s.ID, &s.Name, &s.Available, &s.Date, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("error scanning slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating slot rows: %w", err)
	}
	return slots, nil
}

func (r *SlotRepository) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM slots WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking slot name %q: %w", name, err)
	}
	return exists, nil
}

func (r *SlotRepository) FindByID(id int) (*db.Slot, error) {
	var s db.Slot
	query := `SELECT id, name, available, date, start_time, end_time FROM slots WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&s.ID, &s.Name, &s.Available, &s.Date, &s.StartTime, &s.EndTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying slot %d: %w", id, err)
	}
	return &s, nil
}

// FindByNameAndDate returns the reservation rows recorded for a slot name
// on the given date.
func (r *SlotRepository) FindByNameAndDate(name string, date time.Time) ([]db.Slot, error) {
	query := `
		SELECT id, name, available, date, start_time, end_time
		FROM slots
		WHERE name = $1 AND date = $2
		ORDER BY start_time`

	rows, err := r.DB.Query(query, name, date)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations for slot %q: %w", name, err)
	}
	defer rows.Close()

	var slots []db.Slot
	for rows.Next() {
		var s db.Slot
		if err := rows.Scan(&s.ID, &s.Name, &s.Available, &s.Date, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		slots = append(slots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservation rows: %w", err)
	}
	return slots, nil
}

func (r *SlotRepository) Save(slot *db.Slot) error {
	query := `UPDATE slots SET name = $1, available = $2, date = $3, start_time = $4, end_time = $5 WHERE id = $6`
	_, err := r.DB.Exec(query,
		slot.Name,
		slot.Available,
		slot.Date,
		slot.StartTime.Format(clockColumnLayout),
		slot.EndTime.Format(clockColumnLayout),
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("error saving slot %d: %w", slot.ID, err)
	}
	return nil
}

// ReserveWindow inserts a reservation row for (name, date, [start, end))
// unless an existing row overlaps the window. The existence check and the
// insert run inside one serializable transaction with the slot's rows
// locked, so two concurrent bookings for overlapping windows cannot both
// succeed. Returns false without writing when the window is taken.
func (r *SlotRepository) ReserveWindow(ctx context.Context, name string, date time.Time, start, end time.Time) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return false, fmt.Errorf("error starting reservation transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock every row for this slot/date so concurrent reservations serialize.
	if _, err := tx.ExecContext(ctx,
		`SELECT id FROM slots WHERE name = $1 AND date = $2 FOR UPDATE`, name, date); err != nil {
		return false, fmt.Errorf("error locking slot rows: %w", err)
	}

	var taken bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM slots
			WHERE name = $1 AND date = $2
			  AND start_time < $4 AND end_time > $3
		)`, name, date, start.Format(clockColumnLayout), end.Format(clockColumnLayout)).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("error checking window overlap: %w", err)
	}
	if taken {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO slots (name, available, date, start_time, end_time)
		VALUES ($1, FALSE, $2, $3, $4)`,
		name, date, start.Format(clockColumnLayout), end.Format(clockColumnLayout))
	if err != nil {
		return false, fmt.Errorf("error inserting reservation row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("error committing reservation: %w", err)
	}
	return true, nil
}

// ReleaseWindow flips back to available any reservation row covering the
// given instant on the given date. Absence of a matching row is not an error.
func (r *SlotRepository) ReleaseWindow(date time.Time, at time.Time) error {
	query := `
		UPDATE slots SET available = TRUE
		WHERE date = $1 AND start_time <= $2 AND end_time > $2`
	if _, err := r.DB.Exec(query, date, at.Format(clockColumnLayout)); err != nil {
		return fmt.Errorf("error releasing slot window: %w", err)
	}
	return nil
}
