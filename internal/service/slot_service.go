package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"slotpark/internal/db"
	apperrors "slotpark/internal/errors"
)

// SlotStore is the persistence surface the availability engine needs.
type SlotStore interface {
	ListAvailableByDate(date time.Time) ([]db.Slot, error)
	ExistsByName(name string) (bool, error)
	FindByID(id int) (*db.Slot, error)
	FindByNameAndDate(name string, date time.Time) ([]db.Slot, error)
	Save(slot *db.Slot) error
	ReserveWindow(ctx context.Context, name string, date time.Time, start, end time.Time) (bool, error)
	ReleaseWindow(date time.Time, at time.Time) error
}

// SlotService decides whether a slot is free for a time range and records
// reservations. The slots table is an append-only ledger of reservations,
// so a name with no rows at all is bookable.
type SlotService struct {
	Repo SlotStore
}

func NewSlotService(repo SlotStore) *SlotService {
	return &SlotService{Repo: repo}
}

// overlaps reports whether [s1, e1) and [s2, e2) share an instant.
// Half-open on purpose: back-to-back windows do not collide.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

func validateWindow(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: end time must be after start time", apperrors.ErrValidation)
	}
	return nil
}

func (s *SlotService) AvailableSlots(date time.Time) ([]db.Slot, error) {
	return s.Repo.ListAvailableByDate(date)
}

// CheckAvailability resolves the identifier (numeric string means slot id,
// anything else a slot name) and reports whether [start, end) is free on the
// given date. An unknown name is available; an unknown numeric id is not.
func (s *SlotService) CheckAvailability(identifier string, date time.Time, start, end time.Time) (bool, error) {
	if err := validateWindow(start, end); err != nil {
		return false, err
	}

	name := identifier
	if id, err := strconv.Atoi(identifier); err == nil {
		slot, err := s.Repo.FindByID(id)
		if err != nil {
			return false, err
		}
		if slot == nil {
			return false, nil
		}
		name = slot.Name
	}

	exists, err := s.Repo.ExistsByName(name)
	if err != nil {
		return false, err
	}
	if !exists {
		return true, nil
	}

	reservations, err := s.Repo.FindByNameAndDate(name, date)
	if err != nil {
		return false, err
	}
	for _, r := range reservations {
		if overlaps(start, end, r.StartTime, r.EndTime) {
			return false, nil
		}
	}
	return true, nil
}

// Book reserves [start, end) for the identified slot. The availability
// re-check and the insert run atomically in the store, so two concurrent
// bookings for overlapping windows cannot both succeed. Returns false and
// writes nothing when the window is taken.
func (s *SlotService) Book(ctx context.Context, identifier string, date time.Time, start, end time.Time) (bool, error) {
	if err := validateWindow(start, end); err != nil {
		return false, err
	}

	name := identifier
	if id, err := strconv.Atoi(identifier); err == nil {
		slot, err := s.Repo.FindByID(id)
		if err != nil {
			return false, err
		}
		if slot == nil {
			return false, nil
		}
		name = slot.Name
	}

	return s.Repo.ReserveWindow(ctx, name, date, start, end)
}

// BookByID marks a slot booked by its numeric id. No overlap check against
// other reservations; this path assumes single occupancy per id.
func (s *SlotService) BookByID(id int) (bool, error) {
	slot, err := s.Repo.FindByID(id)
	if err != nil {
		return false, err
	}
	if slot == nil {
		return false, nil
	}
	slot.Available = false
	if err := s.Repo.Save(slot); err != nil {
		return false, err
	}
	return true, nil
}

// Release flips back to available whatever reservation covers the given
// instant. A miss is a no-op.
func (s *SlotService) Release(date time.Time, at time.Time) error {
	return s.Repo.ReleaseWindow(date, at)
}
