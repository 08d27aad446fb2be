package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotpark/internal/db"
	apperrors "slotpark/internal/errors"
)

// fakeSlotStore keeps the reservation ledger in memory. ReserveWindow is
// check-then-append under the same call, matching the repository's atomic
// contract.
type fakeSlotStore struct {
	slots  []db.Slot
	nextID int
	saved  []db.Slot
}

func newFakeSlotStore(slots ...db.Slot) *fakeSlotStore {
	return &fakeSlotStore{slots: slots, nextID: 100}
}

func (f *fakeSlotStore) ListAvailableByDate(date time.Time) ([]db.Slot, error) {
	var out []db.Slot
	for _, s := range f.slots {
		if s.Available && s.Date.Equal(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotStore) ExistsByName(name string) (bool, error) {
	for _, s := range f.slots {
		if s.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSlotStore) FindByID(id int) (*db.Slot, error) {
	for i := range f.slots {
		if f.slots[i].ID == id {
			s := f.slots[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotStore) FindByNameAndDate(name string, date time.Time) ([]db.Slot, error) {
	var out []db.Slot
	for _, s := range f.slots {
		if s.Name == name && s.Date.Equal(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotStore) Save(slot *db.Slot) error {
	f.saved = append(f.saved, *slot)
	for i := range f.slots {
		if f.slots[i].ID == slot.ID {
			f.slots[i] = *slot
		}
	}
	return nil
}

func (f *fakeSlotStore) ReserveWindow(_ context.Context, name string, date time.Time, start, end time.Time) (bool, error) {
	for _, s := range f.slots {
		if s.Name == name && s.Date.Equal(date) && s.StartTime.Before(end) && start.Before(s.EndTime) {
			return false, nil
		}
	}
	f.nextID++
	f.slots = append(f.slots, db.Slot{
		ID: f.nextID, Name: name, Available: false,
		Date: date, StartTime: start, EndTime: end,
	})
	return true, nil
}

func (f *fakeSlotStore) ReleaseWindow(date time.Time, at time.Time) error {
	for i := range f.slots {
		s := &f.slots[i]
		if s.Date.Equal(date) && !s.StartTime.After(at) && s.EndTime.After(at) {
			s.Available = true
		}
	}
	return nil
}

func clock(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", s)
	require.NoError(t, err)
	return parsed
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}

func TestCheckAvailabilityUnknownNameIsBookable(t *testing.T) {
	svc := NewSlotService(newFakeSlotStore())

	available, err := svc.CheckAvailability("A", date(t, "2026-09-01"), clock(t, "09:00"), clock(t, "10:00"))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestCheckAvailabilityUnknownNumericIDIsNot(t *testing.T) {
	svc := NewSlotService(newFakeSlotStore())

	available, err := svc.CheckAvailability("7", date(t, "2026-09-01"), clock(t, "09:00"), clock(t, "10:00"))
	require.NoError(t, err)
	assert.False(t, available)
}

func TestCheckAvailabilityByIDMirrorsNamePolicy(t *testing.T) {
	// The id resolves to a named slot, and that name has no reservation rows
	// on the requested date, so nothing overlaps.
	store := newFakeSlotStore(db.Slot{ID: 7, Name: "Slot 1", Available: true})
	svc := NewSlotService(store)

	available, err := svc.CheckAvailability("7", date(t, "2026-09-01"), clock(t, "09:00"), clock(t, "10:00"))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestCheckAvailabilityHalfOpenOverlap(t *testing.T) {
	d := date(t, "2026-09-01")
	store := newFakeSlotStore(db.Slot{
		ID: 1, Name: "A", Available: false, Date: d,
		StartTime: clock(t, "10:00"), EndTime: clock(t, "12:00"),
	})
	svc := NewSlotService(store)

	// Back-to-back: end of one == start of the next.
	available, err := svc.CheckAvailability("A", d, clock(t, "12:00"), clock(t, "13:00"))
	require.NoError(t, err)
	assert.True(t, available)

	available, err = svc.CheckAvailability("A", d, clock(t, "11:00"), clock(t, "13:00"))
	require.NoError(t, err)
	assert.False(t, available)

	// Fully contained window.
	available, err = svc.CheckAvailability("A", d, clock(t, "10:30"), clock(t, "11:00"))
	require.NoError(t, err)
	assert.False(t, available)
}

func TestCheckAvailabilityOverlapIsSymmetric(t *testing.T) {
	d := date(t, "2026-09-01")
	store := newFakeSlotStore(db.Slot{
		ID: 1, Name: "A", Available: false, Date: d,
		StartTime: clock(t, "11:00"), EndTime: clock(t, "13:00"),
	})
	svc := NewSlotService(store)

	available, err := svc.CheckAvailability("A", d, clock(t, "10:00"), clock(t, "12:00"))
	require.NoError(t, err)
	assert.False(t, available)
}

func TestCheckAvailabilityRejectsInvertedWindow(t *testing.T) {
	svc := NewSlotService(newFakeSlotStore())

	_, err := svc.CheckAvailability("A", date(t, "2026-09-01"), clock(t, "12:00"), clock(t, "10:00"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBookMatchesCheckForSameArguments(t *testing.T) {
	d := date(t, "2026-09-01")
	store := newFakeSlotStore(db.Slot{
		ID: 1, Name: "A", Available: false, Date: d,
		StartTime: clock(t, "10:00"), EndTime: clock(t, "12:00"),
	})
	svc := NewSlotService(store)
	ctx := context.Background()

	cases := []struct{ start, end string }{
		{"08:00", "09:00"},
		{"09:00", "10:00"},
		{"11:00", "12:30"},
		{"12:00", "13:00"},
	}
	for _, tc := range cases {
		start, end := clock(t, tc.start), clock(t, tc.end)
		checked, err := svc.CheckAvailability("A", d, start, end)
		require.NoError(t, err)

		rowsBefore := len(store.slots)
		booked, err := svc.Book(ctx, "A", d, start, end)
		require.NoError(t, err)
		assert.Equal(t, checked, booked, "check/book disagreement for %s-%s", tc.start, tc.end)
		if booked {
			assert.Len(t, store.slots, rowsBefore+1)
		} else {
			assert.Len(t, store.slots, rowsBefore)
		}

		// Undo the successful write so every case sees the same ledger.
		if booked {
			store.slots = store.slots[:rowsBefore]
		}
	}
}

func TestBookPersistsReservationRow(t *testing.T) {
	d := date(t, "2026-09-01")
	store := newFakeSlotStore()
	svc := NewSlotService(store)

	booked, err := svc.Book(context.Background(), "A", d, clock(t, "09:00"), clock(t, "10:00"))
	require.NoError(t, err)
	require.True(t, booked)

	rows, err := store.FindByNameAndDate("A", d)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Available)
	assert.Equal(t, clock(t, "09:00"), rows[0].StartTime)
	assert.Equal(t, clock(t, "10:00"), rows[0].EndTime)
}

func TestBookByID(t *testing.T) {
	store := newFakeSlotStore(db.Slot{ID: 3, Name: "B", Available: true})
	svc := NewSlotService(store)

	booked, err := svc.BookByID(3)
	require.NoError(t, err)
	assert.True(t, booked)
	require.Len(t, store.saved, 1)
	assert.False(t, store.saved[0].Available)

	booked, err = svc.BookByID(99)
	require.NoError(t, err)
	assert.False(t, booked)
	assert.Len(t, store.saved, 1)
}

func TestBookingScenarioEndToEnd(t *testing.T) {
	d := date(t, "2026-09-01")
	store := newFakeSlotStore()
	svc := NewSlotService(store)
	ctx := context.Background()

	available, err := svc.CheckAvailability("A", d, clock(t, "09:00"), clock(t, "10:00"))
	require.NoError(t, err)
	assert.True(t, available, "unknown name must be bookable")

	booked, err := svc.Book(ctx, "A", d, clock(t, "09:00"), clock(t, "10:00"))
	require.NoError(t, err)
	assert.True(t, booked)

	rows, err := store.FindByNameAndDate("A", d)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	available, err = svc.CheckAvailability("A", d, clock(t, "09:30"), clock(t, "09:45"))
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.CheckAvailability("A", d, clock(t, "10:00"), clock(t, "11:00"))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestReleaseIsIdempotent(t *testing.T) {
	svc := NewSlotService(newFakeSlotStore())
	assert.NoError(t, svc.Release(date(t, "2026-09-01"), clock(t, "09:30")))
}
