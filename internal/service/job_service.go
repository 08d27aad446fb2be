package service

import (
	"fmt"
	"log"
	"sync"

	"slotpark/internal/db"
	"slotpark/internal/repository"
)

// UpcomingScanner is what the scheduler needs from the booking lifecycle.
type UpcomingScanner interface {
	ScanUpcoming() error
}

// JobService runs the cron-triggered maintenance work. Each job holds its
// own mutex so a slow run is skipped rather than overlapped.
type JobService struct {
	Repo     *repository.JobRepository
	Bookings UpcomingScanner

	scanMu  sync.Mutex
	sweepMu sync.Mutex
}

func NewJobService(repo *repository.JobRepository, bookings UpcomingScanner) *JobService {
	return &JobService{Repo: repo, Bookings: bookings}
}

// RunUpcomingScan triggers the reminder scan, at most one run at a time.
func (s *JobService) RunUpcomingScan() {
	if !s.scanMu.TryLock() {
		log.Println("Cron Job: previous reminder scan still running, skipping")
		return
	}
	defer s.scanMu.Unlock()

	if err := s.Bookings.ScanUpcoming(); err != nil {
		log.Printf("Cron Job: reminder scan failed: %v", err)
	}
}

// CompleteExpiredBookings moves approved bookings whose end time has passed
// to COMPLETED.
func (s *JobService) CompleteExpiredBookings() error {
	if !s.sweepMu.TryLock() {
		log.Println("Cron Job: previous expiry sweep still running, skipping")
		return nil
	}
	defer s.sweepMu.Unlock()

	log.Println("Cron Job: checking for bookings to mark as completed...")

	ids, err := s.Repo.ApprovedBookingIDsPastEnd()
	if err != nil {
		return fmt.Errorf("cron job: failed to get approved bookings past end time: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: no approved bookings found past their end time.")
		return nil
	}

	log.Printf("Cron Job: found %d bookings to mark as completed. IDs: %v", len(ids), ids)

	if err := s.Repo.UpdateBookingStatuses(ids, db.BookingCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}

	log.Printf("Cron Job: successfully completed %d bookings.", len(ids))
	return nil
}
