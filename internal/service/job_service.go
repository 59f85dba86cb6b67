package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"fleetbooking/internal/repository"
)

// Pending bookings older than this are assumed abandoned and cancelled so
// their blocked dates free up again.
const stalePendingAge = 6 * time.Hour

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CancelStalePendingBookings releases calendar days held by bookings whose
// payment never arrived.
func (s *JobService) CancelStalePendingBookings() error {
	cutoff := time.Now().UTC().Add(-stalePendingAge)
	ids, err := s.Repo.GetStalePendingBookingIDs(cutoff)
	if err != nil {
		return fmt.Errorf("cron job: failed to get stale pending bookings: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.Repo.CancelBookings(ids); err != nil {
		return fmt.Errorf("cron job: failed to cancel stale bookings: %w", err)
	}
	return nil
}

// FlagOverrunningTrips logs trips still running past their end date. Status
// changes stay operation-driven; this only raises visibility.
func (s *JobService) FlagOverrunningTrips() error {
	ids, err := s.Repo.GetOverrunningTripIDs()
	if err != nil {
		return fmt.Errorf("cron job: failed to get overrunning trips: %w", err)
	}
	if len(ids) > 0 {
		logrus.WithField("booking_ids", ids).Warn("trips running past their end date")
	}
	return nil
}
