package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetStalePendingBookingIDs finds pending-payment bookings created before the
// given cutoff.
func (r *JobRepository) GetStalePendingBookingIDs(before time.Time) ([]int, error) {
	query := `SELECT id FROM bookings WHERE status = 'pending_payment' AND created_at < $1`
	rows, err := r.DB.Query(query, before)
	if err != nil {
		return nil, fmt.Errorf("error querying stale pending bookings: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// CancelBookings bulk-cancels the given bookings and releases their blocked
// dates in one transaction.
func (r *JobRepository) CancelBookings(ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE bookings SET status = 'cancelled', cancelled_at = NOW(), updated_at = NOW() WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error cancelling stale bookings: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM blocked_dates WHERE booking_id = ANY($1)`, pq.Array(ids)); err != nil {
		return fmt.Errorf("error releasing blocked dates: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing bulk cancel: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil {
		logrus.WithField("count", affected).Info("cancelled stale pending bookings")
	}
	return nil
}

// GetOverrunningTripIDs finds started or in-progress trips whose end date has
// passed.
func (r *JobRepository) GetOverrunningTripIDs() ([]int, error) {
	query := `SELECT id FROM bookings WHERE status IN ('started', 'in_progress') AND end_date < CURRENT_DATE`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying overrunning trips: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
