package repository

import (
	"database/sql"
	"fmt"

	"fleetbooking/internal/db"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(database *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: database}
}

// Append records one received amount. The log is append-only; the booking's
// paid total is always derived with SumForBooking.
func (r *PaymentRepository) Append(p *db.PaymentLog) error {
	query := `
		INSERT INTO payment_logs (booking_id, amount, reference)
		VALUES ($1, $2, $3)
		RETURNING id, received_at`
	err := r.DB.QueryRow(query, p.BookingID, p.Amount, p.Reference).Scan(&p.ID, &p.ReceivedAt)
	if err != nil {
		return fmt.Errorf("error inserting payment log: %w", err)
	}
	return nil
}

func (r *PaymentRepository) SumForBooking(bookingID int) (float64, error) {
	var total sql.NullFloat64
	err := r.DB.QueryRow(`SELECT SUM(amount) FROM payment_logs WHERE booking_id = $1`, bookingID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error summing payments: %w", err)
	}
	return total.Float64, nil
}

func (r *PaymentRepository) ListForBooking(bookingID int) ([]*db.PaymentLog, error) {
	rows, err := r.DB.Query(`SELECT id, booking_id, amount, reference, received_at FROM payment_logs WHERE booking_id = $1 ORDER BY received_at`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer rows.Close()

	var logs []*db.PaymentLog
	for rows.Next() {
		var p db.PaymentLog
		var ref sql.NullString
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Amount, &ref, &p.ReceivedAt); err != nil {
			return nil, fmt.Errorf("error scanning payment log: %w", err)
		}
		p.Reference = ref.String
		logs = append(logs, &p)
	}
	return logs, rows.Err()
}
