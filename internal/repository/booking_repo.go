package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleetbooking/internal/db"
)

// ErrDateConflict is returned when a requested date range touches days already
// blocked on the vehicle's calendar.
var ErrDateConflict = errors.New("vehicle already reserved for the selected dates")

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `id, code, vehicle_id, customer_name, customer_phone, customer_email,
	pickup, destination, start_date, end_date,
	base_rent, mountain_rent, driver_batta, permit_charge, toll_charge, other_charge, discount,
	total_amount, status, payment_order_id, payment_order_amount,
	cancelled_at, refund_amount, live_lat, live_lng,
	start_odometer, end_odometer, started_at, completed_at,
	rating, feedback, created_by, created_at, updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (*db.Booking, error) {
	var b db.Booking
	var orderID, email, feedback sql.NullString
	var orderAmount sql.NullFloat64
	err := row.Scan(
		&b.ID, &b.Code, &b.VehicleID, &b.CustomerName, &b.CustomerPhone, &email,
		&b.Pickup, &b.Destination, &b.StartDate, &b.EndDate,
		&b.BaseRent, &b.MountainRent, &b.DriverBatta, &b.PermitCharge, &b.TollCharge, &b.OtherCharge, &b.Discount,
		&b.TotalAmount, &b.Status, &orderID, &orderAmount,
		&b.CancelledAt, &b.RefundAmount, &b.LiveLat, &b.LiveLng,
		&b.StartOdometer, &b.EndOdometer, &b.StartedAt, &b.CompletedAt,
		&b.Rating, &feedback, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.CustomerEmail = email.String
	b.PaymentOrderID = orderID.String
	b.PaymentOrderAmount = orderAmount.Float64
	b.Feedback = feedback.String
	return &b, nil
}

// BlockedDaysInRange returns the blocked calendar days for a vehicle inside
// [start,end] inclusive, ignoring rows owned by excludeBookingID so a booking
// can keep its own days while being edited.
func (r *BookingRepository) BlockedDaysInRange(vehicleID int, start, end time.Time, excludeBookingID int) ([]time.Time, error) {
	query := `
		SELECT date FROM blocked_dates
		WHERE vehicle_id = $1 AND date BETWEEN $2 AND $3
		  AND (booking_id IS NULL OR booking_id <> $4)
		ORDER BY date`
	rows, err := r.DB.Query(query, vehicleID, start, end, excludeBookingID)
	if err != nil {
		return nil, fmt.Errorf("error querying blocked dates: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("error scanning blocked date: %w", err)
		}
		days = append(days, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating blocked dates: %w", err)
	}
	return days, nil
}

func conflictExists(tx *sql.Tx, vehicleID int, start, end time.Time, excludeBookingID int) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM blocked_dates
		WHERE vehicle_id = $1 AND date BETWEEN $2 AND $3
		  AND (booking_id IS NULL OR booking_id <> $4)`
	if err := tx.QueryRow(query, vehicleID, start, end, excludeBookingID).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking date conflicts: %w", err)
	}
	return count > 0, nil
}

func insertBlockedDays(tx *sql.Tx, vehicleID, bookingID int, start, end time.Time) error {
	query := `INSERT INTO blocked_dates (vehicle_id, date, reason, booking_id) VALUES ($1, $2, 'booking', $3)`
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if _, err := tx.Exec(query, vehicleID, d, bookingID); err != nil {
			return fmt.Errorf("error inserting blocked date %s: %w", d.Format("2006-01-02"), err)
		}
	}
	return nil
}

// Create inserts the booking and, when a vehicle is attached, blocks its days.
// The conflict check and the per-day inserts run in one transaction; the
// UNIQUE (vehicle_id, date) index turns a lost race into a rollback here
// instead of a double booking.
func (r *BookingRepository) Create(b *db.Booking) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if b.VehicleID != nil {
		conflict, err := conflictExists(tx, *b.VehicleID, b.StartDate, b.EndDate, 0)
		if err != nil {
			return err
		}
		if conflict {
			return ErrDateConflict
		}
	}

	query := `
		INSERT INTO bookings
		(code, vehicle_id, customer_name, customer_phone, customer_email, pickup, destination,
		 start_date, end_date, base_rent, mountain_rent, driver_batta, permit_charge, toll_charge,
		 other_charge, discount, total_amount, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query,
		b.Code, b.VehicleID, b.CustomerName, b.CustomerPhone, nullString(b.CustomerEmail),
		b.Pickup, b.Destination, b.StartDate, b.EndDate,
		b.BaseRent, b.MountainRent, b.DriverBatta, b.PermitCharge, b.TollCharge,
		b.OtherCharge, b.Discount, b.TotalAmount, b.Status, b.CreatedBy,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}

	if b.VehicleID != nil {
		if err := insertBlockedDays(tx, *b.VehicleID, b.ID, b.StartDate, b.EndDate); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AssignVehicle moves the booking onto a vehicle, replacing any days it held
// on a previous one. The booking's own rows are excluded from the conflict
// check so reassignment over the same range always succeeds.
func (r *BookingRepository) AssignVehicle(b *db.Booking, vehicleID int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	conflict, err := conflictExists(tx, vehicleID, b.StartDate, b.EndDate, b.ID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrDateConflict
	}

	if _, err := tx.Exec(`DELETE FROM blocked_dates WHERE booking_id = $1`, b.ID); err != nil {
		return fmt.Errorf("error releasing previous blocked dates: %w", err)
	}
	if err := insertBlockedDays(tx, vehicleID, b.ID, b.StartDate, b.EndDate); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE bookings SET vehicle_id = $1, updated_at = NOW() WHERE id = $2`, vehicleID, b.ID); err != nil {
		return fmt.Errorf("error updating booking vehicle: %w", err)
	}
	return tx.Commit()
}

// Cancel marks the booking cancelled, records the refund and releases exactly
// the blocked days tagged with its id.
func (r *BookingRepository) Cancel(bookingID int, cancelledAt time.Time, refund float64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE bookings SET status = 'cancelled', cancelled_at = $1, refund_amount = $2, updated_at = NOW() WHERE id = $3`
	if _, err := tx.Exec(query, cancelledAt, refund, bookingID); err != nil {
		return fmt.Errorf("error cancelling booking: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM blocked_dates WHERE booking_id = $1`, bookingID); err != nil {
		return fmt.Errorf("error releasing blocked dates: %w", err)
	}
	return tx.Commit()
}

func (r *BookingRepository) GetByCode(code string) (*db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE code = $1`
	b, err := scanBooking(r.DB.QueryRow(query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking with code '%s' not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) GetByID(id int) (*db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return b, nil
}

// List returns bookings matching the optional filters, newest first.
func (r *BookingRepository) List(date, status string, vehicleID, createdBy int) ([]*db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []interface{}{}
	if date != "" {
		args = append(args, date)
		query += fmt.Sprintf(" AND $%d::date BETWEEN start_date AND end_date", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if vehicleID > 0 {
		args = append(args, vehicleID)
		query += fmt.Sprintf(" AND vehicle_id = $%d", len(args))
	}
	if createdBy > 0 {
		args = append(args, createdBy)
		query += fmt.Sprintf(" AND created_by = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepository) UpdateStatus(id int, status string) error {
	_, err := r.DB.Exec(`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	return nil
}

func (r *BookingRepository) MarkPaymentOrder(id int, orderID string, amount float64) error {
	query := `UPDATE bookings SET payment_order_id = $1, payment_order_amount = $2, updated_at = NOW() WHERE id = $3`
	if _, err := r.DB.Exec(query, orderID, amount, id); err != nil {
		return fmt.Errorf("error saving payment order: %w", err)
	}
	return nil
}

// StartTrip keeps the first started_at stamp if the trip is started again.
func (r *BookingRepository) StartTrip(id int, odometer float64, at time.Time) error {
	query := `UPDATE bookings SET status = 'started', start_odometer = $1, started_at = COALESCE(started_at, $2), updated_at = NOW() WHERE id = $3`
	if _, err := r.DB.Exec(query, odometer, at, id); err != nil {
		return fmt.Errorf("error starting trip: %w", err)
	}
	return nil
}

func (r *BookingRepository) EndTrip(id int, odometer float64, at time.Time) error {
	query := `UPDATE bookings SET status = 'completed', end_odometer = $1, completed_at = COALESCE(completed_at, $2), updated_at = NOW() WHERE id = $3`
	if _, err := r.DB.Exec(query, odometer, at, id); err != nil {
		return fmt.Errorf("error ending trip: %w", err)
	}
	return nil
}

// UpdateLiveLocation overwrites the stored position; last write wins.
func (r *BookingRepository) UpdateLiveLocation(id int, lat, lng float64, status string) error {
	query := `UPDATE bookings SET live_lat = $1, live_lng = $2, status = $3, updated_at = NOW() WHERE id = $4`
	if _, err := r.DB.Exec(query, lat, lng, status, id); err != nil {
		return fmt.Errorf("error updating live location: %w", err)
	}
	return nil
}

func (r *BookingRepository) SaveReview(id, rating int, feedback string) error {
	query := `UPDATE bookings SET rating = $1, feedback = $2, updated_at = NOW() WHERE id = $3`
	if _, err := r.DB.Exec(query, rating, feedback, id); err != nil {
		return fmt.Errorf("error saving review: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
