package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleetbooking/internal/db"
)

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: database}
}

const vehicleColumns = `id, name, registration_no, seats, base_price, price_per_km, mileage,
	has_ac, terrain, company_id, average_rating, active, deleted, created_at`

func scanVehicle(row interface{ Scan(...interface{}) error }) (*db.Vehicle, error) {
	var v db.Vehicle
	err := row.Scan(
		&v.ID, &v.Name, &v.RegistrationNo, &v.Seats, &v.BasePrice, &v.PricePerKm, &v.Mileage,
		&v.HasAC, &v.Terrain, &v.CompanyID, &v.AverageRating, &v.Active, &v.Deleted, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) Create(v *db.Vehicle) error {
	query := `
		INSERT INTO vehicles
		(name, registration_no, seats, base_price, price_per_km, mileage, has_ac, terrain, company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		v.Name, v.RegistrationNo, v.Seats, v.BasePrice, v.PricePerKm, v.Mileage, v.HasAC, v.Terrain, v.CompanyID,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting vehicle: %w", err)
	}
	v.Active = true
	return nil
}

func (r *VehicleRepository) Update(v *db.Vehicle) error {
	query := `
		UPDATE vehicles SET name = $1, registration_no = $2, seats = $3, base_price = $4,
		price_per_km = $5, mileage = $6, has_ac = $7, terrain = $8, active = $9
		WHERE id = $10 AND deleted = FALSE`
	result, err := r.DB.Exec(query,
		v.Name, v.RegistrationNo, v.Seats, v.BasePrice, v.PricePerKm, v.Mileage, v.HasAC, v.Terrain, v.Active, v.ID)
	if err != nil {
		return fmt.Errorf("error updating vehicle: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("vehicle %d not found", v.ID)
	}
	return nil
}

func (r *VehicleRepository) GetByID(id int) (*db.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 AND deleted = FALSE`
	v, err := scanVehicle(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vehicle %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying vehicle: %w", err)
	}
	return v, nil
}

// Search lists active vehicles matching the filters that have no blocked day
// inside [start,end].
func (r *VehicleRepository) Search(start, end time.Time, minSeats int, hasAC *bool, terrain string, companyID int) ([]*db.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + ` FROM vehicles v
		WHERE v.active = TRUE AND v.deleted = FALSE
		  AND NOT EXISTS (
			SELECT 1 FROM blocked_dates bd
			WHERE bd.vehicle_id = v.id AND bd.date BETWEEN $1 AND $2
		  )`
	args := []interface{}{start, end}
	if minSeats > 0 {
		args = append(args, minSeats)
		query += fmt.Sprintf(" AND v.seats >= $%d", len(args))
	}
	if hasAC != nil {
		args = append(args, *hasAC)
		query += fmt.Sprintf(" AND v.has_ac = $%d", len(args))
	}
	if terrain != "" {
		args = append(args, terrain)
		// "all"-terrain vehicles satisfy any terrain filter.
		query += fmt.Sprintf(" AND (v.terrain = $%d OR v.terrain = 'all')", len(args))
	}
	if companyID > 0 {
		args = append(args, companyID)
		query += fmt.Sprintf(" AND v.company_id = $%d", len(args))
	}
	query += " ORDER BY v.base_price"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*db.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *VehicleRepository) ListByCompany(companyID int) ([]*db.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE deleted = FALSE`
	args := []interface{}{}
	if companyID > 0 {
		args = append(args, companyID)
		query += " AND company_id = $1"
	}
	query += " ORDER BY name"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*db.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// SoftDelete keeps the row for historical bookings but hides the vehicle.
func (r *VehicleRepository) SoftDelete(id int) error {
	_, err := r.DB.Exec(`UPDATE vehicles SET deleted = TRUE, active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting vehicle: %w", err)
	}
	return nil
}

// RecomputeAverageRating recalculates the arithmetic mean over every rated
// booking of the vehicle.
func (r *VehicleRepository) RecomputeAverageRating(vehicleID int) (float64, error) {
	var avg sql.NullFloat64
	query := `SELECT AVG(rating) FROM bookings WHERE vehicle_id = $1 AND rating IS NOT NULL`
	if err := r.DB.QueryRow(query, vehicleID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("error computing average rating: %w", err)
	}
	if _, err := r.DB.Exec(`UPDATE vehicles SET average_rating = $1 WHERE id = $2`, avg.Float64, vehicleID); err != nil {
		return 0, fmt.Errorf("error saving average rating: %w", err)
	}
	return avg.Float64, nil
}
