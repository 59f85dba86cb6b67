package repository

import (
	"database/sql"
	"fmt"

	"fleetbooking/internal/entities"
)

type ReportRepository struct {
	DB *sql.DB
}

func NewReportRepository(database *sql.DB) *ReportRepository {
	return &ReportRepository{DB: database}
}

// BookingProfits lists revenue against logged costs per completed booking.
func (r *ReportRepository) BookingProfits(companyID int) ([]entities.BookingProfit, error) {
	query := `
		SELECT b.id, b.code, b.total_amount,
		       COALESCE((SELECT SUM(e.amount) FROM expenses e WHERE e.booking_id = b.id), 0) AS expense_cost,
		       COALESCE((SELECT SUM(f.amount) FROM fuel_logs f WHERE f.booking_id = b.id), 0) AS fuel_cost
		FROM bookings b
		LEFT JOIN vehicles v ON v.id = b.vehicle_id
		WHERE b.status = 'completed'`
	args := []interface{}{}
	if companyID > 0 {
		args = append(args, companyID)
		query += " AND v.company_id = $1"
	}
	query += " ORDER BY b.completed_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying booking profits: %w", err)
	}
	defer rows.Close()

	var profits []entities.BookingProfit
	for rows.Next() {
		var p entities.BookingProfit
		if err := rows.Scan(&p.BookingID, &p.Code, &p.Revenue, &p.ExpenseCost, &p.FuelCost); err != nil {
			return nil, fmt.Errorf("error scanning booking profit: %w", err)
		}
		p.Profit = p.Revenue - p.ExpenseCost - p.FuelCost
		profits = append(profits, p)
	}
	return profits, rows.Err()
}

// CompanyReports aggregates completed-booking revenue and costs per fleet
// owner; platform-owned vehicles group under a NULL company.
func (r *ReportRepository) CompanyReports() ([]entities.CompanyReport, error) {
	query := `
		SELECT v.company_id, COALESCE(c.name, 'Platform'),
		       COUNT(b.id),
		       COALESCE(SUM(b.total_amount), 0),
		       COALESCE(SUM((SELECT COALESCE(SUM(e.amount), 0) FROM expenses e WHERE e.booking_id = b.id)
		                  + (SELECT COALESCE(SUM(f.amount), 0) FROM fuel_logs f WHERE f.booking_id = b.id)), 0)
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		LEFT JOIN companies c ON c.id = v.company_id
		WHERE b.status = 'completed'
		GROUP BY v.company_id, c.name
		ORDER BY c.name NULLS FIRST`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying company reports: %w", err)
	}
	defer rows.Close()

	var reports []entities.CompanyReport
	for rows.Next() {
		var rep entities.CompanyReport
		if err := rows.Scan(&rep.CompanyID, &rep.CompanyName, &rep.Bookings, &rep.Revenue, &rep.TotalCost); err != nil {
			return nil, fmt.Errorf("error scanning company report: %w", err)
		}
		rep.Profit = rep.Revenue - rep.TotalCost
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// VehicleUtilization counts blocked days per vehicle inside a date window.
func (r *ReportRepository) VehicleUtilization(from, to string) ([]entities.VehicleUtilization, error) {
	query := `
		SELECT v.id, v.name, COUNT(bd.id)
		FROM vehicles v
		LEFT JOIN blocked_dates bd ON bd.vehicle_id = v.id AND bd.date BETWEEN $1 AND $2
		WHERE v.deleted = FALSE
		GROUP BY v.id, v.name
		ORDER BY COUNT(bd.id) DESC`

	rows, err := r.DB.Query(query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicle utilization: %w", err)
	}
	defer rows.Close()

	var utils []entities.VehicleUtilization
	for rows.Next() {
		var u entities.VehicleUtilization
		if err := rows.Scan(&u.VehicleID, &u.VehicleName, &u.BlockedDays); err != nil {
			return nil, fmt.Errorf("error scanning vehicle utilization: %w", err)
		}
		utils = append(utils, u)
	}
	return utils, rows.Err()
}
