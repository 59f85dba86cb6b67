package repository

import (
	"database/sql"
	"fmt"

	"fleetbooking/internal/db"
)

type ExpenseRepository struct {
	DB *sql.DB
}

func NewExpenseRepository(database *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{DB: database}
}

func (r *ExpenseRepository) AppendExpense(e *db.Expense) error {
	query := `
		INSERT INTO expenses (booking_id, category, description, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, spent_at`
	err := r.DB.QueryRow(query, e.BookingID, e.Category, e.Description, e.Amount).Scan(&e.ID, &e.SpentAt)
	if err != nil {
		return fmt.Errorf("error inserting expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) AppendFuelLog(f *db.FuelLog) error {
	query := `
		INSERT INTO fuel_logs (booking_id, litres, amount, odometer)
		VALUES ($1, $2, $3, $4)
		RETURNING id, filled_at`
	err := r.DB.QueryRow(query, f.BookingID, f.Litres, f.Amount, f.Odometer).Scan(&f.ID, &f.FilledAt)
	if err != nil {
		return fmt.Errorf("error inserting fuel log: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) ListExpenses(bookingID int) ([]*db.Expense, error) {
	rows, err := r.DB.Query(`SELECT id, booking_id, category, description, amount, spent_at FROM expenses WHERE booking_id = $1 ORDER BY spent_at`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("error listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*db.Expense
	for rows.Next() {
		var e db.Expense
		var desc sql.NullString
		if err := rows.Scan(&e.ID, &e.BookingID, &e.Category, &desc, &e.Amount, &e.SpentAt); err != nil {
			return nil, fmt.Errorf("error scanning expense: %w", err)
		}
		e.Description = desc.String
		expenses = append(expenses, &e)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) ListFuelLogs(bookingID int) ([]*db.FuelLog, error) {
	rows, err := r.DB.Query(`SELECT id, booking_id, litres, amount, odometer, filled_at FROM fuel_logs WHERE booking_id = $1 ORDER BY filled_at`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("error listing fuel logs: %w", err)
	}
	defer rows.Close()

	var logs []*db.FuelLog
	for rows.Next() {
		var f db.FuelLog
		if err := rows.Scan(&f.ID, &f.BookingID, &f.Litres, &f.Amount, &f.Odometer, &f.FilledAt); err != nil {
			return nil, fmt.Errorf("error scanning fuel log: %w", err)
		}
		logs = append(logs, &f)
	}
	return logs, rows.Err()
}
