package service

import (
	"fleetbooking/internal/db"
	apperrors "fleetbooking/internal/errors"
	"fleetbooking/internal/repository"
)

type ExpenseService struct {
	Repo        *repository.ExpenseRepository
	BookingRepo *repository.BookingRepository
}

func NewExpenseService(repo *repository.ExpenseRepository, bookingRepo *repository.BookingRepository) *ExpenseService {
	return &ExpenseService{Repo: repo, BookingRepo: bookingRepo}
}

func (s *ExpenseService) AddExpense(code, category, description string, amount float64) (*db.Expense, error) {
	if amount <= 0 {
		return nil, apperrors.ErrBadRequest("amount must be positive")
	}
	if category == "" {
		return nil, apperrors.ErrBadRequest("category is required")
	}
	booking, err := s.BookingRepo.GetByCode(code)
	if err != nil {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	expense := &db.Expense{BookingID: booking.ID, Category: category, Description: description, Amount: amount}
	if err := s.Repo.AppendExpense(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) AddFuelLog(code string, litres, amount float64, odometer *float64) (*db.FuelLog, error) {
	if litres <= 0 || amount <= 0 {
		return nil, apperrors.ErrBadRequest("litres and amount must be positive")
	}
	booking, err := s.BookingRepo.GetByCode(code)
	if err != nil {
		return nil, apperrors.ErrNotFound("booking not found")
	}
	log := &db.FuelLog{BookingID: booking.ID, Litres: litres, Amount: amount, Odometer: odometer}
	if err := s.Repo.AppendFuelLog(log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *ExpenseService) ListForBooking(code string) ([]*db.Expense, []*db.FuelLog, error) {
	booking, err := s.BookingRepo.GetByCode(code)
	if err != nil {
		return nil, nil, apperrors.ErrNotFound("booking not found")
	}
	expenses, err := s.Repo.ListExpenses(booking.ID)
	if err != nil {
		return nil, nil, err
	}
	fuel, err := s.Repo.ListFuelLogs(booking.ID)
	if err != nil {
		return nil, nil, err
	}
	return expenses, fuel, nil
}
