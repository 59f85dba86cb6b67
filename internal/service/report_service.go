package service

import (
	"fleetbooking/internal/entities"
	apperrors "fleetbooking/internal/errors"
	"fleetbooking/internal/repository"
)

type ReportService struct {
	Repo *repository.ReportRepository
}

func NewReportService(repo *repository.ReportRepository) *ReportService {
	return &ReportService{Repo: repo}
}

func (s *ReportService) BookingProfits(companyID int) ([]entities.BookingProfit, error) {
	return s.Repo.BookingProfits(companyID)
}

func (s *ReportService) CompanyReports() ([]entities.CompanyReport, error) {
	return s.Repo.CompanyReports()
}

func (s *ReportService) VehicleUtilization(from, to string) ([]entities.VehicleUtilization, error) {
	if from == "" || to == "" {
		return nil, apperrors.ErrBadRequest("from and to dates are required")
	}
	if _, err := parseDay(from); err != nil {
		return nil, apperrors.ErrBadRequest("invalid from date, expected YYYY-MM-DD")
	}
	if _, err := parseDay(to); err != nil {
		return nil, apperrors.ErrBadRequest("invalid to date, expected YYYY-MM-DD")
	}
	return s.Repo.VehicleUtilization(from, to)
}
