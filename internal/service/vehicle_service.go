package service

import (
	"fleetbooking/internal/db"
	"fleetbooking/internal/entities"
	apperrors "fleetbooking/internal/errors"
	"fleetbooking/internal/repository"
	"fleetbooking/internal/utils"
)

type VehicleService struct {
	Repo *repository.VehicleRepository
}

func NewVehicleService(repo *repository.VehicleRepository) *VehicleService {
	return &VehicleService{Repo: repo}
}

func validateVehicle(req entities.VehicleRequest) error {
	if req.Name == "" || req.RegistrationNo == "" {
		return apperrors.ErrBadRequest("name and registration_no are required")
	}
	if req.Seats <= 0 {
		return apperrors.ErrBadRequest("seats must be positive")
	}
	if req.BasePrice < 0 || req.PricePerKm < 0 {
		return apperrors.ErrBadRequest("prices must not be negative")
	}
	return nil
}

// Create adds a vehicle to a partner's fleet, or to the platform fleet when
// no company is given.
func (s *VehicleService) Create(req entities.VehicleRequest) (*entities.VehicleResponse, error) {
	if err := validateVehicle(req); err != nil {
		return nil, err
	}
	vehicle := &db.Vehicle{
		Name:           req.Name,
		RegistrationNo: req.RegistrationNo,
		Seats:          req.Seats,
		BasePrice:      req.BasePrice,
		PricePerKm:     req.PricePerKm,
		Mileage:        req.Mileage,
		HasAC:          req.HasAC,
		Terrain:        utils.NormalizeTerrain(req.Terrain),
		CompanyID:      req.CompanyID,
	}
	if err := s.Repo.Create(vehicle); err != nil {
		return nil, err
	}
	resp := toVehicleResponse(vehicle)
	return &resp, nil
}

func (s *VehicleService) Update(id int, req entities.VehicleRequest, active bool) (*entities.VehicleResponse, error) {
	if err := validateVehicle(req); err != nil {
		return nil, err
	}
	vehicle, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound("vehicle not found")
	}
	vehicle.Name = req.Name
	vehicle.RegistrationNo = req.RegistrationNo
	vehicle.Seats = req.Seats
	vehicle.BasePrice = req.BasePrice
	vehicle.PricePerKm = req.PricePerKm
	vehicle.Mileage = req.Mileage
	vehicle.HasAC = req.HasAC
	vehicle.Terrain = utils.NormalizeTerrain(req.Terrain)
	vehicle.Active = active

	if err := s.Repo.Update(vehicle); err != nil {
		return nil, err
	}
	resp := toVehicleResponse(vehicle)
	return &resp, nil
}

func (s *VehicleService) Get(id int) (*entities.VehicleResponse, error) {
	vehicle, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound("vehicle not found")
	}
	resp := toVehicleResponse(vehicle)
	return &resp, nil
}

// Search lists vehicles free over the requested dates.
func (s *VehicleService) Search(req entities.VehicleSearchRequest, companyID int) ([]entities.VehicleResponse, error) {
	start, err := parseDay(req.StartDate)
	if err != nil {
		return nil, apperrors.ErrBadRequest("invalid start_date, expected YYYY-MM-DD")
	}
	end, err := parseDay(req.EndDate)
	if err != nil {
		return nil, apperrors.ErrBadRequest("invalid end_date, expected YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, apperrors.ErrBadRequest("end_date must not be before start_date")
	}

	terrain := ""
	if req.Terrain != "" {
		terrain = utils.NormalizeTerrain(req.Terrain)
	}
	vehicles, err := s.Repo.Search(start, end, req.MinSeats, req.HasAC, terrain, companyID)
	if err != nil {
		return nil, err
	}
	responses := make([]entities.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, toVehicleResponse(v))
	}
	return responses, nil
}

func (s *VehicleService) ListByCompany(companyID int) ([]entities.VehicleResponse, error) {
	vehicles, err := s.Repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	responses := make([]entities.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, toVehicleResponse(v))
	}
	return responses, nil
}

func (s *VehicleService) Delete(id int) error {
	if _, err := s.Repo.GetByID(id); err != nil {
		return apperrors.ErrNotFound("vehicle not found")
	}
	return s.Repo.SoftDelete(id)
}

func toVehicleResponse(v *db.Vehicle) entities.VehicleResponse {
	return entities.VehicleResponse{
		ID:             v.ID,
		Name:           v.Name,
		RegistrationNo: v.RegistrationNo,
		Seats:          v.Seats,
		BasePrice:      v.BasePrice,
		PricePerKm:     v.PricePerKm,
		Mileage:        v.Mileage,
		HasAC:          v.HasAC,
		Terrain:        v.Terrain,
		CompanyID:      v.CompanyID,
		AverageRating:  v.AverageRating,
		Active:         v.Active,
	}
}
