package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fleetbooking/internal/auth"
	"fleetbooking/internal/entities"
	"fleetbooking/internal/service"
)

type VehicleHandler struct {
	Service *service.VehicleService
}

func NewVehicleHandler(svc *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{Service: svc}
}

// Search is the public availability-aware vehicle listing.
func (h *VehicleHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req entities.VehicleSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	vehicles, err := h.Service.Search(req, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	vehicle, err := h.Service.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Create adds a vehicle. Partners may only add to their own fleet; admins can
// set any company or leave it platform-owned.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	claims := auth.ClaimsFrom(r)
	if claims.Role == auth.RolePartner {
		req.CompanyID = claims.CompanyID
	}
	vehicle, err := h.Service.Create(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req struct {
		entities.VehicleRequest
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.checkOwnership(r, id); err != nil {
		writeError(w, err)
		return
	}
	vehicle, err := h.Service.Update(id, req.VehicleRequest, req.Active)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r)
	companyID := 0
	if claims.Role == auth.RolePartner && claims.CompanyID != nil {
		companyID = *claims.CompanyID
	}
	vehicles, err := h.Service.ListByCompany(companyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := h.checkOwnership(r, id); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Service.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}

func (h *VehicleHandler) checkOwnership(r *http.Request, vehicleID int) error {
	claims := auth.ClaimsFrom(r)
	if claims.Role == auth.RoleAdmin {
		return nil
	}
	vehicle, err := h.Service.Get(vehicleID)
	if err != nil {
		return err
	}
	if claims.CompanyID == nil || vehicle.CompanyID == nil || *vehicle.CompanyID != *claims.CompanyID {
		return errForbiddenVehicle
	}
	return nil
}
