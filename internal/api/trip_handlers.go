package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"fleetbooking/internal/entities"
	"fleetbooking/internal/service"
)

type TripHandler struct {
	Service *service.BookingService
}

func NewTripHandler(svc *service.BookingService) *TripHandler {
	return &TripHandler{Service: svc}
}

func (h *TripHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req entities.TripStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.StartTrip(code, req.Odometer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *TripHandler) End(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req entities.TripEndRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.EndTrip(code, req.Odometer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// UpdateLocation accepts the driver's position; subscribers on the trip topic
// get the update pushed, the booking row keeps the latest tuple.
func (h *TripHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var update entities.LocationUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.UpdateLocation(code, update); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Location updated"})
}
