package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"fleetbooking/internal/auth"
	"fleetbooking/internal/entities"
	apperrors "fleetbooking/internal/errors"
	"fleetbooking/internal/service"
)

var errForbiddenVehicle = apperrors.ErrForbidden("vehicle belongs to another company")

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req entities.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.CheckAvailability(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid booking data", http.StatusBadRequest)
		return
	}
	claims := auth.ClaimsFrom(r)

	// Manual (staff/partner) entries start confirmed; customers cannot
	// request that path.
	if claims.Role == auth.RoleCustomer {
		req.Manual = false
	}

	booking, err := h.Service.Create(&req, claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	booking, err := h.Service.GetByCode(code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// ListMine returns the caller's own bookings.
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFrom(r)
	bookings, err := h.Service.List("", "", 0, claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) AssignVehicle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req entities.AssignVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.AssignVehicle(code, req.VehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	resp, err := h.Service.Cancel(code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// RecordPayment lets staff log an advance received outside the gateway.
func (h *BookingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req entities.PaymentLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	booking, err := h.Service.RecordPayment(code, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req entities.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Service.SubmitReview(code, req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Review recorded"})
}
