package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fleetbooking/internal/db"
	"fleetbooking/internal/repository"
	"fleetbooking/internal/service"
)

type AdminHandler struct {
	AuthService    *service.AuthService
	BookingService *service.BookingService
	ReportService  *service.ReportService
	AgreementSvc   *service.AgreementService
	Expenses       *service.ExpenseService
	UserRepo       *repository.UserRepository
}

func NewAdminHandler(authSvc *service.AuthService, bookingSvc *service.BookingService,
	reportSvc *service.ReportService, agreementSvc *service.AgreementService,
	expenses *service.ExpenseService, userRepo *repository.UserRepository) *AdminHandler {
	return &AdminHandler{
		AuthService:    authSvc,
		BookingService: bookingSvc,
		ReportService:  reportSvc,
		AgreementSvc:   agreementSvc,
		Expenses:       expenses,
		UserRepo:       userRepo,
	}
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	status := r.URL.Query().Get("status")
	vehicleID, _ := strconv.Atoi(r.URL.Query().Get("vehicle_id"))
	bookings, err := h.BookingService.List(date, status, vehicleID, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.AuthService.ListUsers(r.URL.Query().Get("role"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.AuthService.SetUserActive(id, req.Active); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User updated"})
}

func (h *AdminHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		ContactName  string `json:"contact_name"`
		ContactPhone string `json:"contact_phone"`
		ContactEmail string `json:"contact_email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Company name is required", http.StatusBadRequest)
		return
	}
	company := &db.Company{
		Name:         req.Name,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
	}
	if err := h.UserRepo.CreateCompany(company); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

func (h *AdminHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.UserRepo.ListCompanies()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (h *AdminHandler) BookingProfits(w http.ResponseWriter, r *http.Request) {
	companyID, _ := strconv.Atoi(r.URL.Query().Get("company_id"))
	profits, err := h.ReportService.BookingProfits(companyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profits)
}

func (h *AdminHandler) CompanyReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.ReportService.CompanyReports()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *AdminHandler) VehicleUtilization(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	utilization, err := h.ReportService.VehicleUtilization(from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, utilization)
}

// DownloadAgreement streams the rental agreement / invoice PDF.
func (h *AdminHandler) DownloadAgreement(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var buf bytes.Buffer
	if err := h.AgreementSvc.WriteAgreement(code, &buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=agreement-"+code+".pdf")
	w.Write(buf.Bytes())
}

func (h *AdminHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req struct {
		Category    string  `json:"category"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	expense, err := h.Expenses.AddExpense(code, req.Category, req.Description, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (h *AdminHandler) AddFuelLog(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req struct {
		Litres   float64  `json:"litres"`
		Amount   float64  `json:"amount"`
		Odometer *float64 `json:"odometer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	log, err := h.Expenses.AddFuelLog(code, req.Litres, req.Amount, req.Odometer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

func (h *AdminHandler) ListCosts(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	expenses, fuel, err := h.Expenses.ListForBooking(code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"expenses":  expenses,
		"fuel_logs": fuel,
	})
}
