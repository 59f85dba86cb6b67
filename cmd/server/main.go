package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"fleetbooking/internal/api"
	"fleetbooking/internal/auth"
	"fleetbooking/internal/repository"
	"fleetbooking/internal/service"
	"fleetbooking/internal/ws"
)

func main() {
	godotenv.Load()
	logrus.SetFormatter(&logrus.JSONFormatter{})

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logrus.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		logrus.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		logrus.Fatalf("Failed to connect to DB: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	userRepo := repository.NewUserRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)
	expenseRepo := repository.NewExpenseRepository(database)
	reportRepo := repository.NewReportRepository(database)
	jobRepo := repository.NewJobRepository(database)

	hub := ws.NewHub()
	notifySvc := service.NewNotifyService()
	bookingSvc := service.NewBookingService(bookingRepo, vehicleRepo, paymentRepo, notifySvc, hub)
	vehicleSvc := service.NewVehicleService(vehicleRepo)
	authSvc := service.NewAuthService(userRepo)
	paymentSvc := service.NewPaymentService(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"),
		bookingRepo, paymentRepo, notifySvc)
	agreementSvc := service.NewAgreementService(bookingRepo, vehicleRepo, paymentRepo)
	expenseSvc := service.NewExpenseService(expenseRepo, bookingRepo)
	reportSvc := service.NewReportService(reportRepo)
	jobSvc := service.NewJobService(jobRepo)

	authHandler := api.NewAuthHandler(authSvc)
	vehicleHandler := api.NewVehicleHandler(vehicleSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	paymentHandler := api.NewPaymentHandler(paymentSvc)
	tripHandler := api.NewTripHandler(bookingSvc)
	adminHandler := api.NewAdminHandler(authSvc, bookingSvc, reportSvc, agreementSvc, expenseSvc, userRepo)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/vehicles/search", vehicleHandler.Search).Methods("POST")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.Get).Methods("GET")
	r.HandleFunc("/api/availability", bookingHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/ws/trips/{code}", ws.TripHandler(hub)).Methods("GET")

	// Customer endpoints (any authenticated account)
	customer := r.PathPrefix("/api").Subrouter()
	customer.Use(auth.Middleware())
	customer.HandleFunc("/bookings", bookingHandler.Create).Methods("POST")
	customer.HandleFunc("/bookings/mine", bookingHandler.ListMine).Methods("GET")
	customer.HandleFunc("/bookings/{code}", bookingHandler.Get).Methods("GET")
	customer.HandleFunc("/bookings/{code}", bookingHandler.Cancel).Methods("DELETE")
	customer.HandleFunc("/bookings/{code}/review", bookingHandler.SubmitReview).Methods("POST")
	customer.HandleFunc("/payments/order", paymentHandler.CreateOrder).Methods("POST")
	customer.HandleFunc("/payments/verify", paymentHandler.Verify).Methods("POST")

	// Fleet endpoints (partner/admin)
	fleet := r.PathPrefix("/api/fleet").Subrouter()
	fleet.Use(auth.Middleware(auth.RoleAdmin, auth.RolePartner))
	fleet.HandleFunc("/vehicles", vehicleHandler.List).Methods("GET")
	fleet.HandleFunc("/vehicles", vehicleHandler.Create).Methods("POST")
	fleet.HandleFunc("/vehicles/{id}", vehicleHandler.Update).Methods("PUT")
	fleet.HandleFunc("/vehicles/{id}", vehicleHandler.Delete).Methods("DELETE")
	fleet.HandleFunc("/bookings/{code}/vehicle", bookingHandler.AssignVehicle).Methods("PUT")
	fleet.HandleFunc("/bookings/{code}/payments", bookingHandler.RecordPayment).Methods("POST")
	fleet.HandleFunc("/bookings/{code}/expenses", adminHandler.AddExpense).Methods("POST")
	fleet.HandleFunc("/bookings/{code}/fuel", adminHandler.AddFuelLog).Methods("POST")
	fleet.HandleFunc("/bookings/{code}/costs", adminHandler.ListCosts).Methods("GET")
	fleet.HandleFunc("/bookings/{code}/agreement", adminHandler.DownloadAgreement).Methods("GET")

	// Trip endpoints (driver/partner/admin)
	trips := r.PathPrefix("/api/trips").Subrouter()
	trips.Use(auth.Middleware(auth.RoleAdmin, auth.RolePartner, auth.RoleDriver))
	trips.HandleFunc("/{code}/start", tripHandler.Start).Methods("POST")
	trips.HandleFunc("/{code}/end", tripHandler.End).Methods("POST")
	trips.HandleFunc("/{code}/location", tripHandler.UpdateLocation).Methods("POST")

	// Admin endpoints
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Middleware(auth.RoleAdmin))
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}/active", adminHandler.SetUserActive).Methods("PUT")
	admin.HandleFunc("/companies", adminHandler.CreateCompany).Methods("POST")
	admin.HandleFunc("/companies", adminHandler.ListCompanies).Methods("GET")
	admin.HandleFunc("/reports/bookings", adminHandler.BookingProfits).Methods("GET")
	admin.HandleFunc("/reports/companies", adminHandler.CompanyReports).Methods("GET")
	admin.HandleFunc("/reports/utilization", adminHandler.VehicleUtilization).Methods("GET")

	c := cron.New()
	c.AddFunc("@hourly", func() {
		if err := jobSvc.CancelStalePendingBookings(); err != nil {
			logrus.WithError(err).Error("stale pending cleanup failed")
		}
		if err := jobSvc.FlagOverrunningTrips(); err != nil {
			logrus.WithError(err).Error("overrunning trip check failed")
		}
	})
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{os.Getenv("CORS_ORIGIN")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.Infof("Server running on port %s", port)
	logrus.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
