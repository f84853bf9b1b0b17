package http

import (
	"net/http"

	"medibook/internal/delivery/http/handler"
	"medibook/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	availabilityHandler *handler.AvailabilityHandler
	bookingHandler      *handler.BookingHandler
	paymentHandler      *handler.PaymentHandler
	appointmentHandler  *handler.AppointmentHandler
	directoryHandler    *handler.DirectoryHandler
	shiftCatalogHandler *handler.ShiftCatalogHandler
	patientHandler      *handler.PatientHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	availabilityHandler *handler.AvailabilityHandler,
	bookingHandler *handler.BookingHandler,
	paymentHandler *handler.PaymentHandler,
	appointmentHandler *handler.AppointmentHandler,
	directoryHandler *handler.DirectoryHandler,
	shiftCatalogHandler *handler.ShiftCatalogHandler,
	patientHandler *handler.PatientHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		availabilityHandler: availabilityHandler,
		bookingHandler:      bookingHandler,
		paymentHandler:      paymentHandler,
		appointmentHandler:  appointmentHandler,
		directoryHandler:    directoryHandler,
		shiftCatalogHandler: shiftCatalogHandler,
		patientHandler:      patientHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Public directory and slot browsing
	api.HandleFunc("/doctors", r.directoryHandler.SearchDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.directoryHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/slots", r.bookingHandler.AvailableSlots).Methods(http.MethodGet)
	api.HandleFunc("/departments", r.directoryHandler.ListDepartments).Methods(http.MethodGet)
	api.HandleFunc("/medical-centers", r.directoryHandler.ListMedicalCenters).Methods(http.MethodGet)
	api.HandleFunc("/shifts", r.shiftCatalogHandler.ListShifts).Methods(http.MethodGet)

	// Payment provider webhook
	api.HandleFunc("/payments/webhook", r.paymentHandler.ConfirmPayment).Methods(http.MethodPost)

	// Ticket routes. Booking and cancelling are patient-only; the single
	// ticket lookup is role-aware and open to any authenticated user.
	tickets := api.PathPrefix("/tickets").Subrouter()
	tickets.Use(r.authMiddleware.Authenticate)
	tickets.Handle("", middleware.RequirePatient(http.HandlerFunc(r.bookingHandler.CreateTicket))).Methods(http.MethodPost)
	tickets.Handle("", middleware.RequirePatient(http.HandlerFunc(r.bookingHandler.MyTickets))).Methods(http.MethodGet)
	tickets.Handle("/{uuid}/cancel", middleware.RequirePatient(http.HandlerFunc(r.bookingHandler.CancelTicket))).Methods(http.MethodPost)
	tickets.HandleFunc("/{uuid}", r.appointmentHandler.GetTicket).Methods(http.MethodGet)

	// Patient profile routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/profile", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patient.HandleFunc("/profile", r.patientHandler.UpdateProfile).Methods(http.MethodPut)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/shifts", r.availabilityHandler.AssignShifts).Methods(http.MethodPost)
	doctor.HandleFunc("/shifts", r.availabilityHandler.ReplaceShifts).Methods(http.MethodPut)
	doctor.HandleFunc("/shifts", r.availabilityHandler.UnassignShifts).Methods(http.MethodDelete)
	doctor.HandleFunc("/shifts", r.availabilityHandler.MySchedule).Methods(http.MethodGet)
	doctor.HandleFunc("/calendar", r.appointmentHandler.Calendar).Methods(http.MethodGet)
	doctor.HandleFunc("/tickets/{uuid}/complete", r.bookingHandler.CompleteTicket).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/shifts", r.shiftCatalogHandler.CreateShift).Methods(http.MethodPost)
	admin.HandleFunc("/stats", r.appointmentHandler.DashboardStats).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
