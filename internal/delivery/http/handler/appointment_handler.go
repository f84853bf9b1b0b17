package handler

import (
	"net/http"

	"medibook/internal/delivery/http/middleware"
	"medibook/internal/usecase"
	"medibook/pkg/response"

	"github.com/gorilla/mux"
)

// AppointmentHandler serves the read side: ticket lookup, the doctor's day
// calendar, and the admin dashboard counters.
type AppointmentHandler struct {
	queryUsecase usecase.AppointmentQueryUsecase
}

func NewAppointmentHandler(queryUsecase usecase.AppointmentQueryUsecase) *AppointmentHandler {
	return &AppointmentHandler{queryUsecase: queryUsecase}
}

// GetTicket returns one ticket, subject to role visibility
// @Summary Get a ticket by UUID
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param uuid path string true "Ticket UUID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tickets/{uuid} [get]
func (h *AppointmentHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	ticketUUID := mux.Vars(r)["uuid"]

	ticket, err := h.queryUsecase.GetTicketByUUID(r.Context(), callerID, roleID, ticketUUID)
	if err != nil {
		switch err {
		case usecase.ErrTicketNotFound:
			response.NotFound(w, "Ticket not found")
		default:
			response.InternalServerError(w, "Failed to get ticket")
		}
		return
	}

	response.Success(w, http.StatusOK, "Ticket retrieved successfully", ticket)
}

// Calendar returns the authenticated doctor's worklist for a date
// @Summary Get the doctor's calendar for a date
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param date query string true "Work date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /doctor/calendar [get]
func (h *AppointmentHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	workDate := r.URL.Query().Get("date")
	if workDate == "" {
		response.BadRequest(w, "date query parameter is required")
		return
	}

	calendar, err := h.queryUsecase.DoctorDayCalendar(r.Context(), doctorID, workDate)
	if err != nil {
		switch err {
		case usecase.ErrInvalidWorkDate:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to get calendar")
		}
		return
	}

	response.Success(w, http.StatusOK, "Calendar retrieved successfully", calendar)
}

// DashboardStats returns the admin landing-page counters
// @Summary Get dashboard statistics
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/stats [get]
func (h *AppointmentHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queryUsecase.DashboardStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats retrieved successfully", stats)
}
