package handler

import (
	"encoding/json"
	"net/http"

	"medibook/internal/delivery/dto"
	"medibook/internal/delivery/http/middleware"
	"medibook/internal/usecase"
	"medibook/pkg/response"
	"medibook/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// BookingHandler exposes the patient-facing ticket lifecycle plus the public
// availability listing for one doctor.
type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// CreateTicket books a free slot for the authenticated patient
// @Summary Book an appointment slot
// @Tags Booking
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTicketRequest true "Create Ticket Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 410 {object} response.Response
// @Router /tickets [post]
func (h *BookingHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	ticket, err := h.bookingUsecase.CreateBooking(r.Context(), clientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrSlotExpired:
			response.Error(w, http.StatusGone, "Slot start time has already passed", nil)
		case usecase.ErrSlotTaken:
			response.Conflict(w, "Slot has already been booked")
		case usecase.ErrDuplicateBooking:
			response.Conflict(w, "You already have an active booking with this doctor on that day")
		case usecase.ErrInvalidWorkDate:
			response.BadRequest(w, "Invalid birth date format, use YYYY-MM-DD")
		default:
			response.InternalServerError(w, "Failed to create ticket")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Ticket created successfully", ticket)
}

// CancelTicket cancels the authenticated patient's ticket
// @Summary Cancel a booking
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param uuid path string true "Ticket UUID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tickets/{uuid}/cancel [post]
func (h *BookingHandler) CancelTicket(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	ticketUUID := mux.Vars(r)["uuid"]

	ticket, err := h.bookingUsecase.CancelBooking(r.Context(), clientID, ticketUUID)
	if err != nil {
		switch err {
		case usecase.ErrTicketNotFound:
			response.NotFound(w, "Ticket not found")
		case usecase.ErrTicketNotOwned:
			response.Forbidden(w, "Ticket belongs to another patient")
		case usecase.ErrTicketNotCancellable:
			response.Conflict(w, "Ticket can no longer be cancelled")
		case usecase.ErrCancelWindowClosed:
			response.Conflict(w, "Cancellation window has closed")
		default:
			response.InternalServerError(w, "Failed to cancel ticket")
		}
		return
	}

	response.Success(w, http.StatusOK, "Ticket cancelled successfully", ticket)
}

// CompleteTicket marks a confirmed ticket completed (doctor only)
// @Summary Complete an appointment
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param uuid path string true "Ticket UUID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctor/tickets/{uuid}/complete [post]
func (h *BookingHandler) CompleteTicket(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	ticketUUID := mux.Vars(r)["uuid"]

	ticket, err := h.bookingUsecase.CompleteTicket(r.Context(), doctorID, ticketUUID)
	if err != nil {
		switch err {
		case usecase.ErrTicketNotFound:
			response.NotFound(w, "Ticket not found")
		case usecase.ErrTicketNotOwned:
			response.Forbidden(w, "Ticket belongs to another doctor's slot")
		case usecase.ErrTicketNotCompletable:
			response.Conflict(w, "Only a confirmed ticket can be completed")
		default:
			response.InternalServerError(w, "Failed to complete ticket")
		}
		return
	}

	response.Success(w, http.StatusOK, "Ticket completed successfully", ticket)
}

// MyTickets lists the authenticated patient's tickets
// @Summary List my tickets
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /tickets [get]
func (h *BookingHandler) MyTickets(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	tickets, err := h.bookingUsecase.GetMyTickets(r.Context(), clientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get tickets")
		return
	}

	response.Success(w, http.StatusOK, "Tickets retrieved successfully", tickets)
}

// AvailableSlots lists a doctor's free slots grouped by day
// @Summary List a doctor's available slots
// @Tags Booking
// @Produce json
// @Param id path string true "Doctor ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /doctors/{id}/slots [get]
func (h *BookingHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor id")
		return
	}

	query := r.URL.Query()
	slots, err := h.bookingUsecase.ListAvailableSlots(r.Context(), doctorID, query.Get("from"), query.Get("to"))
	if err != nil {
		switch err {
		case usecase.ErrInvalidWorkDate, usecase.ErrInvalidDateRange:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
