package handler

import (
	"encoding/json"
	"net/http"

	"medibook/internal/delivery/dto"
	"medibook/internal/delivery/http/middleware"
	"medibook/internal/usecase"
	"medibook/pkg/response"
	"medibook/pkg/validator"
)

// AvailabilityHandler exposes the doctor's schedule management endpoints.
// Every operation acts on the authenticated doctor's own schedule; the
// doctor id comes from the token, not the payload.
type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// AssignShifts offers catalog slots on a work date
// @Summary Assign shifts to the authenticated doctor
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AssignShiftsRequest true "Assign Shifts Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctor/shifts [post]
func (h *AvailabilityHandler) AssignShifts(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.AssignShiftsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.availabilityUsecase.AssignShifts(r.Context(), doctorID, &req)
	if err != nil {
		h.writeAvailabilityError(w, err, "Failed to assign shifts")
		return
	}

	response.Success(w, http.StatusOK, "Shifts assigned successfully", result)
}

// UnassignShifts retracts offered slots on a work date
// @Summary Unassign shifts from the authenticated doctor
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UnassignShiftsRequest true "Unassign Shifts Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctor/shifts [delete]
func (h *AvailabilityHandler) UnassignShifts(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UnassignShiftsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.availabilityUsecase.UnassignShifts(r.Context(), doctorID, &req)
	if err != nil {
		h.writeAvailabilityError(w, err, "Failed to unassign shifts")
		return
	}

	response.Success(w, http.StatusOK, "Shifts unassigned", result)
}

// ReplaceShifts reconciles a work date against a desired slot set
// @Summary Replace the authenticated doctor's shifts for a date
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ReplaceShiftsRequest true "Replace Shifts Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctor/shifts [put]
func (h *AvailabilityHandler) ReplaceShifts(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ReplaceShiftsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.availabilityUsecase.ReplaceShiftsForDate(r.Context(), doctorID, &req)
	if err != nil {
		h.writeAvailabilityError(w, err, "Failed to replace shifts")
		return
	}

	response.Success(w, http.StatusOK, "Shifts replaced", result)
}

// MySchedule lists the authenticated doctor's slots on a date
// @Summary Get the authenticated doctor's schedule for a date
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param date query string true "Work date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /doctor/shifts [get]
func (h *AvailabilityHandler) MySchedule(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.availabilityUsecase.ListShiftsForDoctorOnDate(r.Context(), doctorID, workDate)
	if err != nil {
		h.writeAvailabilityError(w, err, "Failed to get schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", result)
}

func (h *AvailabilityHandler) writeAvailabilityError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrInvalidWorkDate, usecase.ErrPastWorkDate, usecase.ErrUnknownShift:
		response.BadRequest(w, err.Error())
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
