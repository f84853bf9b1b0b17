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

type ShiftCatalogHandler struct {
	shiftCatalogUsecase usecase.ShiftCatalogUsecase
	validator           *validator.CustomValidator
}

func NewShiftCatalogHandler(shiftCatalogUsecase usecase.ShiftCatalogUsecase, validator *validator.CustomValidator) *ShiftCatalogHandler {
	return &ShiftCatalogHandler{
		shiftCatalogUsecase: shiftCatalogUsecase,
		validator:           validator,
	}
}

// CreateShift adds a slot template to the catalog (admin only)
// @Summary Create a shift template
// @Tags Shifts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateShiftRequest true "Create Shift Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/shifts [post]
func (h *ShiftCatalogHandler) CreateShift(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	shift, err := h.shiftCatalogUsecase.CreateShift(r.Context(), adminID, &req)
	if err != nil {
		switch err {
		case usecase.ErrShiftTimeOrder:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create shift")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Shift created successfully", shift)
}

// ListShifts lists the slot catalog
// @Summary List shift templates
// @Tags Shifts
// @Produce json
// @Success 200 {object} response.Response
// @Router /shifts [get]
func (h *ShiftCatalogHandler) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftCatalogUsecase.ListShifts(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list shifts")
		return
	}

	response.Success(w, http.StatusOK, "Shifts retrieved successfully", shifts)
}
