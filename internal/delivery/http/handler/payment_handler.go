package handler

import (
	"encoding/json"
	"net/http"

	"medibook/internal/delivery/dto"
	"medibook/internal/usecase"
	"medibook/pkg/response"
	"medibook/pkg/validator"
)

// PaymentHandler receives payment provider callbacks. Providers redeliver
// webhooks, so confirming the same ticket twice must answer 200 both times.
type PaymentHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewPaymentHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *PaymentHandler {
	return &PaymentHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// ConfirmPayment handles the payment success webhook
// @Summary Confirm a ticket payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.ConfirmPaymentRequest true "Confirm Payment Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payments/webhook [post]
func (h *PaymentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	ticket, err := h.bookingUsecase.ConfirmPayment(r.Context(), req.TicketUUID)
	if err != nil {
		switch err {
		case usecase.ErrTicketNotFound:
			response.NotFound(w, "Ticket not found")
		case usecase.ErrTicketNotConfirmable:
			response.Conflict(w, "Ticket can no longer be confirmed")
		default:
			response.InternalServerError(w, "Failed to confirm payment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment confirmed", ticket)
}
