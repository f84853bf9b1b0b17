package converter

import (
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// TicketToResponse converts a Ticket entity to TicketResponse DTO
func TicketToResponse(ticket *entity.Ticket) *dto.TicketResponse {
	if ticket == nil {
		return nil
	}

	response := &dto.TicketResponse{
		ID:            ticket.ID,
		UUID:          ticket.UUID,
		DoctorShiftID: ticket.DoctorShiftID,
		ClientID:      ticket.ClientID,
		Status:        string(ticket.Status),
		FirstName:     ticket.FirstName,
		LastName:      ticket.LastName,
		BirthOfDay:    ticket.BirthOfDay.Format(dateLayout),
		Gender:        ticket.Gender,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}

	// Include appointment info if the doctor shift was loaded
	if ticket.DoctorShift.ID != 0 {
		response.WorkDate = ticket.DoctorShift.WorkDate.Format(dateLayout)
		if ticket.DoctorShift.Shift.ID != 0 {
			response.StartTime = ticket.DoctorShift.Shift.StartTime
			response.EndTime = ticket.DoctorShift.Shift.EndTime
		}
		if ticket.DoctorShift.Doctor.UserID != uuid.Nil {
			response.Doctor = DoctorProfileToResponse(&ticket.DoctorShift.Doctor)
		}
	}

	return response
}

// TicketsToResponses converts a slice of Ticket entities to TicketResponse DTOs
func TicketsToResponses(tickets []entity.Ticket) []dto.TicketResponse {
	responses := make([]dto.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		resp := TicketToResponse(&ticket)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
