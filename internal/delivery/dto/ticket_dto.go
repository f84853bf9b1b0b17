package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateTicketRequest struct {
	DoctorShiftID int    `json:"doctor_shift_id" validate:"required,min=1"`
	FirstName     string `json:"first_name" validate:"required,max=255"`
	LastName      string `json:"last_name" validate:"required,max=255"`
	BirthOfDay    string `json:"birth_of_day" validate:"required,datetime=2006-01-02"`
	Gender        string `json:"gender" validate:"required,oneof=Male Female Other"`
}

// ConfirmPaymentRequest is the payment provider's webhook payload. Only the
// ticket reference matters here; amounts are reconciled elsewhere.
type ConfirmPaymentRequest struct {
	TicketUUID string `json:"ticket_uuid" validate:"required,uuid4"`
}

// Response DTOs

type TicketResponse struct {
	ID            int64            `json:"id"`
	UUID          string           `json:"uuid"`
	DoctorShiftID int              `json:"doctor_shift_id"`
	ClientID      uuid.UUID        `json:"client_id"`
	Status        string           `json:"status"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	BirthOfDay    string           `json:"birth_of_day"`
	Gender        string           `json:"gender"`
	WorkDate      string           `json:"work_date,omitempty"`
	StartTime     string           `json:"start_time,omitempty"`
	EndTime       string           `json:"end_time,omitempty"`
	Doctor        *DoctorResponse  `json:"doctor,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type TicketListResponse struct {
	Tickets []TicketResponse `json:"tickets"`
	Total   int              `json:"total"`
}

// CalendarEntryResponse is one row of a doctor's worklist for a date.
type CalendarEntryResponse struct {
	DoctorShiftID int     `json:"doctor_shift_id"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	TicketUUID    string  `json:"ticket_uuid"`
	Status        string  `json:"status"`
	PatientName   string  `json:"patient_name"`
	BirthOfDay    string  `json:"birth_of_day"`
	Gender        string  `json:"gender"`
}

type CalendarDayResponse struct {
	Date    string                  `json:"date"`
	Entries []CalendarEntryResponse `json:"entries"`
	Total   int                     `json:"total"`
}
