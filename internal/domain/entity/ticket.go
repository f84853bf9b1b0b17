package entity

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus represents the status of a booking ticket
type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusConfirmed TicketStatus = "confirmed"
	TicketStatusCancelled TicketStatus = "cancelled"
	TicketStatusCompleted TicketStatus = "completed"
)

// Ticket is a patient's booking against one DoctorShift. The patient fields
// are a snapshot taken at booking time; later profile edits never touch them.
// The unique index on DoctorShiftID is the arbiter that keeps a slot
// exclusively booked under concurrent requests.
type Ticket struct {
	ID            int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID          string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"uuid"`
	DoctorShiftID int          `gorm:"not null;uniqueIndex:uq_ticket_doctor_shift" json:"doctor_shift_id"`
	ClientID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"client_id"`
	Status        TicketStatus `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	FirstName     string       `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName      string       `gorm:"type:varchar(255);not null" json:"last_name"`
	BirthOfDay    time.Time    `gorm:"type:date;not null" json:"birth_of_day"`
	Gender        string       `gorm:"type:varchar(50);not null" json:"gender"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Client      PatientProfile `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	DoctorShift DoctorShift    `gorm:"foreignKey:DoctorShiftID" json:"doctor_shift,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// IsPending checks if the ticket is awaiting payment
func (t *Ticket) IsPending() bool {
	return t.Status == TicketStatusPending
}

// IsConfirmed checks if the ticket has been paid for
func (t *Ticket) IsConfirmed() bool {
	return t.Status == TicketStatusConfirmed
}

// IsActive reports whether the ticket still occupies its slot
// (pending or confirmed).
func (t *Ticket) IsActive() bool {
	return t.Status == TicketStatusPending || t.Status == TicketStatusConfirmed
}

// IsTerminal reports whether no further transition is allowed.
func (t *Ticket) IsTerminal() bool {
	return t.Status == TicketStatusCancelled || t.Status == TicketStatusCompleted
}

// ActiveStatuses lists the statuses that count as holding a slot.
func ActiveStatuses() []TicketStatus {
	return []TicketStatus{TicketStatusPending, TicketStatusConfirmed}
}
