package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorShift binds a doctor to one slot-catalog entry on one calendar date:
// "this doctor is bookable in this slot on this date". The composite unique
// index makes assigning the same slot twice a no-op at the schema level.
type DoctorShift struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_doctor_shift_date" json:"doctor_id"`
	ShiftID   int       `gorm:"not null;uniqueIndex:uq_doctor_shift_date" json:"shift_id"`
	WorkDate  time.Time `gorm:"type:date;not null;index;uniqueIndex:uq_doctor_shift_date" json:"work_date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Shift  Shift         `gorm:"foreignKey:ShiftID" json:"shift,omitempty"`
	Ticket *Ticket       `gorm:"foreignKey:DoctorShiftID" json:"ticket,omitempty"`
}

func (DoctorShift) TableName() string {
	return "doctor_shifts"
}

// HasActiveTicket reports whether the loaded ticket blocks unassigning this
// slot. Callers must have preloaded Ticket.
func (ds *DoctorShift) HasActiveTicket() bool {
	return ds.Ticket != nil && ds.Ticket.IsActive()
}
