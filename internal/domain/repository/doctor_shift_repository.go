package repository

import (
	"time"

	"medibook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DoctorShiftRepository manages availability instances. Reads that feed a
// booking or unassign decision must eagerly load the Shift and Ticket rows so
// the decision is made against one consistent view, not a chain of lazy
// lookups.
type DoctorShiftRepository interface {
	Create(db *gorm.DB, doctorShift *entity.DoctorShift) error
	FindByID(db *gorm.DB, id int) (*entity.DoctorShift, error)
	FindByTriple(db *gorm.DB, doctorID uuid.UUID, shiftID int, workDate time.Time) (*entity.DoctorShift, error)
	FindForDoctorOnDate(db *gorm.DB, doctorID uuid.UUID, workDate time.Time) ([]entity.DoctorShift, error)
	FindNeverBooked(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.DoctorShift, error)
	Delete(db *gorm.DB, id int) (int64, error)
}
