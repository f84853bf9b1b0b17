package repository

import (
	"time"

	"medibook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketRepository interface {
	Create(db *gorm.DB, ticket *entity.Ticket) error
	FindByID(db *gorm.DB, id int64) (*entity.Ticket, error)
	FindByUUID(db *gorm.DB, uuid string) (*entity.Ticket, error)
	FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Ticket, error)
	FindByDoctorShiftID(db *gorm.DB, doctorShiftID int) (*entity.Ticket, error)
	FindActiveByClientDoctorDate(db *gorm.DB, clientID, doctorID uuid.UUID, workDate time.Time) (*entity.Ticket, error)
	FindForDoctorOnDate(db *gorm.DB, doctorID uuid.UUID, workDate time.Time) ([]entity.Ticket, error)
	// UpdateStatusIf transitions the ticket status only when the current
	// status is one of from. Returns affected rows so callers can detect a
	// lost race without a second read.
	UpdateStatusIf(db *gorm.DB, id int64, from []entity.TicketStatus, to entity.TicketStatus) (int64, error)
	CountAll(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status entity.TicketStatus) (int64, error)
}
