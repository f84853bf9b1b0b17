package repository

import (
	"errors"
	"time"

	"medibook/internal/domain/entity"
	domainRepo "medibook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ticketRepository struct{}

func NewTicketRepository() domainRepo.TicketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) Create(db *gorm.DB, ticket *entity.Ticket) error {
	return db.Create(ticket).Error
}

func (r *ticketRepository) FindByID(db *gorm.DB, id int64) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := db.Preload("DoctorShift.Shift").Where("id = ?", id).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByUUID(db *gorm.DB, ticketUUID string) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := db.
		Preload("DoctorShift.Shift").
		Preload("DoctorShift.Doctor.User").
		Preload("DoctorShift.Doctor.Department").
		Preload("DoctorShift.Doctor.MedicalCenter").
		Where("uuid = ?", ticketUUID).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := db.
		Preload("DoctorShift.Shift").
		Preload("DoctorShift.Doctor.User").
		Preload("DoctorShift.Doctor.Department").
		Preload("DoctorShift.Doctor.MedicalCenter").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) FindByDoctorShiftID(db *gorm.DB, doctorShiftID int) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := db.Where("doctor_shift_id = ?", doctorShiftID).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

// FindActiveByClientDoctorDate looks for a pending or confirmed ticket held
// by the client against the same doctor on the same work date. Backs the
// one-active-booking-per-patient-per-doctor-per-day rule.
func (r *ticketRepository) FindActiveByClientDoctorDate(db *gorm.DB, clientID, doctorID uuid.UUID, workDate time.Time) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := db.
		Joins("JOIN doctor_shifts ON doctor_shifts.id = tickets.doctor_shift_id").
		Where("tickets.client_id = ?", clientID).
		Where("doctor_shifts.doctor_id = ? AND doctor_shifts.work_date = ?", doctorID, entity.DateOnly(workDate)).
		Where("tickets.status IN ?", entity.ActiveStatuses()).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

// FindForDoctorOnDate is the doctor's worklist: every ticket booked against
// one of their slots on the given date, with the slot template attached.
func (r *ticketRepository) FindForDoctorOnDate(db *gorm.DB, doctorID uuid.UUID, workDate time.Time) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	err := db.
		Joins("JOIN doctor_shifts ON doctor_shifts.id = tickets.doctor_shift_id").
		Joins("JOIN shifts ON shifts.id = doctor_shifts.shift_id").
		Where("doctor_shifts.doctor_id = ? AND doctor_shifts.work_date = ?", doctorID, entity.DateOnly(workDate)).
		Preload("DoctorShift.Shift").
		Order("shifts.start_time ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) UpdateStatusIf(db *gorm.DB, id int64, from []entity.TicketStatus, to entity.TicketStatus) (int64, error) {
	result := db.Model(&entity.Ticket{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *ticketRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Ticket{}).Count(&count).Error
	return count, err
}

func (r *ticketRepository) CountByStatus(db *gorm.DB, status entity.TicketStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Ticket{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
