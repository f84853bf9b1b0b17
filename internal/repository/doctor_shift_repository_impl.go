package repository

import (
	"errors"
	"time"

	"medibook/internal/domain/entity"
	domainRepo "medibook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorShiftRepository struct{}

func NewDoctorShiftRepository() domainRepo.DoctorShiftRepository {
	return &doctorShiftRepository{}
}

func (r *doctorShiftRepository) Create(db *gorm.DB, doctorShift *entity.DoctorShift) error {
	return db.Create(doctorShift).Error
}

func (r *doctorShiftRepository) FindByID(db *gorm.DB, id int) (*entity.DoctorShift, error) {
	var doctorShift entity.DoctorShift
	err := db.Preload("Shift").Preload("Ticket").Where("id = ?", id).First(&doctorShift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctorShift, nil
}

func (r *doctorShiftRepository) FindByTriple(db *gorm.DB, doctorID uuid.UUID, shiftID int, workDate time.Time) (*entity.DoctorShift, error) {
	var doctorShift entity.DoctorShift
	err := db.Preload("Shift").Preload("Ticket").
		Where("doctor_id = ? AND shift_id = ? AND work_date = ?", doctorID, shiftID, entity.DateOnly(workDate)).
		First(&doctorShift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctorShift, nil
}

// FindForDoctorOnDate loads a doctor's slots for one date with the shift
// template and any ticket attached, ordered by start time. One query; the
// unassign decision must not re-read per row.
func (r *doctorShiftRepository) FindForDoctorOnDate(db *gorm.DB, doctorID uuid.UUID, workDate time.Time) ([]entity.DoctorShift, error) {
	var doctorShifts []entity.DoctorShift
	err := db.
		Joins("JOIN shifts ON shifts.id = doctor_shifts.shift_id").
		Where("doctor_shifts.doctor_id = ? AND doctor_shifts.work_date = ?", doctorID, entity.DateOnly(workDate)).
		Preload("Shift").Preload("Ticket").
		Order("shifts.start_time ASC").
		Find(&doctorShifts).Error
	if err != nil {
		return nil, err
	}
	return doctorShifts, nil
}

// FindNeverBooked returns the doctor's slots in [from, to] that no ticket of
// any status has ever been created against. A slot with a cancelled ticket is
// not reoffered; the doctor_shift_id unique index on tickets retires it.
func (r *doctorShiftRepository) FindNeverBooked(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.DoctorShift, error) {
	var doctorShifts []entity.DoctorShift
	err := db.
		Joins("JOIN shifts ON shifts.id = doctor_shifts.shift_id").
		Joins("LEFT JOIN tickets ON tickets.doctor_shift_id = doctor_shifts.id").
		Where("doctor_shifts.doctor_id = ?", doctorID).
		Where("doctor_shifts.work_date >= ? AND doctor_shifts.work_date <= ?", entity.DateOnly(from), entity.DateOnly(to)).
		Where("tickets.id IS NULL").
		Preload("Shift").
		Order("doctor_shifts.work_date ASC, shifts.start_time ASC").
		Find(&doctorShifts).Error
	if err != nil {
		return nil, err
	}
	return doctorShifts, nil
}

func (r *doctorShiftRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.DoctorShift{})
	return result.RowsAffected, result.Error
}
