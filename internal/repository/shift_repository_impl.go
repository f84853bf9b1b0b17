package repository

import (
	"errors"

	"medibook/internal/domain/entity"
	domainRepo "medibook/internal/domain/repository"

	"gorm.io/gorm"
)

type shiftRepository struct{}

func NewShiftRepository() domainRepo.ShiftRepository {
	return &shiftRepository{}
}

func (r *shiftRepository) Create(db *gorm.DB, shift *entity.Shift) error {
	return db.Create(shift).Error
}

func (r *shiftRepository) FindByID(db *gorm.DB, id int) (*entity.Shift, error) {
	var shift entity.Shift
	err := db.Where("id = ?", id).First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) FindByIDs(db *gorm.DB, ids []int) ([]entity.Shift, error) {
	var shifts []entity.Shift
	err := db.Where("id IN ?", ids).Order("start_time ASC").Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftRepository) FindAll(db *gorm.DB) ([]entity.Shift, error) {
	var shifts []entity.Shift
	err := db.Order("start_time ASC").Find(&shifts).Error
	if err != nil {
		return nil, err
	}
	return shifts, nil
}
