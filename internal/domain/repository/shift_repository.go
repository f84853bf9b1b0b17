package repository

import (
	"medibook/internal/domain/entity"

	"gorm.io/gorm"
)

// ShiftRepository manages the slot catalog (reusable time-of-day templates).
type ShiftRepository interface {
	Create(db *gorm.DB, shift *entity.Shift) error
	FindByID(db *gorm.DB, id int) (*entity.Shift, error)
	FindByIDs(db *gorm.DB, ids []int) ([]entity.Shift, error)
	FindAll(db *gorm.DB) ([]entity.Shift, error)
}
