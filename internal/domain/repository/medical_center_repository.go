package repository

import (
	"medibook/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicalCenterRepository interface {
	Create(db *gorm.DB, center *entity.MedicalCenter) error
	FindByID(db *gorm.DB, id int) (*entity.MedicalCenter, error)
	FindAll(db *gorm.DB) ([]entity.MedicalCenter, error)
	Search(db *gorm.DB, query string) ([]entity.MedicalCenter, error)
}
