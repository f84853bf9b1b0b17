package repository

import (
	"errors"

	"medibook/internal/domain/entity"
	domainRepo "medibook/internal/domain/repository"

	"gorm.io/gorm"
)

type medicalCenterRepository struct{}

func NewMedicalCenterRepository() domainRepo.MedicalCenterRepository {
	return &medicalCenterRepository{}
}

func (r *medicalCenterRepository) Create(db *gorm.DB, center *entity.MedicalCenter) error {
	return db.Create(center).Error
}

func (r *medicalCenterRepository) FindByID(db *gorm.DB, id int) (*entity.MedicalCenter, error) {
	var center entity.MedicalCenter
	err := db.Where("id = ?", id).First(&center).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &center, nil
}

func (r *medicalCenterRepository) FindAll(db *gorm.DB) ([]entity.MedicalCenter, error) {
	var centers []entity.MedicalCenter
	err := db.Order("name ASC").Find(&centers).Error
	if err != nil {
		return nil, err
	}
	return centers, nil
}

func (r *medicalCenterRepository) Search(db *gorm.DB, query string) ([]entity.MedicalCenter, error) {
	var centers []entity.MedicalCenter
	pattern := "%" + query + "%"
	err := db.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("name ASC").
		Find(&centers).Error
	if err != nil {
		return nil, err
	}
	return centers, nil
}
