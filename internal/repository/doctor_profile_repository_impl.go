package repository

import (
	"errors"

	"medibook/internal/domain/entity"
	domainRepo "medibook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Preload("Department").Preload("MedicalCenter").
		Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindAll returns doctors whose account is active, with department and
// medical center loaded in the same query round. Supports the directory
// search filters (free-text name/department, department and center ids).
func (r *doctorProfileRepository) FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	query := db.
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Joins("JOIN departments ON departments.id = doctor_profiles.department_id").
		Where("users.is_active = ?", true)

	if filter != nil {
		if filter.Query != "" {
			pattern := "%" + filter.Query + "%"
			query = query.Where(
				"users.first_name ILIKE ? OR users.last_name ILIKE ? OR departments.name ILIKE ?",
				pattern, pattern, pattern,
			)
		}
		if filter.DepartmentID != 0 {
			query = query.Where("doctor_profiles.department_id = ?", filter.DepartmentID)
		}
		if filter.MedicalCenterID != 0 {
			query = query.Where("doctor_profiles.medical_center_id = ?", filter.MedicalCenterID)
		}
	}

	err := query.
		Preload("User").Preload("Department").Preload("MedicalCenter").
		Order("users.last_name ASC, users.first_name ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Omit("User", "Department", "MedicalCenter").Save(profile).Error
}
