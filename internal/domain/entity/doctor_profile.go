package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	DepartmentID    int       `gorm:"not null;index" json:"department_id"`
	MedicalCenterID int       `gorm:"not null;index" json:"medical_center_id"`
	StartYear       int       `gorm:"not null" json:"start_year"`
	Biography       string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User          User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Department    Department      `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	MedicalCenter MedicalCenter   `gorm:"foreignKey:MedicalCenterID" json:"medical_center,omitempty"`
	DoctorShifts  []DoctorShift   `gorm:"foreignKey:DoctorID" json:"doctor_shifts,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
