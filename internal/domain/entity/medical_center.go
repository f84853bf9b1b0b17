package entity

import "time"

// MedicalCenter represents a clinic or hospital that doctors work at
type MedicalCenter struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Address     string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	Phone       string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Description string    `gorm:"type:varchar(255)" json:"description,omitempty"`
	Image       string    `gorm:"type:varchar(255)" json:"image,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctors []DoctorProfile `gorm:"foreignKey:MedicalCenterID" json:"doctors,omitempty"`
}

func (MedicalCenter) TableName() string {
	return "medical_centers"
}
