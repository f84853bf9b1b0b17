package database

import (
	"fmt"

	"medibook/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every entity, including the
// unique indexes that arbitrate slot exclusivity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.MedicalCenter{},
		&entity.Department{},
		&entity.DoctorProfile{},
		&entity.PatientProfile{},
		&entity.Shift{},
		&entity.DoctorShift{},
		&entity.Ticket{},
		&entity.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

// Seed fills the reference tables on first boot: the three roles and the
// half-hour slot catalog (08:00-11:30 morning, 13:00-16:30 afternoon).
// Re-running is a no-op.
func Seed(db *gorm.DB) error {
	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin, Description: "Platform administrator"},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor, Description: "Practicing doctor"},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient, Description: "Registered patient"},
	}
	for _, role := range roles {
		if err := db.Where("id = ?", role.ID).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.RoleName, err)
		}
	}

	var shiftCount int64
	if err := db.Model(&entity.Shift{}).Count(&shiftCount).Error; err != nil {
		return fmt.Errorf("failed to count shifts: %w", err)
	}
	if shiftCount == 0 {
		for _, window := range [][2]int{{8 * 60, 12 * 60}, {13 * 60, 17 * 60}} {
			for minutes := window[0]; minutes < window[1]; minutes += 30 {
				shift := entity.Shift{
					StartTime: fmt.Sprintf("%02d:%02d", minutes/60, minutes%60),
					EndTime:   fmt.Sprintf("%02d:%02d", (minutes+30)/60, (minutes+30)%60),
				}
				if err := db.Create(&shift).Error; err != nil {
					return fmt.Errorf("failed to seed shift catalog: %w", err)
				}
			}
		}
		logrus.Info("Shift catalog seeded")
	}

	return nil
}
