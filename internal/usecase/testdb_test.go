package usecase

import (
	"fmt"
	"io"
	"testing"
	"time"

	"medibook/internal/domain/entity"
	"medibook/internal/infrastructure/database"
	"medibook/internal/repository"
	"medibook/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema and
// the seeded reference data.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestAuditService() service.AuditService {
	return service.NewAuditService(newTestLogger(), repository.NewAuditLogRepository())
}

// createTestDoctor inserts a doctor account with its department and center.
func createTestDoctor(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()

	center := entity.MedicalCenter{Name: "Central Clinic", Address: "1 Main St"}
	if err := db.Create(&center).Error; err != nil {
		t.Fatalf("create center: %v", err)
	}
	department := entity.Department{Name: "Cardiology"}
	if err := db.Create(&department).Error; err != nil {
		t.Fatalf("create department: %v", err)
	}

	user := entity.User{
		RoleID:    entity.RoleIDDoctor,
		Email:     fmt.Sprintf("doctor-%s@example.com", uuid.NewString()[:8]),
		Password:  "x",
		FirstName: "Grace",
		LastName:  "Hopper",
		IsActive:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create doctor user: %v", err)
	}

	profile := entity.DoctorProfile{
		UserID:          user.ID,
		DepartmentID:    department.ID,
		MedicalCenterID: center.ID,
		StartYear:       2010,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create doctor profile: %v", err)
	}

	return &user
}

func createTestPatient(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()

	user := entity.User{
		RoleID:    entity.RoleIDPatient,
		Email:     fmt.Sprintf("patient-%s@example.com", uuid.NewString()[:8]),
		Password:  "x",
		FirstName: "Ada",
		LastName:  "Lovelace",
		IsActive:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create patient user: %v", err)
	}

	profile := entity.PatientProfile{
		UserID:      user.ID,
		PhoneNumber: "555-0100",
		DateOfBirth: entity.DateOnly(time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)),
		Gender:      entity.GenderFemale,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create patient profile: %v", err)
	}

	return &user
}

// findShiftByStart returns the seeded catalog shift starting at the given
// HH:MM time.
func findShiftByStart(t *testing.T, db *gorm.DB, startTime string) *entity.Shift {
	t.Helper()

	var shift entity.Shift
	if err := db.Where("start_time = ?", startTime).First(&shift).Error; err != nil {
		t.Fatalf("find shift %s: %v", startTime, err)
	}
	return &shift
}

func createDoctorShift(t *testing.T, db *gorm.DB, doctorID uuid.UUID, shiftID int, workDate time.Time) *entity.DoctorShift {
	t.Helper()

	doctorShift := entity.DoctorShift{
		DoctorID: doctorID,
		ShiftID:  shiftID,
		WorkDate: entity.DateOnly(workDate),
	}
	if err := db.Create(&doctorShift).Error; err != nil {
		t.Fatalf("create doctor shift: %v", err)
	}
	return &doctorShift
}
