package usecase

import (
	"context"
	"errors"
	"testing"

	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/repository"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthUsecase(db *gorm.DB) AuthUsecase {
	// Registration and user lookup never touch Redis; token flows are
	// covered against a live instance elsewhere.
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	return NewAuthUsecase(
		db,
		newTestLogger(),
		repository.NewUserRepository(),
		repository.NewRoleRepository(),
		repository.NewDoctorProfileRepository(),
		repository.NewPatientProfileRepository(),
		newTestAuditService(),
		nil,
		redisClient,
	)
}

func TestRegisterPatient(t *testing.T) {
	db := newTestDB(t)
	uc := newAuthUsecase(db)
	ctx := context.Background()

	req := &dto.RegisterPatientRequest{
		Email:       "ada@example.com",
		Password:    "s3cret-pass",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "555-0100",
		DateOfBirth: "1990-03-14",
		Gender:      entity.GenderFemale,
	}

	user, err := uc.RegisterPatient(ctx, req)
	if err != nil {
		t.Fatalf("RegisterPatient: %v", err)
	}
	if user.Role != entity.RolePatient {
		t.Errorf("got role %q, want patient", user.Role)
	}

	var stored entity.User
	if err := db.Where("email = ?", req.Email).First(&stored).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.Password == req.Password {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(req.Password)); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}

	var profile entity.PatientProfile
	if err := db.Where("user_id = ?", stored.ID).First(&profile).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.PhoneNumber != req.PhoneNumber {
		t.Errorf("got phone %q, want %q", profile.PhoneNumber, req.PhoneNumber)
	}

	// Same email again.
	_, err = uc.RegisterPatient(ctx, req)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("got %v, want ErrEmailAlreadyExists", err)
	}
}

func TestRegisterDoctor(t *testing.T) {
	db := newTestDB(t)
	uc := newAuthUsecase(db)

	center := entity.MedicalCenter{Name: "Central Clinic"}
	if err := db.Create(&center).Error; err != nil {
		t.Fatalf("create center: %v", err)
	}
	department := entity.Department{Name: "Cardiology"}
	if err := db.Create(&department).Error; err != nil {
		t.Fatalf("create department: %v", err)
	}

	user, err := uc.RegisterDoctor(context.Background(), &dto.RegisterDoctorRequest{
		Email:           "grace@example.com",
		Password:        "s3cret-pass",
		FirstName:       "Grace",
		LastName:        "Hopper",
		DepartmentID:    department.ID,
		MedicalCenterID: center.ID,
		StartYear:       2005,
		Biography:       "Cardiologist",
	})
	if err != nil {
		t.Fatalf("RegisterDoctor: %v", err)
	}
	if user.Role != entity.RoleDoctor {
		t.Errorf("got role %q, want doctor", user.Role)
	}

	var profile entity.DoctorProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.StartYear != 2005 || profile.DepartmentID != department.ID {
		t.Errorf("profile not stored: %+v", profile)
	}
}

func TestGetCurrentUser(t *testing.T) {
	db := newTestDB(t)
	uc := newAuthUsecase(db)
	patient := createTestPatient(t, db)

	user, err := uc.GetCurrentUser(context.Background(), patient.ID)
	if err != nil {
		t.Fatalf("GetCurrentUser: %v", err)
	}
	if user.Email != patient.Email {
		t.Errorf("got email %q, want %q", user.Email, patient.Email)
	}
	if user.Role != entity.RolePatient {
		t.Errorf("got role %q, want patient", user.Role)
	}
}
