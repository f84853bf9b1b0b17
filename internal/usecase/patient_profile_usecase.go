package usecase

import (
	"context"
	"errors"
	"time"

	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/domain/repository"
	"medibook/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("patient profile not found")

// PatientProfileUsecase lets a patient view and edit their own profile.
// Edits never touch tickets already booked; those keep the snapshot taken
// at booking time.
type PatientProfileUsecase interface {
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileResponse, error)
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error)
}

type patientProfileUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *patientProfileUsecase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileResponse, error) {
	profile, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	return patientProfileToResponse(profile), nil
}

func (u *patientProfileUsecase) UpdateMyProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if req.FirstName != "" {
		profile.User.FirstName = req.FirstName
	}
	if req.LastName != "" {
		profile.User.LastName = req.LastName
	}
	if req.PhoneNumber != "" {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		profile.DateOfBirth = entity.DateOnly(dob)
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.Address != "" {
		profile.Address = req.Address
	}

	if err := u.userRepo.Update(tx, &profile.User); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}
	if err := u.patientProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	u.auditService.Log(tx, &userID, entity.AuditActionProfileUpdate, entity.JSON{
		"user_id": userID.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return patientProfileToResponse(profile), nil
}

func patientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	response := &dto.PatientProfileResponse{
		User: dto.UserResponse{
			ID:        profile.UserID,
			Email:     profile.User.Email,
			FirstName: profile.User.FirstName,
			LastName:  profile.User.LastName,
			CreatedAt: profile.User.CreatedAt,
			UpdatedAt: profile.User.UpdatedAt,
		},
		PhoneNumber: profile.PhoneNumber,
		Gender:      profile.Gender,
		Address:     profile.Address,
	}
	if !profile.DateOfBirth.IsZero() {
		response.DateOfBirth = profile.DateOfBirth.Format(workDateLayout)
	}
	return response
}
