package usecase

import (
	"context"
	"errors"

	"medibook/internal/converter"
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDepartmentNotFound    = errors.New("department not found")
	ErrMedicalCenterNotFound = errors.New("medical center not found")
)

// DirectoryUsecase is the public browse surface: patients find a doctor or a
// clinic here before they look at availability.
type DirectoryUsecase interface {
	SearchDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error)
	ListMedicalCenters(ctx context.Context, query string) (*dto.MedicalCenterListResponse, error)
}

type directoryUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
	departmentRepo    repository.DepartmentRepository
	medicalCenterRepo repository.MedicalCenterRepository
}

func NewDirectoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	departmentRepo repository.DepartmentRepository,
	medicalCenterRepo repository.MedicalCenterRepository,
) DirectoryUsecase {
	return &directoryUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
		departmentRepo:    departmentRepo,
		medicalCenterRepo: medicalCenterRepo,
	}
}

func (u *directoryUsecase) SearchDoctors(ctx context.Context, filter *entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *directoryUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *directoryUsecase) ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	departments, err := u.departmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list departments: %+v", err)
		return nil, err
	}

	return &dto.DepartmentListResponse{
		Departments: converter.DepartmentsToResponses(departments),
		Total:       len(departments),
	}, nil
}

func (u *directoryUsecase) ListMedicalCenters(ctx context.Context, query string) (*dto.MedicalCenterListResponse, error) {
	db := u.db.WithContext(ctx)

	var centers []entity.MedicalCenter
	var err error
	if query != "" {
		centers, err = u.medicalCenterRepo.Search(db, query)
	} else {
		centers, err = u.medicalCenterRepo.FindAll(db)
	}
	if err != nil {
		u.log.Warnf("Failed to list medical centers: %+v", err)
		return nil, err
	}

	return &dto.MedicalCenterListResponse{
		MedicalCenters: converter.MedicalCentersToResponses(centers),
		Total:          len(centers),
	}, nil
}
