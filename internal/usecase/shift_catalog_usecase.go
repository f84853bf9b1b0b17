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

var ErrShiftTimeOrder = errors.New("shift end time must be after start time")

// ShiftCatalogUsecase maintains the reusable slot templates. Listing is
// public; creating templates is an admin operation.
type ShiftCatalogUsecase interface {
	CreateShift(ctx context.Context, adminID uuid.UUID, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error)
	ListShifts(ctx context.Context) (*dto.ShiftListResponse, error)
}

type shiftCatalogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	shiftRepo    repository.ShiftRepository
	auditService service.AuditService
}

func NewShiftCatalogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	shiftRepo repository.ShiftRepository,
	auditService service.AuditService,
) ShiftCatalogUsecase {
	return &shiftCatalogUsecase{
		db:           db,
		log:          log,
		shiftRepo:    shiftRepo,
		auditService: auditService,
	}
}

func (u *shiftCatalogUsecase) CreateShift(ctx context.Context, adminID uuid.UUID, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	start, err := time.Parse(entity.ShiftTimeLayout, req.StartTime)
	if err != nil {
		return nil, ErrShiftTimeOrder
	}
	end, err := time.Parse(entity.ShiftTimeLayout, req.EndTime)
	if err != nil {
		return nil, ErrShiftTimeOrder
	}
	if !end.After(start) {
		return nil, ErrShiftTimeOrder
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	shift := &entity.Shift{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := u.shiftRepo.Create(tx, shift); err != nil {
		u.log.Warnf("Failed to create shift: %+v", err)
		return nil, err
	}

	u.auditService.Log(tx, &adminID, entity.AuditActionCatalogCreate, entity.JSON{
		"shift_id":   shift.ID,
		"start_time": shift.StartTime,
		"end_time":   shift.EndTime,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Shift created: id=%d, %s-%s", shift.ID, shift.StartTime, shift.EndTime)
	return shiftToResponse(shift), nil
}

func (u *shiftCatalogUsecase) ListShifts(ctx context.Context) (*dto.ShiftListResponse, error) {
	shifts, err := u.shiftRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list shifts: %+v", err)
		return nil, err
	}

	responses := make([]dto.ShiftResponse, len(shifts))
	for i := range shifts {
		responses[i] = *shiftToResponse(&shifts[i])
	}

	return &dto.ShiftListResponse{
		Shifts: responses,
		Total:  len(responses),
	}, nil
}

func shiftToResponse(shift *entity.Shift) *dto.ShiftResponse {
	return &dto.ShiftResponse{
		ID:        shift.ID,
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
		CreatedAt: shift.CreatedAt,
		UpdatedAt: shift.UpdatedAt,
	}
}
