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

var (
	ErrInvalidWorkDate = errors.New("invalid work date format, use YYYY-MM-DD")
	ErrPastWorkDate    = errors.New("availability can only be offered for today or later")
	ErrUnknownShift    = errors.New("shift does not exist in the slot catalog")
	ErrDoctorNotFound  = errors.New("doctor not found")
)

const workDateLayout = "2006-01-02"

// AvailabilityUsecase lets a doctor declare which catalog slots they offer on
// which dates, and retract offers that no patient holds an active ticket for.
// The doctor identity is always an explicit argument taken from the verified
// token claims, never ambient state.
type AvailabilityUsecase interface {
	AssignShifts(ctx context.Context, doctorID uuid.UUID, req *dto.AssignShiftsRequest) (*dto.AssignShiftsResponse, error)
	UnassignShifts(ctx context.Context, doctorID uuid.UUID, req *dto.UnassignShiftsRequest) (*dto.UnassignShiftsResponse, error)
	ReplaceShiftsForDate(ctx context.Context, doctorID uuid.UUID, req *dto.ReplaceShiftsRequest) (*dto.ReplaceShiftsResponse, error)
	ListShiftsForDoctorOnDate(ctx context.Context, doctorID uuid.UUID, workDate string) (*dto.DoctorShiftListResponse, error)
}

type availabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorShiftRepo   repository.DoctorShiftRepository
	shiftRepo         repository.ShiftRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorShiftRepo repository.DoctorShiftRepository,
	shiftRepo repository.ShiftRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:                db,
		log:               log,
		doctorShiftRepo:   doctorShiftRepo,
		shiftRepo:         shiftRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

// AssignShifts creates a DoctorShift per requested catalog slot unless one
// already exists for that (doctor, shift, date) triple. Re-assigning is a
// normal outcome, not an error; the response separates created from existing.
func (u *availabilityUsecase) AssignShifts(ctx context.Context, doctorID uuid.UUID, req *dto.AssignShiftsRequest) (*dto.AssignShiftsResponse, error) {
	workDate, err := u.parseFutureWorkDate(req.WorkDate)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	shiftIDs := dedupeIDs(req.ShiftIDs)
	if err := u.checkShiftsExist(ctx, shiftIDs); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	created := 0
	existing := 0
	for _, shiftID := range shiftIDs {
		doctorShift, err := u.doctorShiftRepo.FindByTriple(tx, doctorID, shiftID, workDate)
		if err != nil {
			u.log.Warnf("Failed to look up doctor shift: %+v", err)
			return nil, err
		}
		if doctorShift != nil {
			existing++
			continue
		}

		newShift := &entity.DoctorShift{
			DoctorID: doctorID,
			ShiftID:  shiftID,
			WorkDate: workDate,
		}
		if err := u.doctorShiftRepo.Create(tx, newShift); err != nil {
			// A concurrent assign for the same triple already won; that
			// still counts as "existing" for an idempotent add.
			if isUniqueViolation(err) {
				existing++
				continue
			}
			u.log.Warnf("Failed to create doctor shift: %+v", err)
			return nil, err
		}
		created++
	}

	u.auditService.Log(tx, &doctorID, entity.AuditActionShiftAssign, entity.JSON{
		"work_date": req.WorkDate,
		"shift_ids": shiftIDs,
		"created":   created,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Shifts assigned: doctor=%s, date=%s, created=%d, existing=%d", doctorID, req.WorkDate, created, existing)
	return &dto.AssignShiftsResponse{
		WorkDate: req.WorkDate,
		Created:  created,
		Existing: existing,
	}, nil
}

// UnassignShifts deletes the doctor's slots for the given shift ids unless a
// pending or confirmed ticket holds them. Blocked slots are reported, never
// raised; one booked slot must not stop the rest from being removed.
func (u *availabilityUsecase) UnassignShifts(ctx context.Context, doctorID uuid.UUID, req *dto.UnassignShiftsRequest) (*dto.UnassignShiftsResponse, error) {
	workDate, err := parseWorkDate(req.WorkDate)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	deleted, blocked, err := u.unassignInTx(tx, doctorID, workDate, req.ShiftIDs)
	if err != nil {
		return nil, err
	}

	u.auditService.Log(tx, &doctorID, entity.AuditActionShiftUnassign, entity.JSON{
		"work_date": req.WorkDate,
		"shift_ids": req.ShiftIDs,
		"deleted":   deleted,
		"blocked":   blocked,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Shifts unassigned: doctor=%s, date=%s, deleted=%d, blocked=%d", doctorID, req.WorkDate, deleted, len(blocked))
	return &dto.UnassignShiftsResponse{
		WorkDate:        req.WorkDate,
		Deleted:         deleted,
		BlockedShiftIDs: blocked,
	}, nil
}

// ReplaceShiftsForDate reconciles the doctor's slots for a date against the
// desired set: missing slots are added, surplus ones removed under the same
// active-ticket guard as UnassignShifts. Adds and removes commit together or
// not at all.
func (u *availabilityUsecase) ReplaceShiftsForDate(ctx context.Context, doctorID uuid.UUID, req *dto.ReplaceShiftsRequest) (*dto.ReplaceShiftsResponse, error) {
	workDate, err := u.parseFutureWorkDate(req.WorkDate)
	if err != nil {
		return nil, err
	}

	desired := dedupeIDs(req.ShiftIDs)
	if err := u.checkShiftsExist(ctx, desired); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	current, err := u.doctorShiftRepo.FindForDoctorOnDate(tx, doctorID, workDate)
	if err != nil {
		u.log.Warnf("Failed to load doctor shifts: %+v", err)
		return nil, err
	}

	currentSet := make(map[int]bool, len(current))
	for _, doctorShift := range current {
		currentSet[doctorShift.ShiftID] = true
	}
	desiredSet := make(map[int]bool, len(desired))
	for _, shiftID := range desired {
		desiredSet[shiftID] = true
	}

	added := 0
	for _, shiftID := range desired {
		if currentSet[shiftID] {
			continue
		}
		newShift := &entity.DoctorShift{
			DoctorID: doctorID,
			ShiftID:  shiftID,
			WorkDate: workDate,
		}
		if err := u.doctorShiftRepo.Create(tx, newShift); err != nil {
			if isUniqueViolation(err) {
				continue
			}
			u.log.Warnf("Failed to create doctor shift: %+v", err)
			return nil, err
		}
		added++
	}

	var toRemove []int
	for _, doctorShift := range current {
		if !desiredSet[doctorShift.ShiftID] {
			toRemove = append(toRemove, doctorShift.ShiftID)
		}
	}

	removed, blocked, err := u.unassignInTx(tx, doctorID, workDate, toRemove)
	if err != nil {
		return nil, err
	}

	u.auditService.Log(tx, &doctorID, entity.AuditActionShiftReplace, entity.JSON{
		"work_date": req.WorkDate,
		"desired":   desired,
		"added":     added,
		"removed":   removed,
		"blocked":   blocked,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Shifts replaced: doctor=%s, date=%s, added=%d, removed=%d, blocked=%d", doctorID, req.WorkDate, added, removed, len(blocked))
	return &dto.ReplaceShiftsResponse{
		WorkDate:        req.WorkDate,
		Added:           added,
		Removed:         removed,
		BlockedShiftIDs: blocked,
	}, nil
}

func (u *availabilityUsecase) ListShiftsForDoctorOnDate(ctx context.Context, doctorID uuid.UUID, workDate string) (*dto.DoctorShiftListResponse, error) {
	date, err := parseWorkDate(workDate)
	if err != nil {
		return nil, err
	}

	doctorShifts, err := u.doctorShiftRepo.FindForDoctorOnDate(u.db.WithContext(ctx), doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to find doctor shifts: %+v", err)
		return nil, err
	}

	responses := make([]dto.DoctorShiftResponse, len(doctorShifts))
	for i, doctorShift := range doctorShifts {
		response := dto.DoctorShiftResponse{
			ID:        doctorShift.ID,
			ShiftID:   doctorShift.ShiftID,
			WorkDate:  doctorShift.WorkDate.Format(workDateLayout),
			StartTime: doctorShift.Shift.StartTime,
			EndTime:   doctorShift.Shift.EndTime,
		}
		if doctorShift.Ticket != nil {
			response.Booked = doctorShift.Ticket.IsActive()
			response.TicketStatus = string(doctorShift.Ticket.Status)
		}
		responses[i] = response
	}

	return &dto.DoctorShiftListResponse{
		DoctorShifts: responses,
		Total:        len(responses),
	}, nil
}

// unassignInTx applies the active-ticket guard and deletes what it can. The
// check and the delete run in the caller's transaction so a booking cannot
// slip in between and end up bound to a deleted slot.
func (u *availabilityUsecase) unassignInTx(tx *gorm.DB, doctorID uuid.UUID, workDate time.Time, shiftIDs []int) (int, []int, error) {
	if len(shiftIDs) == 0 {
		return 0, []int{}, nil
	}

	doctorShifts, err := u.doctorShiftRepo.FindForDoctorOnDate(tx, doctorID, workDate)
	if err != nil {
		u.log.Warnf("Failed to load doctor shifts: %+v", err)
		return 0, nil, err
	}

	byShiftID := make(map[int]*entity.DoctorShift, len(doctorShifts))
	for i := range doctorShifts {
		byShiftID[doctorShifts[i].ShiftID] = &doctorShifts[i]
	}

	deleted := 0
	blocked := []int{}
	for _, shiftID := range dedupeIDs(shiftIDs) {
		doctorShift, ok := byShiftID[shiftID]
		if !ok {
			continue
		}
		if doctorShift.HasActiveTicket() {
			blocked = append(blocked, shiftID)
			continue
		}
		if doctorShift.Ticket != nil {
			// A cancelled or completed ticket still references the slot;
			// the row stays so the booking history keeps its slot.
			continue
		}
		affected, err := u.doctorShiftRepo.Delete(tx, doctorShift.ID)
		if err != nil {
			u.log.Warnf("Failed to delete doctor shift %d: %+v", doctorShift.ID, err)
			return 0, nil, err
		}
		if affected > 0 {
			deleted++
		}
	}

	return deleted, blocked, nil
}

func (u *availabilityUsecase) checkShiftsExist(ctx context.Context, shiftIDs []int) error {
	if len(shiftIDs) == 0 {
		return nil
	}
	shifts, err := u.shiftRepo.FindByIDs(u.db.WithContext(ctx), shiftIDs)
	if err != nil {
		u.log.Warnf("Failed to load shift catalog entries: %+v", err)
		return err
	}
	if len(shifts) != len(shiftIDs) {
		return ErrUnknownShift
	}
	return nil
}

func (u *availabilityUsecase) parseFutureWorkDate(value string) (time.Time, error) {
	workDate, err := parseWorkDate(value)
	if err != nil {
		return time.Time{}, err
	}
	if workDate.Before(entity.Today()) {
		return time.Time{}, ErrPastWorkDate
	}
	return workDate, nil
}

func parseWorkDate(value string) (time.Time, error) {
	workDate, err := time.Parse(workDateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidWorkDate
	}
	return entity.DateOnly(workDate), nil
}

func dedupeIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
