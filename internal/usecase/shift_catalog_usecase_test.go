package usecase

import (
	"context"
	"errors"
	"testing"

	"medibook/internal/delivery/dto"
	"medibook/internal/repository"

	"github.com/google/uuid"
)

func TestCreateShift(t *testing.T) {
	db := newTestDB(t)
	uc := NewShiftCatalogUsecase(db, newTestLogger(), repository.NewShiftRepository(), newTestAuditService())
	adminID := uuid.New()

	shift, err := uc.CreateShift(context.Background(), adminID, &dto.CreateShiftRequest{
		StartTime: "17:00",
		EndTime:   "17:30",
	})
	if err != nil {
		t.Fatalf("CreateShift: %v", err)
	}
	if shift.ID == 0 {
		t.Error("shift ID should be assigned")
	}
	if shift.StartTime != "17:00" || shift.EndTime != "17:30" {
		t.Errorf("got %s-%s, want 17:00-17:30", shift.StartTime, shift.EndTime)
	}
}

func TestCreateShiftRejectsInvertedTimes(t *testing.T) {
	db := newTestDB(t)
	uc := NewShiftCatalogUsecase(db, newTestLogger(), repository.NewShiftRepository(), newTestAuditService())

	for _, tt := range []struct{ start, end string }{
		{"10:00", "09:30"},
		{"10:00", "10:00"},
	} {
		_, err := uc.CreateShift(context.Background(), uuid.New(), &dto.CreateShiftRequest{
			StartTime: tt.start,
			EndTime:   tt.end,
		})
		if !errors.Is(err, ErrShiftTimeOrder) {
			t.Errorf("CreateShift(%s, %s) = %v, want ErrShiftTimeOrder", tt.start, tt.end, err)
		}
	}
}

func TestListShiftsReturnsSeededCatalog(t *testing.T) {
	db := newTestDB(t)
	uc := NewShiftCatalogUsecase(db, newTestLogger(), repository.NewShiftRepository(), newTestAuditService())

	result, err := uc.ListShifts(context.Background())
	if err != nil {
		t.Fatalf("ListShifts: %v", err)
	}

	// Seed: 8 half-hour morning slots plus 8 afternoon ones.
	if result.Total != 16 {
		t.Fatalf("got total=%d, want 16", result.Total)
	}
	if result.Shifts[0].StartTime != "08:00" {
		t.Errorf("got first slot %s, want 08:00", result.Shifts[0].StartTime)
	}
}
