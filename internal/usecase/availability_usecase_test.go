package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/repository"

	"gorm.io/gorm"
)

func newAvailabilityUsecase(db *gorm.DB) AvailabilityUsecase {
	return NewAvailabilityUsecase(
		db,
		newTestLogger(),
		repository.NewDoctorShiftRepository(),
		repository.NewShiftRepository(),
		repository.NewDoctorProfileRepository(),
		newTestAuditService(),
	)
}

func futureDate(days int) string {
	return entity.Today().AddDate(0, 0, days).Format("2006-01-02")
}

func TestAssignShifts(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	uc := newAvailabilityUsecase(db)
	ctx := context.Background()

	morning := findShiftByStart(t, db, "08:00")
	afternoon := findShiftByStart(t, db, "13:00")

	result, err := uc.AssignShifts(ctx, doctor.ID, &dto.AssignShiftsRequest{
		WorkDate: futureDate(3),
		ShiftIDs: []int{morning.ID, afternoon.ID},
	})
	if err != nil {
		t.Fatalf("AssignShifts: %v", err)
	}
	if result.Created != 2 || result.Existing != 0 {
		t.Fatalf("got created=%d existing=%d, want 2/0", result.Created, result.Existing)
	}

	// Re-assigning the same slots plus one new is not an error.
	extra := findShiftByStart(t, db, "09:00")
	result, err = uc.AssignShifts(ctx, doctor.ID, &dto.AssignShiftsRequest{
		WorkDate: futureDate(3),
		ShiftIDs: []int{morning.ID, afternoon.ID, extra.ID},
	})
	if err != nil {
		t.Fatalf("AssignShifts again: %v", err)
	}
	if result.Created != 1 || result.Existing != 2 {
		t.Fatalf("got created=%d existing=%d, want 1/2", result.Created, result.Existing)
	}

	// Same shift on a different date is a distinct slot.
	result, err = uc.AssignShifts(ctx, doctor.ID, &dto.AssignShiftsRequest{
		WorkDate: futureDate(4),
		ShiftIDs: []int{morning.ID},
	})
	if err != nil {
		t.Fatalf("AssignShifts other date: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("got created=%d, want 1", result.Created)
	}
}

func TestAssignShiftsRejectsPastDate(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	uc := newAvailabilityUsecase(db)

	shift := findShiftByStart(t, db, "08:00")
	yesterday := entity.Today().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := uc.AssignShifts(context.Background(), doctor.ID, &dto.AssignShiftsRequest{
		WorkDate: yesterday,
		ShiftIDs: []int{shift.ID},
	})
	if !errors.Is(err, ErrPastWorkDate) {
		t.Fatalf("got %v, want ErrPastWorkDate", err)
	}
}

func TestAssignShiftsRejectsUnknownShift(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	uc := newAvailabilityUsecase(db)

	_, err := uc.AssignShifts(context.Background(), doctor.ID, &dto.AssignShiftsRequest{
		WorkDate: futureDate(3),
		ShiftIDs: []int{99999},
	})
	if !errors.Is(err, ErrUnknownShift) {
		t.Fatalf("got %v, want ErrUnknownShift", err)
	}
}

func TestUnassignShiftsPartialSuccess(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newAvailabilityUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 5)
	free := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "08:00").ID, workDate)
	booked := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "08:30").ID, workDate)
	cancelled := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)

	tickets := []entity.Ticket{
		{UUID: "t-booked", DoctorShiftID: booked.ID, ClientID: patient.ID, Status: entity.TicketStatusPending,
			FirstName: "Ada", LastName: "Lovelace", BirthOfDay: entity.DateOnly(time.Now()), Gender: entity.GenderFemale},
		{UUID: "t-cancelled", DoctorShiftID: cancelled.ID, ClientID: patient.ID, Status: entity.TicketStatusCancelled,
			FirstName: "Ada", LastName: "Lovelace", BirthOfDay: entity.DateOnly(time.Now()), Gender: entity.GenderFemale},
	}
	for i := range tickets {
		if err := db.Create(&tickets[i]).Error; err != nil {
			t.Fatalf("create ticket: %v", err)
		}
	}

	result, err := uc.UnassignShifts(ctx, doctor.ID, &dto.UnassignShiftsRequest{
		WorkDate: workDate.Format("2006-01-02"),
		ShiftIDs: []int{free.ShiftID, booked.ShiftID, cancelled.ShiftID},
	})
	if err != nil {
		t.Fatalf("UnassignShifts: %v", err)
	}

	// Only the free slot goes: the active ticket blocks its slot, and the
	// cancelled-ticket slot keeps its row for the booking history.
	if result.Deleted != 1 {
		t.Errorf("got deleted=%d, want 1", result.Deleted)
	}
	if len(result.BlockedShiftIDs) != 1 || result.BlockedShiftIDs[0] != booked.ShiftID {
		t.Errorf("got blocked=%v, want [%d]", result.BlockedShiftIDs, booked.ShiftID)
	}

	var remaining int64
	if err := db.Model(&entity.DoctorShift{}).Where("doctor_id = ?", doctor.ID).Count(&remaining).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 2 {
		t.Errorf("got %d remaining slots, want 2", remaining)
	}
}

func TestReplaceShiftsForDate(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newAvailabilityUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 6)
	keep := findShiftByStart(t, db, "08:00")
	drop := findShiftByStart(t, db, "08:30")
	blockedShift := findShiftByStart(t, db, "09:00")
	add := findShiftByStart(t, db, "13:00")

	createDoctorShift(t, db, doctor.ID, keep.ID, workDate)
	createDoctorShift(t, db, doctor.ID, drop.ID, workDate)
	blocked := createDoctorShift(t, db, doctor.ID, blockedShift.ID, workDate)

	ticket := entity.Ticket{
		UUID: "t-hold", DoctorShiftID: blocked.ID, ClientID: patient.ID, Status: entity.TicketStatusConfirmed,
		FirstName: "Ada", LastName: "Lovelace", BirthOfDay: entity.DateOnly(time.Now()), Gender: entity.GenderFemale,
	}
	if err := db.Create(&ticket).Error; err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	// Desired set: keep + add. The booked slot is not desired but survives.
	result, err := uc.ReplaceShiftsForDate(ctx, doctor.ID, &dto.ReplaceShiftsRequest{
		WorkDate: workDate.Format("2006-01-02"),
		ShiftIDs: []int{keep.ID, add.ID},
	})
	if err != nil {
		t.Fatalf("ReplaceShiftsForDate: %v", err)
	}
	if result.Added != 1 {
		t.Errorf("got added=%d, want 1", result.Added)
	}
	if result.Removed != 1 {
		t.Errorf("got removed=%d, want 1", result.Removed)
	}
	if len(result.BlockedShiftIDs) != 1 || result.BlockedShiftIDs[0] != blockedShift.ID {
		t.Errorf("got blocked=%v, want [%d]", result.BlockedShiftIDs, blockedShift.ID)
	}

	var shiftIDs []int
	if err := db.Model(&entity.DoctorShift{}).Where("doctor_id = ?", doctor.ID).Order("shift_id").Pluck("shift_id", &shiftIDs).Error; err != nil {
		t.Fatalf("pluck: %v", err)
	}
	want := map[int]bool{keep.ID: true, blockedShift.ID: true, add.ID: true}
	if len(shiftIDs) != 3 {
		t.Fatalf("got %d slots %v, want 3", len(shiftIDs), shiftIDs)
	}
	for _, id := range shiftIDs {
		if !want[id] {
			t.Errorf("unexpected slot shift_id=%d", id)
		}
	}
}

func TestListShiftsForDoctorOnDate(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newAvailabilityUsecase(db)

	workDate := entity.Today().AddDate(0, 0, 2)
	first := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "08:00").ID, workDate)
	createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "13:00").ID, workDate)

	ticket := entity.Ticket{
		UUID: "t-list", DoctorShiftID: first.ID, ClientID: patient.ID, Status: entity.TicketStatusPending,
		FirstName: "Ada", LastName: "Lovelace", BirthOfDay: entity.DateOnly(time.Now()), Gender: entity.GenderFemale,
	}
	if err := db.Create(&ticket).Error; err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	result, err := uc.ListShiftsForDoctorOnDate(context.Background(), doctor.ID, workDate.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("ListShiftsForDoctorOnDate: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("got total=%d, want 2", result.Total)
	}

	byShiftID := map[int]dto.DoctorShiftResponse{}
	for _, r := range result.DoctorShifts {
		byShiftID[r.ShiftID] = r
	}
	if !byShiftID[first.ShiftID].Booked {
		t.Errorf("slot %d should be booked", first.ShiftID)
	}
	if byShiftID[first.ShiftID].TicketStatus != string(entity.TicketStatusPending) {
		t.Errorf("got status %q, want pending", byShiftID[first.ShiftID].TicketStatus)
	}
}
