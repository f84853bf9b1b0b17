package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"medibook/config"
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newBookingUsecase(db *gorm.DB) *bookingUsecase {
	uc := NewBookingUsecase(
		db,
		newTestLogger(),
		repository.NewTicketRepository(),
		repository.NewDoctorShiftRepository(),
		newTestAuditService(),
		&config.BookingConfig{CancelWindow: 2 * time.Hour, StatsCacheTTL: time.Minute},
	)
	return uc.(*bookingUsecase)
}

func bookingRequest(doctorShiftID int) *dto.CreateTicketRequest {
	return &dto.CreateTicketRequest{
		DoctorShiftID: doctorShiftID,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		BirthOfDay:    "1990-03-14",
		Gender:        entity.GenderFemale,
	}
}

func TestCreateBooking(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)

	ticket, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(slot.ID))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if ticket.Status != string(entity.TicketStatusPending) {
		t.Errorf("got status %q, want pending", ticket.Status)
	}
	if ticket.UUID == "" {
		t.Error("ticket UUID should be set")
	}
	if ticket.FirstName != "Ada" || ticket.BirthOfDay != "1990-03-14" {
		t.Errorf("snapshot fields not stored: %+v", ticket)
	}
}

func TestCreateBookingSnapshotSurvivesProfileEdit(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)

	ticket, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(slot.ID))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	profileUc := NewPatientProfileUsecase(
		db,
		newTestLogger(),
		repository.NewUserRepository(),
		repository.NewPatientProfileRepository(),
		newTestAuditService(),
	)
	if _, err := profileUc.UpdateMyProfile(ctx, patient.ID, &dto.UpdatePatientProfileRequest{
		FirstName:   "Augusta",
		LastName:    "King",
		DateOfBirth: "1991-07-01",
		Gender:      entity.GenderOther,
	}); err != nil {
		t.Fatalf("UpdateMyProfile: %v", err)
	}

	// The ticket keeps the patient details captured at booking time.
	stored, err := repository.NewTicketRepository().FindByUUID(db, ticket.UUID)
	if err != nil {
		t.Fatalf("reload ticket: %v", err)
	}
	if stored.FirstName != "Ada" || stored.LastName != "Lovelace" {
		t.Errorf("got name %s %s, want Ada Lovelace", stored.FirstName, stored.LastName)
	}
	if got := stored.BirthOfDay.Format("2006-01-02"); got != "1990-03-14" {
		t.Errorf("got birth date %s, want 1990-03-14", got)
	}
	if stored.Gender != entity.GenderFemale {
		t.Errorf("got gender %s, want %s", stored.Gender, entity.GenderFemale)
	}
}

func TestCreateBookingSlotNotFound(t *testing.T) {
	db := newTestDB(t)
	patient := createTestPatient(t, db)
	uc := newBookingUsecase(db)

	_, err := uc.CreateBooking(context.Background(), patient.ID, bookingRequest(42424))
	if !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("got %v, want ErrSlotNotFound", err)
	}
}

func TestCreateBookingSlotExpired(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newBookingUsecase(db)

	workDate := entity.Today().AddDate(0, 0, 1)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)

	// Exactly at the start instant the slot is no longer bookable.
	start := time.Date(workDate.Year(), workDate.Month(), workDate.Day(), 9, 0, 0, 0, time.Local)
	uc.now = func() time.Time { return start }

	_, err := uc.CreateBooking(context.Background(), patient.ID, bookingRequest(slot.ID))
	if !errors.Is(err, ErrSlotExpired) {
		t.Fatalf("got %v, want ErrSlotExpired", err)
	}
}

func TestCreateBookingSlotTaken(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	other := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)

	if _, err := uc.CreateBooking(ctx, other.ID, bookingRequest(slot.ID)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(slot.ID))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("got %v, want ErrSlotTaken", err)
	}
}

func TestCreateBookingSlotStaysRetiredAfterCancel(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	other := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)

	first, err := uc.CreateBooking(ctx, other.ID, bookingRequest(slot.ID))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := uc.CancelBooking(ctx, other.ID, first.UUID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// A cancelled ticket retires the slot; it is never offered again.
	_, err = uc.CreateBooking(ctx, patient.ID, bookingRequest(slot.ID))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("got %v, want ErrSlotTaken", err)
	}
}

func TestCreateBookingDuplicateSameDay(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	first := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)
	second := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:30").ID, workDate)

	if _, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(first.ID)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(second.ID))
	if !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("got %v, want ErrDuplicateBooking", err)
	}

	// A different day with the same doctor is fine.
	otherDay := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate.AddDate(0, 0, 1))
	if _, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(otherDay.ID)); err != nil {
		t.Fatalf("other-day booking: %v", err)
	}
}

func TestCreateBookingAfterCancelSameDay(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	first := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)
	second := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:30").ID, workDate)

	ticket, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(first.ID))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := uc.CancelBooking(ctx, patient.ID, ticket.UUID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The cancelled ticket no longer counts against the one-per-day rule.
	if _, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(second.ID)); err != nil {
		t.Fatalf("rebooking after cancel: %v", err)
	}
}

func TestConfirmPayment(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)

	ticket, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(slot.ID))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	confirmed, err := uc.ConfirmPayment(ctx, ticket.UUID)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if confirmed.Status != string(entity.TicketStatusConfirmed) {
		t.Errorf("got status %q, want confirmed", confirmed.Status)
	}

	// Webhook redelivery: a second confirm succeeds without changing state.
	again, err := uc.ConfirmPayment(ctx, ticket.UUID)
	if err != nil {
		t.Fatalf("ConfirmPayment redelivery: %v", err)
	}
	if again.Status != string(entity.TicketStatusConfirmed) {
		t.Errorf("got status %q, want confirmed", again.Status)
	}
}

func TestConfirmPaymentOnCancelledTicket(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)

	ticket, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(slot.ID))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := uc.CancelBooking(ctx, patient.ID, ticket.UUID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err = uc.ConfirmPayment(ctx, ticket.UUID)
	if !errors.Is(err, ErrTicketNotConfirmable) {
		t.Fatalf("got %v, want ErrTicketNotConfirmable", err)
	}
}

func TestConfirmPaymentUnknownTicket(t *testing.T) {
	db := newTestDB(t)
	uc := newBookingUsecase(db)

	_, err := uc.ConfirmPayment(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("got %v, want ErrTicketNotFound", err)
	}
}

func TestCancelBookingWindow(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)
	start := time.Date(workDate.Year(), workDate.Month(), workDate.Day(), 9, 0, 0, 0, time.Local)

	ticket, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(slot.ID))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	// Exactly at the window boundary cancellation is refused: the window
	// requires strictly more than the configured lead time.
	uc.now = func() time.Time { return start.Add(-2 * time.Hour) }
	if _, err := uc.CancelBooking(ctx, patient.ID, ticket.UUID); !errors.Is(err, ErrCancelWindowClosed) {
		t.Fatalf("got %v, want ErrCancelWindowClosed at the boundary", err)
	}

	// One second earlier it is allowed.
	uc.now = func() time.Time { return start.Add(-2*time.Hour - time.Second) }
	cancelled, err := uc.CancelBooking(ctx, patient.ID, ticket.UUID)
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if cancelled.Status != string(entity.TicketStatusCancelled) {
		t.Errorf("got status %q, want cancelled", cancelled.Status)
	}
}

func TestCancelBookingNotOwned(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	other := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)

	ticket, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(slot.ID))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	_, err = uc.CancelBooking(ctx, other.ID, ticket.UUID)
	if !errors.Is(err, ErrTicketNotOwned) {
		t.Fatalf("got %v, want ErrTicketNotOwned", err)
	}
}

func TestCancelBookingTwice(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)

	ticket, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(slot.ID))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := uc.CancelBooking(ctx, patient.ID, ticket.UUID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err = uc.CancelBooking(ctx, patient.ID, ticket.UUID)
	if !errors.Is(err, ErrTicketNotCancellable) {
		t.Fatalf("got %v, want ErrTicketNotCancellable", err)
	}
}

func TestCompleteTicket(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)

	ticket, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(slot.ID))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	// Pending tickets cannot be completed.
	if _, err := uc.CompleteTicket(ctx, doctor.ID, ticket.UUID); !errors.Is(err, ErrTicketNotCompletable) {
		t.Fatalf("got %v, want ErrTicketNotCompletable for pending", err)
	}

	if _, err := uc.ConfirmPayment(ctx, ticket.UUID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// Another doctor cannot complete it.
	stranger := createTestDoctor(t, db)
	if _, err := uc.CompleteTicket(ctx, stranger.ID, ticket.UUID); !errors.Is(err, ErrTicketNotOwned) {
		t.Fatalf("got %v, want ErrTicketNotOwned", err)
	}

	completed, err := uc.CompleteTicket(ctx, doctor.ID, ticket.UUID)
	if err != nil {
		t.Fatalf("CompleteTicket: %v", err)
	}
	if completed.Status != string(entity.TicketStatusCompleted) {
		t.Errorf("got status %q, want completed", completed.Status)
	}
}

func TestListAvailableSlots(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	day1 := entity.Today().AddDate(0, 0, 2)
	day2 := entity.Today().AddDate(0, 0, 4)

	freeMorning := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "08:00").ID, day1)
	bookedSlot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "08:30").ID, day1)
	cancelledSlot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, day1)
	freeAfternoon := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "13:00").ID, day1)
	freeOtherDay := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "08:00").ID, day2)

	if _, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(bookedSlot.ID)); err != nil {
		t.Fatalf("booking: %v", err)
	}

	other := createTestPatient(t, db)
	cancelledTicket, err := uc.CreateBooking(ctx, other.ID, bookingRequest(cancelledSlot.ID))
	if err != nil {
		t.Fatalf("booking to cancel: %v", err)
	}
	if _, err := uc.CancelBooking(ctx, other.ID, cancelledTicket.UUID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	result, err := uc.ListAvailableSlots(ctx, doctor.ID, "", "")
	if err != nil {
		t.Fatalf("ListAvailableSlots: %v", err)
	}

	// Booked and cancelled slots are both gone; three free slots remain
	// across two days.
	if result.Total != 3 {
		t.Fatalf("got total=%d, want 3: %+v", result.Total, result)
	}
	if len(result.Days) != 2 {
		t.Fatalf("got %d days, want 2", len(result.Days))
	}

	first := result.Days[0]
	if first.Date != day1.Format("2006-01-02") {
		t.Errorf("days not ordered: first=%s", first.Date)
	}
	if len(first.Morning) != 1 || first.Morning[0].DoctorShiftID != freeMorning.ID {
		t.Errorf("got morning=%+v, want slot %d", first.Morning, freeMorning.ID)
	}
	if len(first.Afternoon) != 1 || first.Afternoon[0].DoctorShiftID != freeAfternoon.ID {
		t.Errorf("got afternoon=%+v, want slot %d", first.Afternoon, freeAfternoon.ID)
	}

	second := result.Days[1]
	if len(second.Morning) != 1 || second.Morning[0].DoctorShiftID != freeOtherDay.ID {
		t.Errorf("got second day morning=%+v, want slot %d", second.Morning, freeOtherDay.ID)
	}
}

func TestListAvailableSlotsSkipsPassedStartTimes(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	uc := newBookingUsecase(db)

	today := entity.Today()
	createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "08:00").ID, today)
	evening := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "16:30").ID, today)

	// Mid-day: the morning slot has started, the late afternoon one has not.
	uc.now = func() time.Time {
		return time.Date(today.Year(), today.Month(), today.Day(), 12, 0, 0, 0, time.Local)
	}

	result, err := uc.ListAvailableSlots(context.Background(), doctor.ID, "", "")
	if err != nil {
		t.Fatalf("ListAvailableSlots: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("got total=%d, want 1", result.Total)
	}
	if result.Days[0].Afternoon[0].DoctorShiftID != evening.ID {
		t.Errorf("got %+v, want slot %d", result.Days[0], evening.ID)
	}
}

func TestGetMyTickets(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	other := createTestPatient(t, db)
	uc := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	mine := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)
	theirs := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:30").ID, workDate)

	if _, err := uc.CreateBooking(ctx, patient.ID, bookingRequest(mine.ID)); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := uc.CreateBooking(ctx, other.ID, bookingRequest(theirs.ID)); err != nil {
		t.Fatalf("other booking: %v", err)
	}

	result, err := uc.GetMyTickets(ctx, patient.ID)
	if err != nil {
		t.Fatalf("GetMyTickets: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("got total=%d, want 1", result.Total)
	}
	if result.Tickets[0].ClientID != patient.ID {
		t.Errorf("got ticket for %s, want %s", result.Tickets[0].ClientID, patient.ID)
	}
}
