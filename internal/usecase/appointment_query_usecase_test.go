package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"medibook/config"
	"medibook/internal/domain/entity"
	"medibook/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// newQueryUsecase wires the read-side usecase against an unreachable Redis;
// the stats cache degrades to plain database counts, which is the behavior
// under test anyway.
func newQueryUsecase(db *gorm.DB) AppointmentQueryUsecase {
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	return NewAppointmentQueryUsecase(
		db,
		newTestLogger(),
		redisClient,
		repository.NewTicketRepository(),
		repository.NewUserRepository(),
		&config.BookingConfig{CancelWindow: 2 * time.Hour, StatsCacheTTL: time.Minute},
	)
}

func TestGetTicketByUUIDVisibility(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	otherPatient := createTestPatient(t, db)
	otherDoctor := createTestDoctor(t, db)
	admin := entity.User{RoleID: entity.RoleIDAdmin, Email: "admin@example.com", Password: "x", FirstName: "Root", LastName: "Admin", IsActive: true}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}

	workDate := entity.Today().AddDate(0, 0, 3)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)

	booking := newBookingUsecase(db)
	ticket, err := booking.CreateBooking(context.Background(), patient.ID, bookingRequest(slot.ID))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	uc := newQueryUsecase(db)
	ctx := context.Background()

	tests := []struct {
		name     string
		callerID uuid.UUID
		roleID   int
		wantErr  error
	}{
		{"owner sees it", patient.ID, entity.RoleIDPatient, nil},
		{"other patient does not", otherPatient.ID, entity.RoleIDPatient, ErrTicketNotFound},
		{"slot doctor sees it", doctor.ID, entity.RoleIDDoctor, nil},
		{"other doctor does not", otherDoctor.ID, entity.RoleIDDoctor, ErrTicketNotFound},
		{"admin sees it", admin.ID, entity.RoleIDAdmin, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.GetTicketByUUID(ctx, tt.callerID, tt.roleID, ticket.UUID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetTicketByUUID: %v", err)
			}
			if got.UUID != ticket.UUID {
				t.Errorf("got uuid %s, want %s", got.UUID, ticket.UUID)
			}
		})
	}
}

func TestDoctorDayCalendar(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	other := createTestPatient(t, db)
	booking := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	late := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "10:00").ID, workDate)
	early := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "08:30").ID, workDate)
	createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "11:00").ID, workDate)

	if _, err := booking.CreateBooking(ctx, patient.ID, bookingRequest(late.ID)); err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := booking.CreateBooking(ctx, other.ID, bookingRequest(early.ID)); err != nil {
		t.Fatalf("booking: %v", err)
	}

	uc := newQueryUsecase(db)
	calendar, err := uc.DoctorDayCalendar(ctx, doctor.ID, workDate.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("DoctorDayCalendar: %v", err)
	}

	// Only booked slots appear, in start-time order.
	if calendar.Total != 2 {
		t.Fatalf("got total=%d, want 2", calendar.Total)
	}
	if calendar.Entries[0].StartTime != "08:30" || calendar.Entries[1].StartTime != "10:00" {
		t.Errorf("entries not ordered by start time: %+v", calendar.Entries)
	}
	if calendar.Entries[0].PatientName != "Ada Lovelace" {
		t.Errorf("got patient %q, want snapshot name", calendar.Entries[0].PatientName)
	}
}

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	doctor := createTestDoctor(t, db)
	patient := createTestPatient(t, db)
	booking := newBookingUsecase(db)
	ctx := context.Background()

	workDate := entity.Today().AddDate(0, 0, 3)
	slot := createDoctorShift(t, db, doctor.ID, findShiftByStart(t, db, "09:00").ID, workDate)
	if _, err := booking.CreateBooking(ctx, patient.ID, bookingRequest(slot.ID)); err != nil {
		t.Fatalf("booking: %v", err)
	}

	uc := newQueryUsecase(db)
	stats, err := uc.DashboardStats(ctx)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}

	if stats.UserCount != 2 {
		t.Errorf("got user_count=%d, want 2", stats.UserCount)
	}
	if stats.DoctorCount != 1 {
		t.Errorf("got doctor_count=%d, want 1", stats.DoctorCount)
	}
	if stats.TicketCount != 1 || stats.PendingTickets != 1 {
		t.Errorf("got ticket_count=%d pending=%d, want 1/1", stats.TicketCount, stats.PendingTickets)
	}
}
