package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"medibook/config"
	"medibook/internal/converter"
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const dashboardStatsKey = "stats:dashboard"

// AppointmentQueryUsecase serves the read side of the booking system: single
// ticket lookup with role-aware visibility, the doctor's day worklist, and
// the admin dashboard counters.
type AppointmentQueryUsecase interface {
	GetTicketByUUID(ctx context.Context, callerID uuid.UUID, roleID int, ticketUUID string) (*dto.TicketResponse, error)
	DoctorDayCalendar(ctx context.Context, doctorID uuid.UUID, workDate string) (*dto.CalendarDayResponse, error)
	DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

type appointmentQueryUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	redisClient   *redis.Client
	ticketRepo    repository.TicketRepository
	userRepo      repository.UserRepository
	statsCacheTTL time.Duration
}

func NewAppointmentQueryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	redisClient *redis.Client,
	ticketRepo repository.TicketRepository,
	userRepo repository.UserRepository,
	bookingConfig *config.BookingConfig,
) AppointmentQueryUsecase {
	return &appointmentQueryUsecase{
		db:            db,
		log:           log,
		redisClient:   redisClient,
		ticketRepo:    ticketRepo,
		userRepo:      userRepo,
		statsCacheTTL: bookingConfig.StatsCacheTTL,
	}
}

// GetTicketByUUID returns one ticket. Patients see only their own tickets,
// doctors only tickets booked against their slots, admins everything. An
// existing but invisible ticket reads as not found so the UUID space leaks
// nothing.
func (u *appointmentQueryUsecase) GetTicketByUUID(ctx context.Context, callerID uuid.UUID, roleID int, ticketUUID string) (*dto.TicketResponse, error) {
	ticket, err := u.ticketRepo.FindByUUID(u.db.WithContext(ctx), ticketUUID)
	if err != nil {
		u.log.Warnf("Failed to find ticket: %+v", err)
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	switch roleID {
	case entity.RoleIDAdmin:
	case entity.RoleIDDoctor:
		if ticket.DoctorShift.DoctorID != callerID {
			return nil, ErrTicketNotFound
		}
	default:
		if ticket.ClientID != callerID {
			return nil, ErrTicketNotFound
		}
	}

	return converter.TicketToResponse(ticket), nil
}

// DoctorDayCalendar is the doctor's worklist for one date: every booked slot
// in start-time order with the patient snapshot taken at booking time.
func (u *appointmentQueryUsecase) DoctorDayCalendar(ctx context.Context, doctorID uuid.UUID, workDate string) (*dto.CalendarDayResponse, error) {
	date, err := parseWorkDate(workDate)
	if err != nil {
		return nil, err
	}

	tickets, err := u.ticketRepo.FindForDoctorOnDate(u.db.WithContext(ctx), doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to load doctor calendar: %+v", err)
		return nil, err
	}

	entries := make([]dto.CalendarEntryResponse, len(tickets))
	for i := range tickets {
		ticket := &tickets[i]
		entries[i] = dto.CalendarEntryResponse{
			DoctorShiftID: ticket.DoctorShiftID,
			StartTime:     ticket.DoctorShift.Shift.StartTime,
			EndTime:       ticket.DoctorShift.Shift.EndTime,
			TicketUUID:    ticket.UUID,
			Status:        string(ticket.Status),
			PatientName:   ticket.FirstName + " " + ticket.LastName,
			BirthOfDay:    ticket.BirthOfDay.Format(workDateLayout),
			Gender:        ticket.Gender,
		}
	}

	return &dto.CalendarDayResponse{
		Date:    date.Format(workDateLayout),
		Entries: entries,
		Total:   len(entries),
	}, nil
}

// DashboardStats returns the admin landing-page counters, cached in Redis so
// a busy dashboard does not hammer the database with count queries.
func (u *appointmentQueryUsecase) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	cached, err := u.redisClient.Get(ctx, dashboardStatsKey).Result()
	if err == nil {
		var stats dto.DashboardStatsResponse
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		u.log.Warnf("Failed to read stats cache: %+v", err)
	}

	db := u.db.WithContext(ctx)

	userCount, err := u.userRepo.CountAll(db)
	if err != nil {
		u.log.Warnf("Failed to count users: %+v", err)
		return nil, err
	}
	doctorCount, err := u.userRepo.CountByRole(db, entity.RoleIDDoctor)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}
	ticketCount, err := u.ticketRepo.CountAll(db)
	if err != nil {
		u.log.Warnf("Failed to count tickets: %+v", err)
		return nil, err
	}
	pendingCount, err := u.ticketRepo.CountByStatus(db, entity.TicketStatusPending)
	if err != nil {
		u.log.Warnf("Failed to count pending tickets: %+v", err)
		return nil, err
	}

	stats := &dto.DashboardStatsResponse{
		UserCount:      userCount,
		DoctorCount:    doctorCount,
		TicketCount:    ticketCount,
		PendingTickets: pendingCount,
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := u.redisClient.Set(ctx, dashboardStatsKey, payload, u.statsCacheTTL).Err(); err != nil {
			u.log.Warnf("Failed to write stats cache: %+v", err)
		}
	}

	return stats, nil
}
