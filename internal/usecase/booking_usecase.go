package usecase

import (
	"context"
	"errors"
	"time"

	"medibook/config"
	"medibook/internal/converter"
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/domain/repository"
	"medibook/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotNotFound         = errors.New("slot not found")
	ErrSlotExpired          = errors.New("slot start time has already passed")
	ErrSlotTaken            = errors.New("slot has already been booked")
	ErrDuplicateBooking     = errors.New("an active booking with this doctor already exists for that day")
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrTicketNotOwned       = errors.New("ticket belongs to another patient")
	ErrTicketNotConfirmable = errors.New("ticket can no longer be confirmed")
	ErrTicketNotCancellable = errors.New("ticket can no longer be cancelled")
	ErrTicketNotCompletable = errors.New("only a confirmed ticket can be completed")
	ErrCancelWindowClosed   = errors.New("cancellation window has closed")
	ErrInvalidDateRange     = errors.New("invalid date range")
)

// listWindowDays bounds an open-ended availability query.
const listWindowDays = 14

// BookingUsecase runs the ticket lifecycle: a patient takes a free slot with
// a pending ticket, payment confirms it, the patient may cancel it while the
// window is open, and the doctor marks it completed after the visit.
type BookingUsecase interface {
	CreateBooking(ctx context.Context, clientID uuid.UUID, req *dto.CreateTicketRequest) (*dto.TicketResponse, error)
	ConfirmPayment(ctx context.Context, ticketUUID string) (*dto.TicketResponse, error)
	CancelBooking(ctx context.Context, clientID uuid.UUID, ticketUUID string) (*dto.TicketResponse, error)
	CompleteTicket(ctx context.Context, doctorID uuid.UUID, ticketUUID string) (*dto.TicketResponse, error)
	ListAvailableSlots(ctx context.Context, doctorID uuid.UUID, from, to string) (*dto.AvailableSlotsResponse, error)
	GetMyTickets(ctx context.Context, clientID uuid.UUID) (*dto.TicketListResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	ticketRepo      repository.TicketRepository
	doctorShiftRepo repository.DoctorShiftRepository
	auditService    service.AuditService
	cancelWindow    time.Duration
	now             func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	ticketRepo repository.TicketRepository,
	doctorShiftRepo repository.DoctorShiftRepository,
	auditService service.AuditService,
	bookingConfig *config.BookingConfig,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		ticketRepo:      ticketRepo,
		doctorShiftRepo: doctorShiftRepo,
		auditService:    auditService,
		cancelWindow:    bookingConfig.CancelWindow,
		now:             time.Now,
	}
}

// CreateBooking books a slot for the patient. The preconditions are checked
// in a fixed order (slot exists, slot not expired, slot free, no same-day
// duplicate) so a request failing several of them reports the same error
// every time. The unique index on tickets.doctor_shift_id stays the final
// arbiter when two requests race past the in-transaction check.
func (u *bookingUsecase) CreateBooking(ctx context.Context, clientID uuid.UUID, req *dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	birthOfDay, err := time.Parse(workDateLayout, req.BirthOfDay)
	if err != nil {
		return nil, ErrInvalidWorkDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctorShift, err := u.doctorShiftRepo.FindByID(tx, req.DoctorShiftID)
	if err != nil {
		u.log.Warnf("Failed to find doctor shift: %+v", err)
		return nil, err
	}
	if doctorShift == nil {
		return nil, ErrSlotNotFound
	}

	startAt, err := doctorShift.Shift.StartOnDate(doctorShift.WorkDate)
	if err != nil {
		u.log.Warnf("Failed to resolve slot start time: %+v", err)
		return nil, err
	}
	if !startAt.After(u.now()) {
		return nil, ErrSlotExpired
	}

	if doctorShift.Ticket != nil {
		return nil, ErrSlotTaken
	}

	duplicate, err := u.ticketRepo.FindActiveByClientDoctorDate(tx, clientID, doctorShift.DoctorID, doctorShift.WorkDate)
	if err != nil {
		u.log.Warnf("Failed to check for duplicate booking: %+v", err)
		return nil, err
	}
	if duplicate != nil {
		return nil, ErrDuplicateBooking
	}

	ticket := &entity.Ticket{
		UUID:          uuid.NewString(),
		DoctorShiftID: doctorShift.ID,
		ClientID:      clientID,
		Status:        entity.TicketStatusPending,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		BirthOfDay:    entity.DateOnly(birthOfDay),
		Gender:        req.Gender,
	}
	if err := u.ticketRepo.Create(tx, ticket); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create ticket: %+v", err)
		return nil, err
	}

	u.auditService.Log(tx, &clientID, entity.AuditActionTicketCreate, entity.JSON{
		"ticket_uuid":     ticket.UUID,
		"doctor_shift_id": doctorShift.ID,
		"doctor_id":       doctorShift.DoctorID.String(),
		"work_date":       doctorShift.WorkDate.Format(workDateLayout),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	ticket.DoctorShift = *doctorShift
	u.log.Infof("Ticket created: uuid=%s, client=%s, slot=%d", ticket.UUID, clientID, doctorShift.ID)
	return converter.TicketToResponse(ticket), nil
}

// ConfirmPayment moves a pending ticket to confirmed. Payment providers
// retry their webhooks, so confirming an already confirmed ticket succeeds
// without touching the row; a cancelled or completed ticket is an error.
func (u *bookingUsecase) ConfirmPayment(ctx context.Context, ticketUUID string) (*dto.TicketResponse, error) {
	db := u.db.WithContext(ctx)

	ticket, err := u.ticketRepo.FindByUUID(db, ticketUUID)
	if err != nil {
		u.log.Warnf("Failed to find ticket: %+v", err)
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	if ticket.IsConfirmed() {
		return converter.TicketToResponse(ticket), nil
	}
	if ticket.IsTerminal() {
		return nil, ErrTicketNotConfirmable
	}

	tx := db.Begin()
	defer tx.Rollback()

	affected, err := u.ticketRepo.UpdateStatusIf(tx, ticket.ID,
		[]entity.TicketStatus{entity.TicketStatusPending}, entity.TicketStatusConfirmed)
	if err != nil {
		u.log.Warnf("Failed to confirm ticket: %+v", err)
		return nil, err
	}
	if affected == 0 {
		// Lost a race with another transition; re-read to tell a
		// concurrent confirm from a concurrent cancel.
		current, err := u.ticketRepo.FindByUUID(tx, ticketUUID)
		if err != nil {
			return nil, err
		}
		if current != nil && current.IsConfirmed() {
			return converter.TicketToResponse(current), nil
		}
		return nil, ErrTicketNotConfirmable
	}

	u.auditService.Log(tx, nil, entity.AuditActionTicketConfirm, entity.JSON{
		"ticket_uuid": ticketUUID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	ticket.Status = entity.TicketStatusConfirmed
	u.log.Infof("Ticket confirmed: uuid=%s", ticketUUID)
	return converter.TicketToResponse(ticket), nil
}

// CancelBooking cancels the patient's own pending or confirmed ticket, but
// only while the appointment is still strictly further away than the cancel
// window. At exactly the window boundary the cancellation is refused.
func (u *bookingUsecase) CancelBooking(ctx context.Context, clientID uuid.UUID, ticketUUID string) (*dto.TicketResponse, error) {
	db := u.db.WithContext(ctx)

	ticket, err := u.ticketRepo.FindByUUID(db, ticketUUID)
	if err != nil {
		u.log.Warnf("Failed to find ticket: %+v", err)
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	if ticket.ClientID != clientID {
		return nil, ErrTicketNotOwned
	}
	if ticket.IsTerminal() {
		return nil, ErrTicketNotCancellable
	}

	startAt, err := ticket.DoctorShift.Shift.StartOnDate(ticket.DoctorShift.WorkDate)
	if err != nil {
		u.log.Warnf("Failed to resolve slot start time: %+v", err)
		return nil, err
	}
	if startAt.Sub(u.now()) <= u.cancelWindow {
		return nil, ErrCancelWindowClosed
	}

	tx := db.Begin()
	defer tx.Rollback()

	affected, err := u.ticketRepo.UpdateStatusIf(tx, ticket.ID, entity.ActiveStatuses(), entity.TicketStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel ticket: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrTicketNotCancellable
	}

	u.auditService.Log(tx, &clientID, entity.AuditActionTicketCancel, entity.JSON{
		"ticket_uuid": ticketUUID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	ticket.Status = entity.TicketStatusCancelled
	u.log.Infof("Ticket cancelled: uuid=%s, client=%s", ticketUUID, clientID)
	return converter.TicketToResponse(ticket), nil
}

// CompleteTicket marks a confirmed ticket completed after the visit. Only
// the doctor who owns the slot may complete it.
func (u *bookingUsecase) CompleteTicket(ctx context.Context, doctorID uuid.UUID, ticketUUID string) (*dto.TicketResponse, error) {
	db := u.db.WithContext(ctx)

	ticket, err := u.ticketRepo.FindByUUID(db, ticketUUID)
	if err != nil {
		u.log.Warnf("Failed to find ticket: %+v", err)
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	if ticket.DoctorShift.DoctorID != doctorID {
		return nil, ErrTicketNotOwned
	}

	tx := db.Begin()
	defer tx.Rollback()

	affected, err := u.ticketRepo.UpdateStatusIf(tx, ticket.ID,
		[]entity.TicketStatus{entity.TicketStatusConfirmed}, entity.TicketStatusCompleted)
	if err != nil {
		u.log.Warnf("Failed to complete ticket: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrTicketNotCompletable
	}

	u.auditService.Log(tx, &doctorID, entity.AuditActionTicketComplete, entity.JSON{
		"ticket_uuid": ticketUUID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	ticket.Status = entity.TicketStatusCompleted
	u.log.Infof("Ticket completed: uuid=%s, doctor=%s", ticketUUID, doctorID)
	return converter.TicketToResponse(ticket), nil
}

// ListAvailableSlots returns the doctor's slots that have never carried a
// ticket, grouped by date with morning and afternoon buckets. A slot whose
// ticket was cancelled is not offered again; the doctor frees capacity by
// assigning a fresh slot instead.
func (u *bookingUsecase) ListAvailableSlots(ctx context.Context, doctorID uuid.UUID, from, to string) (*dto.AvailableSlotsResponse, error) {
	fromDate := entity.Today()
	if from != "" {
		parsed, err := parseWorkDate(from)
		if err != nil {
			return nil, err
		}
		if parsed.After(fromDate) {
			fromDate = parsed
		}
	}
	toDate := fromDate.AddDate(0, 0, listWindowDays)
	if to != "" {
		parsed, err := parseWorkDate(to)
		if err != nil {
			return nil, err
		}
		toDate = parsed
	}
	if toDate.Before(fromDate) {
		return nil, ErrInvalidDateRange
	}

	doctorShifts, err := u.doctorShiftRepo.FindNeverBooked(u.db.WithContext(ctx), doctorID, fromDate, toDate)
	if err != nil {
		u.log.Warnf("Failed to find available slots: %+v", err)
		return nil, err
	}

	now := u.now()
	days := []dto.AvailableDayResponse{}
	var day *dto.AvailableDayResponse
	total := 0
	for i := range doctorShifts {
		doctorShift := &doctorShifts[i]

		startAt, err := doctorShift.Shift.StartOnDate(doctorShift.WorkDate)
		if err != nil {
			u.log.Warnf("Skipping slot %d with malformed start time: %+v", doctorShift.ID, err)
			continue
		}
		if !startAt.After(now) {
			continue
		}

		date := doctorShift.WorkDate.Format(workDateLayout)
		if day == nil || day.Date != date {
			days = append(days, dto.AvailableDayResponse{
				Date:      date,
				Morning:   []dto.SlotResponse{},
				Afternoon: []dto.SlotResponse{},
			})
			day = &days[len(days)-1]
		}

		slot := dto.SlotResponse{
			DoctorShiftID: doctorShift.ID,
			StartTime:     doctorShift.Shift.StartTime,
			EndTime:       doctorShift.Shift.EndTime,
		}
		if doctorShift.Shift.IsMorning() {
			day.Morning = append(day.Morning, slot)
		} else {
			day.Afternoon = append(day.Afternoon, slot)
		}
		total++
	}

	return &dto.AvailableSlotsResponse{
		Days:  days,
		Total: total,
	}, nil
}

func (u *bookingUsecase) GetMyTickets(ctx context.Context, clientID uuid.UUID) (*dto.TicketListResponse, error) {
	tickets, err := u.ticketRepo.FindByClientID(u.db.WithContext(ctx), clientID)
	if err != nil {
		u.log.Warnf("Failed to find tickets: %+v", err)
		return nil, err
	}

	return &dto.TicketListResponse{
		Tickets: converter.TicketsToResponses(tickets),
		Total:   len(tickets),
	}, nil
}
