package dto

// Request DTOs

type AssignShiftsRequest struct {
	WorkDate string `json:"work_date" validate:"required,datetime=2006-01-02"`
	ShiftIDs []int  `json:"shift_ids" validate:"required,min=1,dive,min=1"`
}

type UnassignShiftsRequest struct {
	WorkDate string `json:"work_date" validate:"required,datetime=2006-01-02"`
	ShiftIDs []int  `json:"shift_ids" validate:"required,min=1,dive,min=1"`
}

// ReplaceShiftsRequest carries the full desired set of shift ids for a date;
// the server computes what to add and what to remove.
type ReplaceShiftsRequest struct {
	WorkDate string `json:"work_date" validate:"required,datetime=2006-01-02"`
	ShiftIDs []int  `json:"shift_ids" validate:"dive,min=1"`
}

// Response DTOs

type AssignShiftsResponse struct {
	WorkDate string `json:"work_date"`
	Created  int    `json:"created"`
	Existing int    `json:"existing"`
}

// UnassignShiftsResponse reports a partial-success batch: slots with an
// active ticket are listed as blocked, not failed.
type UnassignShiftsResponse struct {
	WorkDate        string `json:"work_date"`
	Deleted         int    `json:"deleted"`
	BlockedShiftIDs []int  `json:"blocked_shift_ids"`
}

type ReplaceShiftsResponse struct {
	WorkDate        string `json:"work_date"`
	Added           int    `json:"added"`
	Removed         int    `json:"removed"`
	BlockedShiftIDs []int  `json:"blocked_shift_ids"`
}

type DoctorShiftResponse struct {
	ID           int    `json:"id"`
	ShiftID      int    `json:"shift_id"`
	WorkDate     string `json:"work_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Booked       bool   `json:"booked"`
	TicketStatus string `json:"ticket_status,omitempty"`
}

type DoctorShiftListResponse struct {
	DoctorShifts []DoctorShiftResponse `json:"doctor_shifts"`
	Total        int                   `json:"total"`
}

// SlotResponse is a bookable slot as shown to patients.
type SlotResponse struct {
	DoctorShiftID int    `json:"doctor_shift_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

// AvailableDayResponse groups a date's free slots into the morning and
// afternoon buckets the booking page renders.
type AvailableDayResponse struct {
	Date      string         `json:"date"`
	Morning   []SlotResponse `json:"morning"`
	Afternoon []SlotResponse `json:"afternoon"`
}

type AvailableSlotsResponse struct {
	Days  []AvailableDayResponse `json:"days"`
	Total int                    `json:"total"`
}
