package entity

import "time"

// Shift is a reusable time-of-day template from the slot catalog. It is not
// bound to any doctor or date; the catalog is seeded once as reference data
// and its granularity is whatever the seed rows define.
type Shift struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	StartTime string    `gorm:"type:time;not null" json:"start_time"`
	EndTime   string    `gorm:"type:time;not null" json:"end_time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	DoctorShifts []DoctorShift `gorm:"foreignKey:ShiftID" json:"doctor_shifts,omitempty"`
}

func (Shift) TableName() string {
	return "shifts"
}

// ShiftTimeLayout is the wire format of Shift start/end times.
const ShiftTimeLayout = "15:04"

// IsMorning reports whether the shift starts before noon. Used to group a
// day's slots into morning/afternoon buckets for presentation.
func (s *Shift) IsMorning() bool {
	return s.StartTime < "12:00"
}

// StartOnDate combines a calendar date with the shift's start time into a
// concrete appointment instant in the server's local time. Postgres time
// columns scan back with seconds attached, so both layouts are accepted.
func (s *Shift) StartOnDate(workDate time.Time) (time.Time, error) {
	t, err := time.Parse(ShiftTimeLayout, s.StartTime)
	if err != nil {
		t, err = time.Parse("15:04:05", s.StartTime)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(workDate.Year(), workDate.Month(), workDate.Day(),
		t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
