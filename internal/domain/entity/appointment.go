package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Date and time layouts used across the scheduling domain
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment is a booked visit. PatientName is a point-in-time snapshot
// captured when the appointment is created; it is not re-derived if the
// patient is later renamed.
type Appointment struct {
	ID          int64             `gorm:"primaryKey" json:"id"`
	PatientID   int64             `gorm:"not null;index" json:"patient_id"`
	PatientName string            `gorm:"type:varchar(255);not null" json:"patient_name"`
	Date        string            `gorm:"type:date;not null;index" json:"date"`
	Time        string            `gorm:"type:varchar(5);not null" json:"time"`
	Duration    int               `gorm:"not null" json:"duration"`
	Reason      string            `gorm:"type:text" json:"reason,omitempty"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'confirmed';index" json:"status"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsConfirmed checks if the appointment is in confirmed status
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// IsCompleted checks if the appointment has been completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// IsCancelled checks if the appointment was cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Complete marks the appointment as completed
func (a *Appointment) Complete() {
	a.Status = AppointmentStatusCompleted
}

// Cancel marks the appointment as cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}

// StartMinute returns the appointment start as minutes since midnight
func (a *Appointment) StartMinute() (int, error) {
	return MinuteOfDay(a.Time)
}

// Overlaps reports whether two appointments on the same date share any part
// of their time window. Cancelled appointments never count as overlapping.
func (a *Appointment) Overlaps(other *Appointment) bool {
	if a.Date != other.Date || a.IsCancelled() || other.IsCancelled() {
		return false
	}
	aStart, err := a.StartMinute()
	if err != nil {
		return false
	}
	bStart, err := other.StartMinute()
	if err != nil {
		return false
	}
	return aStart < bStart+other.Duration && bStart < aStart+a.Duration
}

// MinuteOfDay parses an HH:MM clock string into minutes since midnight
func MinuteOfDay(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return hour*60 + minute, nil
}
