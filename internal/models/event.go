package models

import (
	"time"

	"github.com/google/uuid"
)

type EventType struct {
	ID        uuid.UUID `json:"id"`
	TeacherID uuid.UUID `json:"teacher_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func (et *EventType) Prepare() {
	if et.ID == uuid.Nil {
		et.ID = uuid.New()
	}
}

// Event is a calendar entry. A recurring series is a single row with a
// RecurrenceRule; individually edited instances are child rows carrying
// ParentEventID plus the OriginalStartAt they replace. A child with
// IsCancelled set removes its occurrence from the expanded series.
type Event struct {
	ID              uuid.UUID  `json:"id"`
	TeacherID       uuid.UUID  `json:"teacher_id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Location        *string    `json:"location,omitempty"`
	EventTypeID     *uuid.UUID `json:"event_type_id,omitempty"`
	StartAt         time.Time  `json:"start_at"`
	EndAt           time.Time  `json:"end_at"`
	AllDay          bool       `json:"all_day"`
	RecurrenceRule  *string    `json:"recurrence_rule,omitempty"`
	ParentEventID   *uuid.UUID `json:"parent_event_id,omitempty"`
	OriginalStartAt *time.Time `json:"original_start_at,omitempty"`
	IsCancelled     bool       `json:"is_cancelled"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (e *Event) Prepare() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
}

func (e *Event) Recurring() bool {
	return e.RecurrenceRule != nil && *e.RecurrenceRule != ""
}

// EventOccurrence is one concrete instance of an event inside a queried
// window, either generated from the recurrence rule or taken from an
// exception row.
type EventOccurrence struct {
	EventID     uuid.UUID  `json:"event_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	EventTypeID *uuid.UUID `json:"event_type_id,omitempty"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       time.Time  `json:"end_at"`
	AllDay      bool       `json:"all_day"`
	IsException bool       `json:"is_exception"`
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

func ValidAttendanceStatus(s string) bool {
	switch AttendanceStatus(s) {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return true
	}
	return false
}

// Attendance records a student's presence for one occurrence date of an
// event. (event_id, student_id, date) is unique.
type Attendance struct {
	ID        uuid.UUID        `json:"id"`
	EventID   uuid.UUID        `json:"event_id"`
	StudentID uuid.UUID        `json:"student_id"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (a *Attendance) Prepare() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
}
