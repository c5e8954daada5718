package services

import (
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/models"
	"homeschool/internal/recurrence"
	"homeschool/internal/repositories"
)

type CalendarService struct {
	eventRepo      *repositories.EventRepository
	eventTypeRepo  *repositories.EventTypeRepository
	attendanceRepo *repositories.AttendanceRepository
	studentRepo    *repositories.StudentRepository
}

func NewCalendarService(
	eventRepo *repositories.EventRepository,
	eventTypeRepo *repositories.EventTypeRepository,
	attendanceRepo *repositories.AttendanceRepository,
	studentRepo *repositories.StudentRepository,
) *CalendarService {
	return &CalendarService{
		eventRepo:      eventRepo,
		eventTypeRepo:  eventTypeRepo,
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
	}
}

type EventInput struct {
	Title          string
	Description    *string
	Location       *string
	EventTypeID    *uuid.UUID
	StartAt        time.Time
	EndAt          time.Time
	AllDay         bool
	RecurrenceRule *string
	// For exception events only:
	ParentEventID   *uuid.UUID
	OriginalStartAt *time.Time
	IsCancelled     bool
}

func (s *CalendarService) validateEvent(teacherID uuid.UUID, input *EventInput) error {
	details := map[string]string{}
	if input.Title == "" {
		details["title"] = "this field is required"
	}
	if input.EndAt.Before(input.StartAt) {
		details["end_at"] = "must not precede start_at"
	}

	if input.RecurrenceRule != nil && *input.RecurrenceRule != "" {
		rule, err := recurrence.ParseRule(*input.RecurrenceRule)
		if err != nil {
			details["recurrence_rule"] = err.Error()
		} else if err := rule.Validate(input.StartAt); err != nil {
			details["recurrence_rule"] = err.Error()
		}
	}

	if len(details) > 0 {
		return apperrors.Validation("invalid event", details)
	}

	if input.EventTypeID != nil {
		et, err := s.eventTypeRepo.GetByIDAndTeacherID(*input.EventTypeID, teacherID)
		if err != nil {
			return err
		}
		if et == nil {
			return apperrors.NotFound("event type")
		}
	}
	return nil
}

func (s *CalendarService) CreateEvent(teacherID uuid.UUID, input EventInput) (*models.Event, error) {
	if err := s.validateEvent(teacherID, &input); err != nil {
		return nil, err
	}

	event := &models.Event{
		TeacherID:       teacherID,
		Title:           input.Title,
		Description:     input.Description,
		Location:        input.Location,
		EventTypeID:     input.EventTypeID,
		StartAt:         input.StartAt,
		EndAt:           input.EndAt,
		AllDay:          input.AllDay,
		RecurrenceRule:  normalizeRule(input.RecurrenceRule),
		ParentEventID:   input.ParentEventID,
		OriginalStartAt: input.OriginalStartAt,
		IsCancelled:     input.IsCancelled,
	}

	if input.ParentEventID != nil {
		parent, err := s.eventRepo.GetByIDAndTeacherID(*input.ParentEventID, teacherID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperrors.NotFound("parent event")
		}
		if !parent.Recurring() {
			return nil, apperrors.BadRequest("parent_event_id must reference a recurring event")
		}
		if input.OriginalStartAt == nil {
			return nil, apperrors.Validation("invalid event",
				map[string]string{"original_start_at": "required for exception events"})
		}
		// Exceptions are single instances; they never recur themselves.
		event.RecurrenceRule = nil
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

func normalizeRule(rule *string) *string {
	if rule == nil || *rule == "" {
		return nil
	}
	return rule
}

func (s *CalendarService) GetEvent(id, teacherID uuid.UUID) (*models.Event, error) {
	event, err := s.eventRepo.GetByIDAndTeacherID(id, teacherID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.NotFound("event")
	}
	return event, nil
}

func (s *CalendarService) UpdateEvent(id, teacherID uuid.UUID, input EventInput) (*models.Event, error) {
	event, err := s.GetEvent(id, teacherID)
	if err != nil {
		return nil, err
	}
	if err := s.validateEvent(teacherID, &input); err != nil {
		return nil, err
	}

	event.Title = input.Title
	event.Description = input.Description
	event.Location = input.Location
	event.EventTypeID = input.EventTypeID
	event.StartAt = input.StartAt
	event.EndAt = input.EndAt
	event.AllDay = input.AllDay
	event.IsCancelled = input.IsCancelled
	if event.ParentEventID == nil {
		event.RecurrenceRule = normalizeRule(input.RecurrenceRule)
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *CalendarService) DeleteEvent(id, teacherID uuid.UUID) error {
	ok, err := s.eventRepo.Delete(id, teacherID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("event")
	}
	return nil
}

// Occurrences expands every event of the teacher overlapping [from, to]:
// one-off events pass through, recurring series are expanded with their
// rules, and exception children override or cancel the generated
// instance sharing their original start.
func (s *CalendarService) Occurrences(teacherID uuid.UUID, from, to time.Time) ([]models.EventOccurrence, error) {
	if to.Before(from) {
		return nil, apperrors.BadRequest("'to' must not precede 'from'")
	}

	bases, err := s.eventRepo.ListBaseInWindow(teacherID, from, to)
	if err != nil {
		return nil, err
	}

	var recurringIDs []uuid.UUID
	for _, e := range bases {
		if e.Recurring() {
			recurringIDs = append(recurringIDs, e.ID)
		}
	}

	exceptions, err := s.eventRepo.ListExceptions(recurringIDs)
	if err != nil {
		return nil, err
	}

	// Index exceptions by (parent, original start).
	type exKey struct {
		parent uuid.UUID
		start  int64
	}
	exIndex := make(map[exKey]*models.Event, len(exceptions))
	for i := range exceptions {
		ex := &exceptions[i]
		if ex.OriginalStartAt == nil {
			continue
		}
		exIndex[exKey{*ex.ParentEventID, ex.OriginalStartAt.Unix()}] = ex
	}
	matched := make(map[uuid.UUID]bool, len(exceptions))

	var out []models.EventOccurrence

	for i := range bases {
		base := &bases[i]
		if base.IsCancelled {
			continue
		}

		if !base.Recurring() {
			if overlapsWindow(base.StartAt, base.EndAt, from, to) {
				out = append(out, occurrenceOf(base, base.StartAt, base.EndAt, false))
			}
			continue
		}

		rule, err := recurrence.ParseRule(*base.RecurrenceRule)
		if err != nil {
			// Stored rules are validated on write; a parse failure here
			// means corrupt data, not a client error.
			log.Printf("skipping event %s: stored recurrence rule unparseable: %v", base.ID, err)
			continue
		}

		occs, err := recurrence.Expand(base.StartAt, base.EndAt, rule, from, to)
		if err != nil {
			log.Printf("skipping event %s: expansion failed: %v", base.ID, err)
			continue
		}

		for _, occ := range occs {
			if ex, ok := exIndex[exKey{base.ID, occ.Start.Unix()}]; ok {
				matched[ex.ID] = true
				if ex.IsCancelled {
					continue
				}
				out = append(out, occurrenceOf(ex, ex.StartAt, ex.EndAt, true))
				continue
			}
			out = append(out, occurrenceOf(base, occ.Start, occ.End, false))
		}
	}

	// An exception moved into the window from an occurrence outside it
	// still has to show up.
	for i := range exceptions {
		ex := &exceptions[i]
		if matched[ex.ID] || ex.IsCancelled {
			continue
		}
		if overlapsWindow(ex.StartAt, ex.EndAt, from, to) {
			out = append(out, occurrenceOf(ex, ex.StartAt, ex.EndAt, true))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func occurrenceOf(e *models.Event, start, end time.Time, isException bool) models.EventOccurrence {
	if e.AllDay {
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		end = start.Add(24 * time.Hour)
	}
	eventID := e.ID
	if isException && e.ParentEventID != nil {
		eventID = *e.ParentEventID
	}
	occ := models.EventOccurrence{
		EventID:     eventID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		EventTypeID: e.EventTypeID,
		StartAt:     start,
		EndAt:       end,
		AllDay:      e.AllDay,
		IsException: isException,
	}
	return occ
}

func overlapsWindow(aStart, aEnd, from, to time.Time) bool {
	return !aEnd.Before(from) && !to.Before(aStart)
}

// --- event types ---

type EventTypeInput struct {
	Name  string
	Color string
}

func (s *CalendarService) CreateEventType(teacherID uuid.UUID, input EventTypeInput) (*models.EventType, error) {
	if input.Name == "" {
		return nil, apperrors.Validation("invalid event type", map[string]string{"name": "this field is required"})
	}
	et := &models.EventType{TeacherID: teacherID, Name: input.Name, Color: input.Color}
	if et.Color == "" {
		et.Color = "#4287f5"
	}
	if err := s.eventTypeRepo.Create(et); err != nil {
		return nil, err
	}
	return et, nil
}

func (s *CalendarService) ListEventTypes(teacherID uuid.UUID) ([]models.EventType, error) {
	return s.eventTypeRepo.List(teacherID)
}

func (s *CalendarService) UpdateEventType(id, teacherID uuid.UUID, input EventTypeInput) (*models.EventType, error) {
	et, err := s.eventTypeRepo.GetByIDAndTeacherID(id, teacherID)
	if err != nil {
		return nil, err
	}
	if et == nil {
		return nil, apperrors.NotFound("event type")
	}
	if input.Name != "" {
		et.Name = input.Name
	}
	if input.Color != "" {
		et.Color = input.Color
	}
	if err := s.eventTypeRepo.Update(et); err != nil {
		return nil, err
	}
	return et, nil
}

func (s *CalendarService) DeleteEventType(id, teacherID uuid.UUID) error {
	ok, err := s.eventTypeRepo.Delete(id, teacherID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("event type")
	}
	return nil
}

// --- attendance ---

type AttendanceInput struct {
	StudentID uuid.UUID
	Date      time.Time
	Status    string
}

func (s *CalendarService) RecordAttendance(eventID, teacherID uuid.UUID, input AttendanceInput) (*models.Attendance, error) {
	if !models.ValidAttendanceStatus(input.Status) {
		return nil, apperrors.Validation("invalid attendance",
			map[string]string{"status": "must be one of: present absent excused"})
	}

	if _, err := s.GetEvent(eventID, teacherID); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByIDAndTeacherID(input.StudentID, teacherID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NotFound("student")
	}

	record := &models.Attendance{
		EventID:   eventID,
		StudentID: input.StudentID,
		Date:      input.Date,
		Status:    models.AttendanceStatus(input.Status),
	}
	if err := s.attendanceRepo.Upsert(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *CalendarService) ListAttendance(eventID, teacherID uuid.UUID) ([]models.Attendance, error) {
	if _, err := s.GetEvent(eventID, teacherID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByEvent(eventID)
}
