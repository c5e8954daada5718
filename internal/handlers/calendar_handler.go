package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/responses"
	"homeschool/internal/services"
)

type CalendarHandler struct {
	calendarService *services.CalendarService
}

func NewCalendarHandler(calendarService *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

type eventRequest struct {
	Title           string     `json:"title" binding:"required"`
	Description     *string    `json:"description"`
	Location        *string    `json:"location"`
	EventTypeID     *uuid.UUID `json:"event_type_id"`
	StartAt         time.Time  `json:"start_at" binding:"required"`
	EndAt           time.Time  `json:"end_at" binding:"required"`
	AllDay          bool       `json:"all_day"`
	RecurrenceRule  *string    `json:"recurrence_rule"`
	ParentEventID   *uuid.UUID `json:"parent_event_id"`
	OriginalStartAt *time.Time `json:"original_start_at"`
	IsCancelled     bool       `json:"is_cancelled"`
}

func (r *eventRequest) toInput() services.EventInput {
	return services.EventInput{
		Title:           r.Title,
		Description:     r.Description,
		Location:        r.Location,
		EventTypeID:     r.EventTypeID,
		StartAt:         r.StartAt,
		EndAt:           r.EndAt,
		AllDay:          r.AllDay,
		RecurrenceRule:  r.RecurrenceRule,
		ParentEventID:   r.ParentEventID,
		OriginalStartAt: r.OriginalStartAt,
		IsCancelled:     r.IsCancelled,
	}
}

func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	event, err := h.calendarService.CreateEvent(teacherID, req.toInput())
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, event)
}

func (h *CalendarHandler) GetEvent(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	event, err := h.calendarService.GetEvent(id, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, event)
}

// ListOccurrences expands the calendar into concrete instances between
// ?from and ?to.
func (h *CalendarHandler) ListOccurrences(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	from, ok := queryTime(c, "from")
	if !ok {
		return
	}
	to, ok := queryTime(c, "to")
	if !ok {
		return
	}
	if from == nil || to == nil {
		responses.Fail(c, apperrors.BadRequest("'from' and 'to' query parameters are required"))
		return
	}

	occurrences, err := h.calendarService.Occurrences(teacherID, *from, *to)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, occurrences)
}

func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	event, err := h.calendarService.UpdateEvent(id, teacherID, req.toInput())
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, event)
}

func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.calendarService.DeleteEvent(id, teacherID); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}

// --- event types ---

type eventTypeRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

func (h *CalendarHandler) CreateEventType(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	var req eventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	et, err := h.calendarService.CreateEventType(teacherID, services.EventTypeInput{Name: req.Name, Color: req.Color})
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, et)
}

func (h *CalendarHandler) ListEventTypes(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	types, err := h.calendarService.ListEventTypes(teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, types)
}

func (h *CalendarHandler) UpdateEventType(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req eventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	et, err := h.calendarService.UpdateEventType(id, teacherID, services.EventTypeInput{Name: req.Name, Color: req.Color})
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, et)
}

func (h *CalendarHandler) DeleteEventType(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.calendarService.DeleteEventType(id, teacherID); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}

// --- attendance ---

type attendanceRequest struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	Status    string    `json:"status" binding:"required"`
}

func (h *CalendarHandler) RecordAttendance(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		responses.Fail(c, invalidDateErr("date"))
		return
	}

	record, err := h.calendarService.RecordAttendance(eventID, teacherID, services.AttendanceInput{
		StudentID: req.StudentID,
		Date:      date,
		Status:    req.Status,
	})
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, record)
}

func (h *CalendarHandler) ListAttendance(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	eventID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	records, err := h.calendarService.ListAttendance(eventID, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, records)
}
