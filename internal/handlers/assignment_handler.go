package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homeschool/internal/models"
	"homeschool/internal/pagination"
	"homeschool/internal/responses"
	"homeschool/internal/services"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
	attachmentService *services.AttachmentService
}

func NewAssignmentHandler(
	assignmentService *services.AssignmentService,
	attachmentService *services.AttachmentService,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		attachmentService: attachmentService,
	}
}

type assignmentRequest struct {
	StudentID   uuid.UUID  `json:"student_id" binding:"required"`
	SubjectID   *uuid.UUID `json:"subject_id"`
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Score       *float64   `json:"score"`
	Grade       *string    `json:"grade"`
}

func (r *assignmentRequest) toInput() services.AssignmentInput {
	return services.AssignmentInput{
		StudentID:   r.StudentID,
		SubjectID:   r.SubjectID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Status:      r.Status,
		Score:       r.Score,
		Grade:       r.Grade,
	}
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	a, err := h.assignmentService.Create(teacherID, req.toInput())
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, a)
}

func (h *AssignmentHandler) Get(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.assignmentService.Get(id, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, a)
}

func (h *AssignmentHandler) List(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	studentID, ok := queryUUID(c, "student_id")
	if !ok {
		return
	}
	subjectID, ok := queryUUID(c, "subject_id")
	if !ok {
		return
	}
	dueFrom, ok := queryTime(c, "due_from")
	if !ok {
		return
	}
	dueTo, ok := queryTime(c, "due_to")
	if !ok {
		return
	}
	page := pagination.Parse(c)

	items, total, err := h.assignmentService.List(teacherID, services.AssignmentListOptions{
		StudentID: studentID,
		SubjectID: subjectID,
		Status:    c.Query("status"),
		DueFrom:   dueFrom,
		DueTo:     dueTo,
		Page:      page,
	})
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.SuccessWithMeta(c, http.StatusOK, items, responses.NewMeta(page.Page, page.Limit, total))
}

func (h *AssignmentHandler) Update(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	a, err := h.assignmentService.Update(id, teacherID, req.toInput())
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, a)
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentService.Delete(id, teacherID); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}

func (h *AssignmentHandler) UploadAttachment(c *gin.Context) {
	uploadAttachment(c, h.attachmentService, models.AttachmentOwnerAssignment)
}

func (h *AssignmentHandler) ListAttachments(c *gin.Context) {
	listAttachments(c, h.attachmentService, models.AttachmentOwnerAssignment)
}
