package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homeschool/internal/pagination"
	"homeschool/internal/responses"
	"homeschool/internal/services"
)

type ReportCardHandler struct {
	reportCardService *services.ReportCardService
}

func NewReportCardHandler(reportCardService *services.ReportCardService) *ReportCardHandler {
	return &ReportCardHandler{reportCardService: reportCardService}
}

type reportCardRequest struct {
	StudentID   uuid.UUID `json:"student_id" binding:"required"`
	Term        string    `json:"term" binding:"required"`
	PeriodStart string    `json:"period_start" binding:"required"`
	PeriodEnd   string    `json:"period_end" binding:"required"`
	IsPublished bool      `json:"is_published"`
}

func (r *reportCardRequest) toInput(c *gin.Context) (services.ReportCardInput, bool) {
	start, err := time.Parse("2006-01-02", r.PeriodStart)
	if err != nil {
		responses.Fail(c, invalidDateErr("period_start"))
		return services.ReportCardInput{}, false
	}
	end, err := time.Parse("2006-01-02", r.PeriodEnd)
	if err != nil {
		responses.Fail(c, invalidDateErr("period_end"))
		return services.ReportCardInput{}, false
	}
	return services.ReportCardInput{
		StudentID:   r.StudentID,
		Term:        r.Term,
		PeriodStart: start,
		PeriodEnd:   end,
		IsPublished: r.IsPublished,
	}, true
}

func (h *ReportCardHandler) Create(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	var req reportCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	rc, err := h.reportCardService.Create(teacherID, input)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, rc)
}

func (h *ReportCardHandler) Get(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	rc, err := h.reportCardService.Get(id, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, rc)
}

func (h *ReportCardHandler) List(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	studentID, ok := queryUUID(c, "student_id")
	if !ok {
		return
	}
	page := pagination.Parse(c)

	items, total, err := h.reportCardService.List(teacherID, studentID, page)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.SuccessWithMeta(c, http.StatusOK, items, responses.NewMeta(page.Page, page.Limit, total))
}

func (h *ReportCardHandler) Update(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req reportCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	rc, err := h.reportCardService.Update(id, teacherID, input)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, rc)
}

func (h *ReportCardHandler) Delete(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.reportCardService.Delete(id, teacherID); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}

type reportCardEntryRequest struct {
	SubjectID   *uuid.UUID `json:"subject_id"`
	SubjectName string     `json:"subject_name"`
	LetterGrade string     `json:"letter_grade" binding:"required"`
	Score       *float64   `json:"score"`
	Comments    *string    `json:"comments"`
}

func (h *ReportCardHandler) AddEntry(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	cardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req reportCardEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	rc, err := h.reportCardService.AddEntry(cardID, teacherID, services.ReportCardEntryInput{
		SubjectID:   req.SubjectID,
		SubjectName: req.SubjectName,
		LetterGrade: req.LetterGrade,
		Score:       req.Score,
		Comments:    req.Comments,
	})
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, rc)
}

func (h *ReportCardHandler) DeleteEntry(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	cardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	entryID, ok := pathUUID(c, "entryId")
	if !ok {
		return
	}

	if err := h.reportCardService.DeleteEntry(cardID, entryID, teacherID); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}

// DownloadPDF streams the rendered report card.
func (h *ReportCardHandler) DownloadPDF(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	pdfBytes, err := h.reportCardService.RenderPDF(id, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="report-card-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
