package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homeschool/internal/models"
	"homeschool/internal/pagination"
	"homeschool/internal/responses"
	"homeschool/internal/services"
)

type LessonPlanHandler struct {
	lessonPlanService *services.LessonPlanService
	attachmentService *services.AttachmentService
}

func NewLessonPlanHandler(
	lessonPlanService *services.LessonPlanService,
	attachmentService *services.AttachmentService,
) *LessonPlanHandler {
	return &LessonPlanHandler{
		lessonPlanService: lessonPlanService,
		attachmentService: attachmentService,
	}
}

type lessonPlanRequest struct {
	Title      string     `json:"title" binding:"required"`
	SubjectID  *uuid.UUID `json:"subject_id"`
	GradeLevel *string    `json:"grade_level"`
	Content    string     `json:"content"`
	IsPublic   bool       `json:"is_public"`
}

func (r *lessonPlanRequest) toInput() services.LessonPlanInput {
	return services.LessonPlanInput{
		Title:      r.Title,
		SubjectID:  r.SubjectID,
		GradeLevel: r.GradeLevel,
		Content:    r.Content,
		IsPublic:   r.IsPublic,
	}
}

func (h *LessonPlanHandler) Create(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	var req lessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	lp, err := h.lessonPlanService.Create(teacherID, req.toInput())
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, lp)
}

func (h *LessonPlanHandler) Get(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	lp, err := h.lessonPlanService.Get(id, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, lp)
}

func listOptions(c *gin.Context) (services.LessonPlanListOptions, bool) {
	subjectID, ok := queryUUID(c, "subject_id")
	if !ok {
		return services.LessonPlanListOptions{}, false
	}
	return services.LessonPlanListOptions{
		Search:     c.Query("search"),
		SubjectID:  subjectID,
		GradeLevel: c.Query("grade_level"),
		Page:       pagination.Parse(c),
	}, true
}

func (h *LessonPlanHandler) List(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	opts, ok := listOptions(c)
	if !ok {
		return
	}

	items, total, err := h.lessonPlanService.List(teacherID, opts)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.SuccessWithMeta(c, http.StatusOK, items, responses.NewMeta(opts.Page.Page, opts.Page.Limit, total))
}

// ListPublic is unauthenticated: it searches the shared library of
// published plans.
func (h *LessonPlanHandler) ListPublic(c *gin.Context) {
	opts, ok := listOptions(c)
	if !ok {
		return
	}

	items, total, err := h.lessonPlanService.ListPublic(opts)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.SuccessWithMeta(c, http.StatusOK, items, responses.NewMeta(opts.Page.Page, opts.Page.Limit, total))
}

func (h *LessonPlanHandler) GetPublic(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	lp, err := h.lessonPlanService.GetPublic(id)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, lp)
}

func (h *LessonPlanHandler) GetShared(c *gin.Context) {
	lp, err := h.lessonPlanService.GetShared(c.Param("token"))
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, lp)
}

func (h *LessonPlanHandler) Update(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req lessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	lp, err := h.lessonPlanService.Update(id, teacherID, req.toInput())
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, lp)
}

func (h *LessonPlanHandler) Delete(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.lessonPlanService.Delete(id, teacherID); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}

func (h *LessonPlanHandler) Share(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	lp, err := h.lessonPlanService.Share(id, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, lp)
}

func (h *LessonPlanHandler) Unshare(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	lp, err := h.lessonPlanService.Unshare(id, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, lp)
}

type copyRequest struct {
	ShareToken string `json:"share_token"`
}

func (h *LessonPlanHandler) Copy(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req copyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.FailBinding(c, err)
			return
		}
	}

	lp, err := h.lessonPlanService.Copy(id, teacherID, req.ShareToken)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, lp)
}

func (h *LessonPlanHandler) UploadAttachment(c *gin.Context) {
	uploadAttachment(c, h.attachmentService, models.AttachmentOwnerLessonPlan)
}

func (h *LessonPlanHandler) ListAttachments(c *gin.Context) {
	listAttachments(c, h.attachmentService, models.AttachmentOwnerLessonPlan)
}
