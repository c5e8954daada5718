package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeschool/internal/responses"
	"homeschool/internal/services"
)

type SubjectHandler struct {
	subjectService *services.SubjectService
}

func NewSubjectHandler(subjectService *services.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

type subjectRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

func (h *SubjectHandler) Create(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	subject, err := h.subjectService.Create(teacherID, services.SubjectInput{Name: req.Name, Color: req.Color})
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, subject)
}

func (h *SubjectHandler) Get(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	subject, err := h.subjectService.Get(id, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, subject)
}

func (h *SubjectHandler) List(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	includeInactive := c.Query("include_inactive") == "true"
	subjects, err := h.subjectService.List(teacherID, includeInactive)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, subjects)
}

func (h *SubjectHandler) Update(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	subject, err := h.subjectService.Update(id, teacherID, services.SubjectInput{Name: req.Name, Color: req.Color})
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, subject)
}

func (h *SubjectHandler) Delete(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.subjectService.Delete(id, teacherID); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}
