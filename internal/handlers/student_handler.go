package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"homeschool/internal/pagination"
	"homeschool/internal/responses"
	"homeschool/internal/services"
)

type StudentHandler struct {
	studentService *services.StudentService
}

func NewStudentHandler(studentService *services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

type studentRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	DateOfBirth *string `json:"date_of_birth"`
	GradeLevel  *string `json:"grade_level"`
	Notes       *string `json:"notes"`
}

func (r *studentRequest) toInput(c *gin.Context) (services.StudentInput, bool) {
	input := services.StudentInput{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		GradeLevel: r.GradeLevel,
		Notes:      r.Notes,
	}
	if r.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *r.DateOfBirth)
		if err != nil {
			responses.Fail(c, invalidDateErr("date_of_birth"))
			return input, false
		}
		input.DateOfBirth = &dob
	}
	return input, true
}

func (h *StudentHandler) Create(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	student, err := h.studentService.Create(teacherID, input)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, student)
}

func (h *StudentHandler) Get(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	student, err := h.studentService.Get(id, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, student)
}

func (h *StudentHandler) List(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	active, ok := queryBool(c, "active")
	if !ok {
		return
	}
	page := pagination.Parse(c)

	students, total, err := h.studentService.List(teacherID, c.Query("search"), c.Query("sort"), active, page)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.SuccessWithMeta(c, http.StatusOK, students, responses.NewMeta(page.Page, page.Limit, total))
}

func (h *StudentHandler) Update(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	student, err := h.studentService.Update(id, teacherID, input)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, student)
}

func (h *StudentHandler) Delete(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	permanent := c.Query("permanent") == "true"
	if err := h.studentService.Delete(id, teacherID, permanent); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}
