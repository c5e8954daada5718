package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeschool/internal/responses"
	"homeschool/internal/services"
)

type TeacherHandler struct {
	teacherService *services.TeacherService
}

func NewTeacherHandler(teacherService *services.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService}
}

func (h *TeacherHandler) Me(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	user, err := h.teacherService.Get(id)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, user)
}

type updateTeacherRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (h *TeacherHandler) UpdateMe(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req updateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	user, err := h.teacherService.Update(id, services.UpdateTeacherInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, user)
}

func (h *TeacherHandler) UploadProfileImage(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	fh, ok := formFile(c, "file", maxImageBytes, imageContentTypes)
	if !ok {
		return
	}
	f, err := fh.Open()
	if err != nil {
		responses.Fail(c, err)
		return
	}
	defer f.Close()

	user, err := h.teacherService.SetProfileImage(c.Request.Context(), id, fh.Filename, f)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, user)
}
