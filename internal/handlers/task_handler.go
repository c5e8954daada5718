package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"homeschool/internal/pagination"
	"homeschool/internal/responses"
	"homeschool/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type taskRequest struct {
	Title    string     `json:"title" binding:"required"`
	Notes    *string    `json:"notes"`
	DueDate  *time.Time `json:"due_date"`
	Priority string     `json:"priority"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	t, err := h.taskService.Create(teacherID, services.TaskInput{
		Title:    req.Title,
		Notes:    req.Notes,
		DueDate:  req.DueDate,
		Priority: req.Priority,
	})
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, t)
}

func (h *TaskHandler) Get(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	t, err := h.taskService.Get(id, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, t)
}

func (h *TaskHandler) List(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	completed, ok := queryBool(c, "completed")
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

	items, total, err := h.taskService.List(teacherID, services.TaskListOptions{
		Completed: completed,
		Priority:  c.Query("priority"),
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

func (h *TaskHandler) Update(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	t, err := h.taskService.Update(id, teacherID, services.TaskInput{
		Title:    req.Title,
		Notes:    req.Notes,
		DueDate:  req.DueDate,
		Priority: req.Priority,
	})
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, t)
}

type taskCompleteRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

func (h *TaskHandler) SetCompleted(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req taskCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	t, err := h.taskService.SetCompleted(id, teacherID, *req.Completed)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, t)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(id, teacherID); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}
