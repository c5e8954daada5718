package services

import (
	"time"

	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/models"
	"homeschool/internal/pagination"
	"homeschool/internal/repositories"
)

type TaskService struct {
	taskRepo *repositories.TaskRepository
}

func NewTaskService(taskRepo *repositories.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

type TaskInput struct {
	Title    string
	Notes    *string
	DueDate  *time.Time
	Priority string
}

func (in *TaskInput) validate() error {
	details := map[string]string{}
	if in.Title == "" {
		details["title"] = "this field is required"
	}
	if in.Priority != "" && !models.ValidTaskPriority(in.Priority) {
		details["priority"] = "must be one of: low medium high"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid task", details)
	}
	return nil
}

func (s *TaskService) Create(teacherID uuid.UUID, input TaskInput) (*models.Task, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	t := &models.Task{
		TeacherID: teacherID,
		Title:     input.Title,
		Notes:     input.Notes,
		DueDate:   input.DueDate,
		Priority:  models.TaskPriority(input.Priority),
	}
	if err := s.taskRepo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Get(id, teacherID uuid.UUID) (*models.Task, error) {
	t, err := s.taskRepo.GetByIDAndTeacherID(id, teacherID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.NotFound("task")
	}
	return t, nil
}

type TaskListOptions struct {
	Completed *bool
	Priority  string
	DueFrom   *time.Time
	DueTo     *time.Time
	Page      pagination.Params
}

func (s *TaskService) List(teacherID uuid.UUID, opts TaskListOptions) ([]models.Task, int, error) {
	if opts.Priority != "" && !models.ValidTaskPriority(opts.Priority) {
		return nil, 0, apperrors.BadRequest("unknown priority filter")
	}
	return s.taskRepo.List(teacherID, repositories.TaskFilter{
		Completed: opts.Completed,
		Priority:  opts.Priority,
		DueFrom:   opts.DueFrom,
		DueTo:     opts.DueTo,
		Limit:     opts.Page.Limit,
		Offset:    opts.Page.Offset(),
	})
}

func (s *TaskService) Update(id, teacherID uuid.UUID, input TaskInput) (*models.Task, error) {
	t, err := s.Get(id, teacherID)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	t.Title = input.Title
	t.Notes = input.Notes
	t.DueDate = input.DueDate
	if input.Priority != "" {
		t.Priority = models.TaskPriority(input.Priority)
	}

	if err := s.taskRepo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// SetCompleted marks or unmarks the task done. Completing an already
// completed task keeps the original timestamp.
func (s *TaskService) SetCompleted(id, teacherID uuid.UUID, completed bool) (*models.Task, error) {
	t, err := s.Get(id, teacherID)
	if err != nil {
		return nil, err
	}

	if completed && t.CompletedAt == nil {
		now := time.Now().UTC()
		t.CompletedAt = &now
	} else if !completed {
		t.CompletedAt = nil
	}

	if err := s.taskRepo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(id, teacherID uuid.UUID) error {
	ok, err := s.taskRepo.Delete(id, teacherID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("task")
	}
	return nil
}
