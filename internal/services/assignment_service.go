package services

import (
	"time"

	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/models"
	"homeschool/internal/pagination"
	"homeschool/internal/repositories"
)

type AssignmentService struct {
	assignmentRepo *repositories.AssignmentRepository
	studentRepo    *repositories.StudentRepository
	subjectRepo    *repositories.SubjectRepository
}

func NewAssignmentService(
	assignmentRepo *repositories.AssignmentRepository,
	studentRepo *repositories.StudentRepository,
	subjectRepo *repositories.SubjectRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		studentRepo:    studentRepo,
		subjectRepo:    subjectRepo,
	}
}

type AssignmentInput struct {
	StudentID   uuid.UUID
	SubjectID   *uuid.UUID
	Title       string
	Description *string
	DueDate     *time.Time
	Status      string
	Score       *float64
	Grade       *string
}

func (in *AssignmentInput) validate() error {
	details := map[string]string{}
	if in.Title == "" {
		details["title"] = "this field is required"
	}
	if in.StudentID == uuid.Nil {
		details["student_id"] = "this field is required"
	}
	if in.Status != "" && !models.ValidAssignmentStatus(in.Status) {
		details["status"] = "must be one of: assigned in_progress submitted graded"
	}
	if in.Score != nil && (*in.Score < 0 || *in.Score > 100) {
		details["score"] = "must be between 0 and 100"
	}
	if in.Grade != nil && !models.ValidLetterGrade(*in.Grade) {
		details["grade"] = "not a recognized letter grade"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid assignment", details)
	}
	return nil
}

func (s *AssignmentService) checkRefs(teacherID uuid.UUID, input *AssignmentInput) error {
	student, err := s.studentRepo.GetByIDAndTeacherID(input.StudentID, teacherID)
	if err != nil {
		return err
	}
	if student == nil {
		return apperrors.NotFound("student")
	}
	if input.SubjectID != nil {
		subject, err := s.subjectRepo.GetByIDAndTeacherID(*input.SubjectID, teacherID)
		if err != nil {
			return err
		}
		if subject == nil {
			return apperrors.NotFound("subject")
		}
	}
	return nil
}

func (s *AssignmentService) Create(teacherID uuid.UUID, input AssignmentInput) (*models.Assignment, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.checkRefs(teacherID, &input); err != nil {
		return nil, err
	}

	a := &models.Assignment{
		TeacherID:   teacherID,
		StudentID:   input.StudentID,
		SubjectID:   input.SubjectID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      models.AssignmentStatus(input.Status),
		Score:       input.Score,
		Grade:       input.Grade,
	}
	if err := s.assignmentRepo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssignmentService) Get(id, teacherID uuid.UUID) (*models.Assignment, error) {
	a, err := s.assignmentRepo.GetByIDAndTeacherID(id, teacherID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperrors.NotFound("assignment")
	}
	return a, nil
}

type AssignmentListOptions struct {
	StudentID *uuid.UUID
	SubjectID *uuid.UUID
	Status    string
	DueFrom   *time.Time
	DueTo     *time.Time
	Page      pagination.Params
}

func (s *AssignmentService) List(teacherID uuid.UUID, opts AssignmentListOptions) ([]models.Assignment, int, error) {
	if opts.Status != "" && !models.ValidAssignmentStatus(opts.Status) {
		return nil, 0, apperrors.BadRequest("unknown status filter")
	}
	return s.assignmentRepo.List(teacherID, repositories.AssignmentFilter{
		StudentID: opts.StudentID,
		SubjectID: opts.SubjectID,
		Status:    opts.Status,
		DueFrom:   opts.DueFrom,
		DueTo:     opts.DueTo,
		Limit:     opts.Page.Limit,
		Offset:    opts.Page.Offset(),
	})
}

func (s *AssignmentService) Update(id, teacherID uuid.UUID, input AssignmentInput) (*models.Assignment, error) {
	a, err := s.Get(id, teacherID)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.checkRefs(teacherID, &input); err != nil {
		return nil, err
	}

	a.StudentID = input.StudentID
	a.SubjectID = input.SubjectID
	a.Title = input.Title
	a.Description = input.Description
	a.DueDate = input.DueDate
	if input.Status != "" {
		a.Status = models.AssignmentStatus(input.Status)
	}
	a.Score = input.Score
	a.Grade = input.Grade

	if err := s.assignmentRepo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssignmentService) Delete(id, teacherID uuid.UUID) error {
	ok, err := s.assignmentRepo.Delete(id, teacherID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("assignment")
	}
	return nil
}
