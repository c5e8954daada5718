package services

import (
	"time"

	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/models"
	"homeschool/internal/pagination"
	"homeschool/internal/repositories"
)

type StudentService struct {
	studentRepo *repositories.StudentRepository
}

func NewStudentService(studentRepo *repositories.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

type StudentInput struct {
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	GradeLevel  *string
	Notes       *string
}

func (in StudentInput) validate() error {
	details := map[string]string{}
	if in.FirstName == "" {
		details["first_name"] = "this field is required"
	}
	if in.LastName == "" {
		details["last_name"] = "this field is required"
	}
	if in.GradeLevel != nil && !models.ValidGradeLevel(*in.GradeLevel) {
		details["grade_level"] = "must be one of: K 1 2 3 4 5 6 7 8 9 10 11 12"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid student", details)
	}
	return nil
}

func (s *StudentService) Create(teacherID uuid.UUID, input StudentInput) (*models.Student, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	student := &models.Student{
		TeacherID:   teacherID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
		GradeLevel:  input.GradeLevel,
		Notes:       input.Notes,
		IsActive:    true,
	}
	if err := s.studentRepo.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) Get(id, teacherID uuid.UUID) (*models.Student, error) {
	student, err := s.studentRepo.GetByIDAndTeacherID(id, teacherID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NotFound("student")
	}
	return student, nil
}

func (s *StudentService) List(teacherID uuid.UUID, search, sort string, active *bool, page pagination.Params) ([]models.Student, int, error) {
	return s.studentRepo.List(teacherID, repositories.StudentFilter{
		Search: search,
		Active: active,
		Sort:   sort,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
}

func (s *StudentService) Update(id, teacherID uuid.UUID, input StudentInput) (*models.Student, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	student, err := s.Get(id, teacherID)
	if err != nil {
		return nil, err
	}

	student.FirstName = input.FirstName
	student.LastName = input.LastName
	student.DateOfBirth = input.DateOfBirth
	student.GradeLevel = input.GradeLevel
	student.Notes = input.Notes
	student.Prepare()

	if err := s.studentRepo.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete soft-deletes by default; permanent removes the row and all
// dependent records via cascade.
func (s *StudentService) Delete(id, teacherID uuid.UUID, permanent bool) error {
	var ok bool
	var err error
	if permanent {
		ok, err = s.studentRepo.Delete(id, teacherID)
	} else {
		ok, err = s.studentRepo.SoftDelete(id, teacherID)
	}
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("student")
	}
	return nil
}
