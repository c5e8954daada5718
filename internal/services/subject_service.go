package services

import (
	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/models"
	"homeschool/internal/repositories"
)

type SubjectService struct {
	subjectRepo *repositories.SubjectRepository
}

func NewSubjectService(subjectRepo *repositories.SubjectRepository) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo}
}

type SubjectInput struct {
	Name  string
	Color string
}

func (s *SubjectService) Create(teacherID uuid.UUID, input SubjectInput) (*models.Subject, error) {
	if input.Name == "" {
		return nil, apperrors.Validation("invalid subject", map[string]string{"name": "this field is required"})
	}
	subject := &models.Subject{
		TeacherID: teacherID,
		Name:      input.Name,
		Color:     input.Color,
		IsActive:  true,
	}
	if subject.Color == "" {
		subject.Color = "#9e9e9e"
	}
	if err := s.subjectRepo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) Get(id, teacherID uuid.UUID) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByIDAndTeacherID(id, teacherID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, apperrors.NotFound("subject")
	}
	return subject, nil
}

func (s *SubjectService) List(teacherID uuid.UUID, includeInactive bool) ([]models.Subject, error) {
	return s.subjectRepo.List(teacherID, includeInactive)
}

func (s *SubjectService) Update(id, teacherID uuid.UUID, input SubjectInput) (*models.Subject, error) {
	subject, err := s.Get(id, teacherID)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		subject.Name = input.Name
	}
	if input.Color != "" {
		subject.Color = input.Color
	}
	if err := s.subjectRepo.Update(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Delete deactivates the subject and detaches it from the records that
// reference it. Those records keep their other fields.
func (s *SubjectService) Delete(id, teacherID uuid.UUID) error {
	ok, err := s.subjectRepo.SoftDelete(id, teacherID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("subject")
	}
	return nil
}
