package services

import (
	"time"

	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/models"
	"homeschool/internal/pagination"
	"homeschool/internal/pdf"
	"homeschool/internal/repositories"
)

type ReportCardService struct {
	reportCardRepo *repositories.ReportCardRepository
	studentRepo    *repositories.StudentRepository
	subjectRepo    *repositories.SubjectRepository
}

func NewReportCardService(
	reportCardRepo *repositories.ReportCardRepository,
	studentRepo *repositories.StudentRepository,
	subjectRepo *repositories.SubjectRepository,
) *ReportCardService {
	return &ReportCardService{
		reportCardRepo: reportCardRepo,
		studentRepo:    studentRepo,
		subjectRepo:    subjectRepo,
	}
}

type ReportCardInput struct {
	StudentID   uuid.UUID
	Term        string
	PeriodStart time.Time
	PeriodEnd   time.Time
	IsPublished bool
}

func (in *ReportCardInput) validate() error {
	details := map[string]string{}
	if in.Term == "" {
		details["term"] = "this field is required"
	}
	if in.StudentID == uuid.Nil {
		details["student_id"] = "this field is required"
	}
	if in.PeriodEnd.Before(in.PeriodStart) {
		details["period_end"] = "must not precede period_start"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid report card", details)
	}
	return nil
}

func (s *ReportCardService) Create(teacherID uuid.UUID, input ReportCardInput) (*models.ReportCard, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByIDAndTeacherID(input.StudentID, teacherID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NotFound("student")
	}

	rc := &models.ReportCard{
		TeacherID:   teacherID,
		StudentID:   input.StudentID,
		Term:        input.Term,
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
		IsPublished: input.IsPublished,
	}
	if err := s.reportCardRepo.Create(rc); err != nil {
		return nil, err
	}
	return rc, nil
}

func (s *ReportCardService) Get(id, teacherID uuid.UUID) (*models.ReportCard, error) {
	rc, err := s.reportCardRepo.GetByIDAndTeacherID(id, teacherID)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		return nil, apperrors.NotFound("report card")
	}
	return rc, nil
}

func (s *ReportCardService) List(teacherID uuid.UUID, studentID *uuid.UUID, page pagination.Params) ([]models.ReportCard, int, error) {
	return s.reportCardRepo.List(teacherID, studentID, page.Limit, page.Offset())
}

func (s *ReportCardService) Update(id, teacherID uuid.UUID, input ReportCardInput) (*models.ReportCard, error) {
	rc, err := s.Get(id, teacherID)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	rc.Term = input.Term
	rc.PeriodStart = input.PeriodStart
	rc.PeriodEnd = input.PeriodEnd
	rc.IsPublished = input.IsPublished

	if err := s.reportCardRepo.Update(rc); err != nil {
		return nil, err
	}
	return rc, nil
}

func (s *ReportCardService) Delete(id, teacherID uuid.UUID) error {
	ok, err := s.reportCardRepo.Delete(id, teacherID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("report card")
	}
	return nil
}

type ReportCardEntryInput struct {
	SubjectID   *uuid.UUID
	SubjectName string
	LetterGrade string
	Score       *float64
	Comments    *string
}

func (s *ReportCardService) AddEntry(cardID, teacherID uuid.UUID, input ReportCardEntryInput) (*models.ReportCard, error) {
	rc, err := s.Get(cardID, teacherID)
	if err != nil {
		return nil, err
	}

	details := map[string]string{}
	if input.SubjectName == "" && input.SubjectID == nil {
		details["subject_name"] = "subject_name or subject_id is required"
	}
	if !models.ValidLetterGrade(input.LetterGrade) {
		details["letter_grade"] = "not a recognized letter grade"
	}
	if input.Score != nil && (*input.Score < 0 || *input.Score > 100) {
		details["score"] = "must be between 0 and 100"
	}
	if len(details) > 0 {
		return nil, apperrors.Validation("invalid report card entry", details)
	}

	name := input.SubjectName
	if input.SubjectID != nil {
		subject, err := s.subjectRepo.GetByIDAndTeacherID(*input.SubjectID, teacherID)
		if err != nil {
			return nil, err
		}
		if subject == nil {
			return nil, apperrors.NotFound("subject")
		}
		if name == "" {
			name = subject.Name
		}
	}

	entry := &models.ReportCardEntry{
		ReportCardID: rc.ID,
		SubjectID:    input.SubjectID,
		SubjectName:  name,
		LetterGrade:  input.LetterGrade,
		Score:        input.Score,
		Comments:     input.Comments,
	}
	if err := s.reportCardRepo.AddEntry(entry); err != nil {
		return nil, err
	}
	rc.Entries = append(rc.Entries, *entry)
	return rc, nil
}

func (s *ReportCardService) DeleteEntry(cardID, entryID, teacherID uuid.UUID) error {
	if _, err := s.Get(cardID, teacherID); err != nil {
		return err
	}
	ok, err := s.reportCardRepo.DeleteEntry(entryID, cardID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("report card entry")
	}
	return nil
}

// RenderPDF produces the printable report card.
func (s *ReportCardService) RenderPDF(cardID, teacherID uuid.UUID) ([]byte, error) {
	rc, err := s.Get(cardID, teacherID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByIDAndTeacherID(rc.StudentID, teacherID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NotFound("student")
	}
	return pdf.RenderReportCard(rc, student)
}
