package services

import (
	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/models"
	"homeschool/internal/pagination"
	"homeschool/internal/repositories"
	"homeschool/internal/utils"
)

type LessonPlanService struct {
	lessonPlanRepo *repositories.LessonPlanRepository
	subjectRepo    *repositories.SubjectRepository
}

func NewLessonPlanService(
	lessonPlanRepo *repositories.LessonPlanRepository,
	subjectRepo *repositories.SubjectRepository,
) *LessonPlanService {
	return &LessonPlanService{lessonPlanRepo: lessonPlanRepo, subjectRepo: subjectRepo}
}

type LessonPlanInput struct {
	Title      string
	SubjectID  *uuid.UUID
	GradeLevel *string
	Content    string
	IsPublic   bool
}

func (in *LessonPlanInput) validate() error {
	details := map[string]string{}
	if in.Title == "" {
		details["title"] = "this field is required"
	}
	if in.GradeLevel != nil && !models.ValidGradeLevel(*in.GradeLevel) {
		details["grade_level"] = "not a recognized grade level"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid lesson plan", details)
	}
	return nil
}

func (s *LessonPlanService) checkSubject(teacherID uuid.UUID, subjectID *uuid.UUID) error {
	if subjectID == nil {
		return nil
	}
	subject, err := s.subjectRepo.GetByIDAndTeacherID(*subjectID, teacherID)
	if err != nil {
		return err
	}
	if subject == nil {
		return apperrors.NotFound("subject")
	}
	return nil
}

func (s *LessonPlanService) Create(teacherID uuid.UUID, input LessonPlanInput) (*models.LessonPlan, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.checkSubject(teacherID, input.SubjectID); err != nil {
		return nil, err
	}

	lp := &models.LessonPlan{
		TeacherID:  teacherID,
		Title:      input.Title,
		SubjectID:  input.SubjectID,
		GradeLevel: input.GradeLevel,
		Content:    input.Content,
		IsPublic:   input.IsPublic,
	}
	if err := s.lessonPlanRepo.Create(lp); err != nil {
		return nil, err
	}
	return lp, nil
}

func (s *LessonPlanService) Get(id, teacherID uuid.UUID) (*models.LessonPlan, error) {
	lp, err := s.lessonPlanRepo.GetByIDAndTeacherID(id, teacherID)
	if err != nil {
		return nil, err
	}
	if lp == nil {
		return nil, apperrors.NotFound("lesson plan")
	}
	return lp, nil
}

type LessonPlanListOptions struct {
	Search     string
	SubjectID  *uuid.UUID
	GradeLevel string
	Page       pagination.Params
}

func (opts LessonPlanListOptions) filter() repositories.LessonPlanFilter {
	return repositories.LessonPlanFilter{
		Search:     opts.Search,
		SubjectID:  opts.SubjectID,
		GradeLevel: opts.GradeLevel,
		Limit:      opts.Page.Limit,
		Offset:     opts.Page.Offset(),
	}
}

func (s *LessonPlanService) List(teacherID uuid.UUID, opts LessonPlanListOptions) ([]models.LessonPlan, int, error) {
	return s.lessonPlanRepo.List(teacherID, opts.filter())
}

// ListPublic searches the community library. No authentication scoping:
// every published plan is visible.
func (s *LessonPlanService) ListPublic(opts LessonPlanListOptions) ([]models.LessonPlan, int, error) {
	return s.lessonPlanRepo.ListPublic(opts.filter())
}

func (s *LessonPlanService) GetPublic(id uuid.UUID) (*models.LessonPlan, error) {
	lp, err := s.lessonPlanRepo.GetPublicByID(id)
	if err != nil {
		return nil, err
	}
	if lp == nil {
		return nil, apperrors.NotFound("lesson plan")
	}
	return lp, nil
}

// GetShared resolves an unlisted share link.
func (s *LessonPlanService) GetShared(token string) (*models.LessonPlan, error) {
	if token == "" {
		return nil, apperrors.NotFound("lesson plan")
	}
	lp, err := s.lessonPlanRepo.GetByShareToken(token)
	if err != nil {
		return nil, err
	}
	if lp == nil {
		return nil, apperrors.NotFound("lesson plan")
	}
	return lp, nil
}

func (s *LessonPlanService) Update(id, teacherID uuid.UUID, input LessonPlanInput) (*models.LessonPlan, error) {
	lp, err := s.Get(id, teacherID)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.checkSubject(teacherID, input.SubjectID); err != nil {
		return nil, err
	}

	lp.Title = input.Title
	lp.SubjectID = input.SubjectID
	lp.GradeLevel = input.GradeLevel
	lp.Content = input.Content
	lp.IsPublic = input.IsPublic

	if err := s.lessonPlanRepo.Update(lp); err != nil {
		return nil, err
	}
	return lp, nil
}

func (s *LessonPlanService) Delete(id, teacherID uuid.UUID) error {
	ok, err := s.lessonPlanRepo.Delete(id, teacherID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("lesson plan")
	}
	return nil
}

// Share mints (or returns the existing) unlisted share token for the
// plan.
func (s *LessonPlanService) Share(id, teacherID uuid.UUID) (*models.LessonPlan, error) {
	lp, err := s.Get(id, teacherID)
	if err != nil {
		return nil, err
	}
	if lp.ShareToken != nil {
		return lp, nil
	}

	token, err := utils.RandomToken()
	if err != nil {
		return nil, err
	}
	lp.ShareToken = &token
	if err := s.lessonPlanRepo.Update(lp); err != nil {
		return nil, err
	}
	return lp, nil
}

// Unshare revokes the share link.
func (s *LessonPlanService) Unshare(id, teacherID uuid.UUID) (*models.LessonPlan, error) {
	lp, err := s.Get(id, teacherID)
	if err != nil {
		return nil, err
	}
	lp.ShareToken = nil
	if err := s.lessonPlanRepo.Update(lp); err != nil {
		return nil, err
	}
	return lp, nil
}

// Copy clones a public plan (or a plan shared by token) into the
// caller's own collection. The copy starts private, drops the source's
// subject link, and records provenance in copied_from_id.
func (s *LessonPlanService) Copy(sourceID, teacherID uuid.UUID, shareToken string) (*models.LessonPlan, error) {
	source, err := s.lessonPlanRepo.GetPublicByID(sourceID)
	if err != nil {
		return nil, err
	}
	if source == nil && shareToken != "" {
		source, err = s.lessonPlanRepo.GetByShareToken(shareToken)
		if err != nil {
			return nil, err
		}
		if source != nil && source.ID != sourceID {
			source = nil
		}
	}
	if source == nil {
		// The owner can always copy their own plan.
		source, err = s.lessonPlanRepo.GetByIDAndTeacherID(sourceID, teacherID)
		if err != nil {
			return nil, err
		}
	}
	if source == nil {
		return nil, apperrors.NotFound("lesson plan")
	}

	copied := &models.LessonPlan{
		TeacherID:    teacherID,
		Title:        source.Title,
		GradeLevel:   source.GradeLevel,
		Content:      source.Content,
		IsPublic:     false,
		CopiedFromID: &source.ID,
	}
	if err := s.lessonPlanRepo.Create(copied); err != nil {
		return nil, err
	}
	return copied, nil
}
