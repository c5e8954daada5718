package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/models"
	"homeschool/internal/repositories"
	"homeschool/internal/storage"
)

// AttachmentService uploads and tracks files owned by assignments,
// lesson plans, and expenses. Ownership of the parent resource is
// checked before touching storage.
type AttachmentService struct {
	attachmentRepo *repositories.AttachmentRepository
	assignmentRepo *repositories.AssignmentRepository
	lessonPlanRepo *repositories.LessonPlanRepository
	expenseRepo    *repositories.ExpenseRepository
	store          storage.Store
}

func NewAttachmentService(
	attachmentRepo *repositories.AttachmentRepository,
	assignmentRepo *repositories.AssignmentRepository,
	lessonPlanRepo *repositories.LessonPlanRepository,
	expenseRepo *repositories.ExpenseRepository,
	store storage.Store,
) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		assignmentRepo: assignmentRepo,
		lessonPlanRepo: lessonPlanRepo,
		expenseRepo:    expenseRepo,
		store:          store,
	}
}

func (s *AttachmentService) ownerExists(ownerType models.AttachmentOwner, ownerID, teacherID uuid.UUID) error {
	switch ownerType {
	case models.AttachmentOwnerAssignment:
		a, err := s.assignmentRepo.GetByIDAndTeacherID(ownerID, teacherID)
		if err != nil {
			return err
		}
		if a == nil {
			return apperrors.NotFound("assignment")
		}
	case models.AttachmentOwnerLessonPlan:
		lp, err := s.lessonPlanRepo.GetByIDAndTeacherID(ownerID, teacherID)
		if err != nil {
			return err
		}
		if lp == nil {
			return apperrors.NotFound("lesson plan")
		}
	case models.AttachmentOwnerExpense:
		e, err := s.expenseRepo.GetByIDAndTeacherID(ownerID, teacherID)
		if err != nil {
			return err
		}
		if e == nil {
			return apperrors.NotFound("expense")
		}
	default:
		return apperrors.BadRequest("unknown attachment owner type")
	}
	return nil
}

type UploadInput struct {
	OwnerType   models.AttachmentOwner
	OwnerID     uuid.UUID
	FileName    string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

func (s *AttachmentService) Upload(ctx context.Context, teacherID uuid.UUID, input UploadInput) (*models.Attachment, error) {
	if err := s.ownerExists(input.OwnerType, input.OwnerID, teacherID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%ss/%s/%s%s", input.OwnerType, input.OwnerID, uuid.NewString(), path.Ext(input.FileName))
	url, err := s.store.Upload(ctx, key, input.Body)
	if err != nil {
		return nil, err
	}

	a := &models.Attachment{
		TeacherID:   teacherID,
		OwnerType:   input.OwnerType,
		OwnerID:     input.OwnerID,
		FileName:    input.FileName,
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
		StorageKey:  key,
		URL:         url,
	}
	if err := s.attachmentRepo.Create(a); err != nil {
		// Best effort: don't leave an orphaned object behind.
		_ = s.store.Delete(ctx, key)
		return nil, err
	}
	return a, nil
}

func (s *AttachmentService) ListByOwner(ownerType models.AttachmentOwner, ownerID, teacherID uuid.UUID) ([]models.Attachment, error) {
	if err := s.ownerExists(ownerType, ownerID, teacherID); err != nil {
		return nil, err
	}
	return s.attachmentRepo.ListByOwner(ownerType, ownerID)
}

func (s *AttachmentService) Delete(ctx context.Context, id, teacherID uuid.UUID) error {
	a, err := s.attachmentRepo.GetByIDAndTeacherID(id, teacherID)
	if err != nil {
		return err
	}
	if a == nil {
		return apperrors.NotFound("attachment")
	}
	if ok, err := s.attachmentRepo.Delete(id, teacherID); err != nil {
		return err
	} else if !ok {
		return apperrors.NotFound("attachment")
	}
	_ = s.store.Delete(ctx, a.StorageKey)
	return nil
}
