package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/models"
	"homeschool/internal/pagination"
	"homeschool/internal/repositories"
	"homeschool/internal/storage"
)

type ExpenseService struct {
	expenseRepo  *repositories.ExpenseRepository
	categoryRepo *repositories.ExpenseCategoryRepository
	studentRepo  *repositories.StudentRepository
	subjectRepo  *repositories.SubjectRepository
	store        storage.Store
}

func NewExpenseService(
	expenseRepo *repositories.ExpenseRepository,
	categoryRepo *repositories.ExpenseCategoryRepository,
	studentRepo *repositories.StudentRepository,
	subjectRepo *repositories.SubjectRepository,
	store storage.Store,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		studentRepo:  studentRepo,
		subjectRepo:  subjectRepo,
		store:        store,
	}
}

type ExpenseInput struct {
	AmountCents int64
	Currency    string
	IncurredOn  time.Time
	Description string
	StudentID   *uuid.UUID
	SubjectID   *uuid.UUID
	CategoryID  *uuid.UUID
}

func (in *ExpenseInput) validate() error {
	details := map[string]string{}
	if in.AmountCents <= 0 {
		details["amount_cents"] = "must be a positive amount in minor units"
	}
	if in.Description == "" {
		details["description"] = "this field is required"
	}
	if in.IncurredOn.IsZero() {
		details["incurred_on"] = "this field is required"
	}
	if len(details) > 0 {
		return apperrors.Validation("invalid expense", details)
	}
	return nil
}

func (s *ExpenseService) checkRefs(teacherID uuid.UUID, input *ExpenseInput) error {
	if input.StudentID != nil {
		student, err := s.studentRepo.GetByIDAndTeacherID(*input.StudentID, teacherID)
		if err != nil {
			return err
		}
		if student == nil {
			return apperrors.NotFound("student")
		}
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
	if input.CategoryID != nil {
		cat, err := s.categoryRepo.GetByIDAndTeacherID(*input.CategoryID, teacherID)
		if err != nil {
			return err
		}
		if cat == nil {
			return apperrors.NotFound("expense category")
		}
	}
	return nil
}

func (s *ExpenseService) Create(teacherID uuid.UUID, input ExpenseInput) (*models.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.checkRefs(teacherID, &input); err != nil {
		return nil, err
	}

	e := &models.Expense{
		TeacherID:   teacherID,
		AmountCents: input.AmountCents,
		Currency:    input.Currency,
		IncurredOn:  input.IncurredOn,
		Description: input.Description,
		StudentID:   input.StudentID,
		SubjectID:   input.SubjectID,
		CategoryID:  input.CategoryID,
	}
	if err := s.expenseRepo.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Get(id, teacherID uuid.UUID) (*models.Expense, error) {
	e, err := s.expenseRepo.GetByIDAndTeacherID(id, teacherID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apperrors.NotFound("expense")
	}
	return e, nil
}

type ExpenseListOptions struct {
	From       *time.Time
	To         *time.Time
	StudentID  *uuid.UUID
	SubjectID  *uuid.UUID
	CategoryID *uuid.UUID
	Page       pagination.Params
}

func (opts ExpenseListOptions) filter() repositories.ExpenseFilter {
	return repositories.ExpenseFilter{
		From:       opts.From,
		To:         opts.To,
		StudentID:  opts.StudentID,
		SubjectID:  opts.SubjectID,
		CategoryID: opts.CategoryID,
		Limit:      opts.Page.Limit,
		Offset:     opts.Page.Offset(),
	}
}

func (s *ExpenseService) List(teacherID uuid.UUID, opts ExpenseListOptions) ([]models.Expense, int, error) {
	return s.expenseRepo.List(teacherID, opts.filter())
}

// Summarize buckets the teacher's expenses by category, subject,
// student, or month.
func (s *ExpenseService) Summarize(teacherID uuid.UUID, groupBy string, opts ExpenseListOptions) ([]models.ExpenseSummaryRow, error) {
	if !models.ValidExpenseGrouping(groupBy) {
		return nil, apperrors.BadRequest(fmt.Sprintf("group_by must be one of: %v", models.ExpenseGroupings))
	}
	return s.expenseRepo.Summarize(teacherID, groupBy, opts.filter())
}

func (s *ExpenseService) Update(id, teacherID uuid.UUID, input ExpenseInput) (*models.Expense, error) {
	e, err := s.Get(id, teacherID)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.checkRefs(teacherID, &input); err != nil {
		return nil, err
	}

	e.AmountCents = input.AmountCents
	if input.Currency != "" {
		e.Currency = input.Currency
	}
	e.IncurredOn = input.IncurredOn
	e.Description = input.Description
	e.StudentID = input.StudentID
	e.SubjectID = input.SubjectID
	e.CategoryID = input.CategoryID

	if err := s.expenseRepo.Update(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Delete(id, teacherID uuid.UUID) error {
	ok, err := s.expenseRepo.Delete(id, teacherID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("expense")
	}
	return nil
}

// SetReceipt uploads a receipt image or PDF and records its URL on the
// expense.
func (s *ExpenseService) SetReceipt(ctx context.Context, id, teacherID uuid.UUID, fileName string, r io.Reader) (*models.Expense, error) {
	e, err := s.Get(id, teacherID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("receipts/%s/%s%s", id, uuid.NewString(), path.Ext(fileName))
	url, err := s.store.Upload(ctx, key, r)
	if err != nil {
		return nil, err
	}

	e.ReceiptURL = &url
	if err := s.expenseRepo.Update(e); err != nil {
		return nil, err
	}
	return e, nil
}

// --- categories ---

func (s *ExpenseService) CreateCategory(teacherID uuid.UUID, name string) (*models.ExpenseCategory, error) {
	if name == "" {
		return nil, apperrors.Validation("invalid expense category", map[string]string{"name": "this field is required"})
	}
	ec := &models.ExpenseCategory{TeacherID: teacherID, Name: name}
	if err := s.categoryRepo.Create(ec); err != nil {
		return nil, err
	}
	return ec, nil
}

func (s *ExpenseService) ListCategories(teacherID uuid.UUID) ([]models.ExpenseCategory, error) {
	return s.categoryRepo.List(teacherID)
}

func (s *ExpenseService) UpdateCategory(id, teacherID uuid.UUID, name string) (*models.ExpenseCategory, error) {
	ec, err := s.categoryRepo.GetByIDAndTeacherID(id, teacherID)
	if err != nil {
		return nil, err
	}
	if ec == nil {
		return nil, apperrors.NotFound("expense category")
	}
	if name != "" {
		ec.Name = name
	}
	if err := s.categoryRepo.Update(ec); err != nil {
		return nil, err
	}
	return ec, nil
}

func (s *ExpenseService) DeleteCategory(id, teacherID uuid.UUID) error {
	ok, err := s.categoryRepo.Delete(id, teacherID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("expense category")
	}
	return nil
}
