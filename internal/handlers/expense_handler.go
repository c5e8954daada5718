package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homeschool/internal/pagination"
	"homeschool/internal/responses"
	"homeschool/internal/services"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type expenseRequest struct {
	AmountCents int64      `json:"amount_cents" binding:"required"`
	Currency    string     `json:"currency"`
	IncurredOn  string     `json:"incurred_on" binding:"required"`
	Description string     `json:"description" binding:"required"`
	StudentID   *uuid.UUID `json:"student_id"`
	SubjectID   *uuid.UUID `json:"subject_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

func (r *expenseRequest) toInput(c *gin.Context) (services.ExpenseInput, bool) {
	incurred, err := time.Parse("2006-01-02", r.IncurredOn)
	if err != nil {
		responses.Fail(c, invalidDateErr("incurred_on"))
		return services.ExpenseInput{}, false
	}
	return services.ExpenseInput{
		AmountCents: r.AmountCents,
		Currency:    r.Currency,
		IncurredOn:  incurred,
		Description: r.Description,
		StudentID:   r.StudentID,
		SubjectID:   r.SubjectID,
		CategoryID:  r.CategoryID,
	}, true
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	e, err := h.expenseService.Create(teacherID, input)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, e)
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	e, err := h.expenseService.Get(id, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, e)
}

func (h *ExpenseHandler) listOptions(c *gin.Context) (services.ExpenseListOptions, bool) {
	var opts services.ExpenseListOptions
	var ok bool
	if opts.From, ok = queryTime(c, "from"); !ok {
		return opts, false
	}
	if opts.To, ok = queryTime(c, "to"); !ok {
		return opts, false
	}
	if opts.StudentID, ok = queryUUID(c, "student_id"); !ok {
		return opts, false
	}
	if opts.SubjectID, ok = queryUUID(c, "subject_id"); !ok {
		return opts, false
	}
	if opts.CategoryID, ok = queryUUID(c, "category_id"); !ok {
		return opts, false
	}
	opts.Page = pagination.Parse(c)
	return opts, true
}

func (h *ExpenseHandler) List(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	opts, ok := h.listOptions(c)
	if !ok {
		return
	}

	items, total, err := h.expenseService.List(teacherID, opts)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.SuccessWithMeta(c, http.StatusOK, items, responses.NewMeta(opts.Page.Page, opts.Page.Limit, total))
}

func (h *ExpenseHandler) Summary(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	opts, ok := h.listOptions(c)
	if !ok {
		return
	}

	groupBy := c.DefaultQuery("group_by", "category")
	rows, err := h.expenseService.Summarize(teacherID, groupBy, opts)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{
		"group_by": groupBy,
		"rows":     rows,
	})
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}
	input, ok := req.toInput(c)
	if !ok {
		return
	}

	e, err := h.expenseService.Update(id, teacherID, input)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, e)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.Delete(id, teacherID); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}

func (h *ExpenseHandler) UploadReceipt(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	fh, ok := formFile(c, "file", maxAttachmentBytes, attachmentContentTypes)
	if !ok {
		return
	}
	f, err := fh.Open()
	if err != nil {
		responses.Fail(c, err)
		return
	}
	defer f.Close()

	e, err := h.expenseService.SetReceipt(c.Request.Context(), id, teacherID, fh.Filename, f)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, e)
}

// --- categories ---

type expenseCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *ExpenseHandler) CreateCategory(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	var req expenseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	ec, err := h.expenseService.CreateCategory(teacherID, req.Name)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, ec)
}

func (h *ExpenseHandler) ListCategories(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}

	items, err := h.expenseService.ListCategories(teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, items)
}

func (h *ExpenseHandler) UpdateCategory(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req expenseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	ec, err := h.expenseService.UpdateCategory(id, teacherID, req.Name)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, ec)
}

func (h *ExpenseHandler) DeleteCategory(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteCategory(id, teacherID); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}
