package models

import (
	"time"

	"github.com/google/uuid"
)

type ExpenseCategory struct {
	ID        uuid.UUID `json:"id"`
	TeacherID uuid.UUID `json:"teacher_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (ec *ExpenseCategory) Prepare() {
	if ec.ID == uuid.Nil {
		ec.ID = uuid.New()
	}
}

// Expense amounts are stored in minor units (cents) to avoid float
// rounding in summaries.
type Expense struct {
	ID          uuid.UUID  `json:"id"`
	TeacherID   uuid.UUID  `json:"teacher_id"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency"`
	IncurredOn  time.Time  `json:"incurred_on"`
	Description string     `json:"description"`
	StudentID   *uuid.UUID `json:"student_id,omitempty"`
	SubjectID   *uuid.UUID `json:"subject_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	ReceiptURL  *string    `json:"receipt_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (e *Expense) Prepare() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Currency == "" {
		e.Currency = "USD"
	}
}

// ExpenseSummaryRow is one bucket of GET /expenses/summary.
type ExpenseSummaryRow struct {
	GroupKey   string `json:"group_key"`
	GroupLabel string `json:"group_label"`
	TotalCents int64  `json:"total_cents"`
	Count      int    `json:"count"`
}

var ExpenseGroupings = []string{"category", "subject", "student", "month"}

func ValidExpenseGrouping(g string) bool {
	for _, v := range ExpenseGroupings {
		if v == g {
			return true
		}
	}
	return false
}
