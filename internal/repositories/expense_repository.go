package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homeschool/internal/models"
)

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

type ExpenseFilter struct {
	From       *time.Time
	To         *time.Time
	StudentID  *uuid.UUID
	SubjectID  *uuid.UUID
	CategoryID *uuid.UUID
	Limit      int
	Offset     int
}

const expenseColumns = `id, teacher_id, amount_cents, currency, incurred_on, description,
	student_id, subject_id, category_id, receipt_url, created_at, updated_at`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var e models.Expense
	err := row.Scan(
		&e.ID,
		&e.TeacherID,
		&e.AmountCents,
		&e.Currency,
		&e.IncurredOn,
		&e.Description,
		&e.StudentID,
		&e.SubjectID,
		&e.CategoryID,
		&e.ReceiptURL,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) Create(e *models.Expense) error {
	ctx := context.Background()

	e.Prepare()

	query := `
		INSERT INTO expenses (id, teacher_id, amount_cents, currency, incurred_on, description,
			student_id, subject_id, category_id, receipt_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.TeacherID, e.AmountCents, e.Currency, e.IncurredOn, e.Description,
		e.StudentID, e.SubjectID, e.CategoryID, e.ReceiptURL, time.Now(),
	)
	return err
}

func (r *ExpenseRepository) GetByIDAndTeacherID(id, teacherID uuid.UUID) (*models.Expense, error) {
	ctx := context.Background()

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND teacher_id = $2`
	return scanExpense(r.pool.QueryRow(ctx, query, id, teacherID))
}

// expenseWhere builds the shared filter clause; alias is the table
// alias prefix ("" for plain queries, "e." when the summary joins).
func expenseWhere(alias string, teacherID uuid.UUID, filter ExpenseFilter) (string, []any) {
	where := `WHERE ` + alias + `teacher_id = $1`
	args := []any{teacherID}

	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(` AND %sincurred_on >= $%d`, alias, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(` AND %sincurred_on <= $%d`, alias, len(args))
	}
	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		where += fmt.Sprintf(` AND %sstudent_id = $%d`, alias, len(args))
	}
	if filter.SubjectID != nil {
		args = append(args, *filter.SubjectID)
		where += fmt.Sprintf(` AND %ssubject_id = $%d`, alias, len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(` AND %scategory_id = $%d`, alias, len(args))
	}
	return where, args
}

func (r *ExpenseRepository) List(teacherID uuid.UUID, filter ExpenseFilter) ([]models.Expense, int, error) {
	ctx := context.Background()

	where, args := expenseWhere("", teacherID, filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM expenses `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM expenses %s ORDER BY incurred_on DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		expenseColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, total, rows.Err()
}

// Summarize groups matching expenses by category, subject, student or
// calendar month and totals each bucket. Rows with a NULL group land in
// an "uncategorized" bucket.
func (r *ExpenseRepository) Summarize(teacherID uuid.UUID, groupBy string, filter ExpenseFilter) ([]models.ExpenseSummaryRow, error) {
	ctx := context.Background()

	where, args := expenseWhere("e.", teacherID, filter)

	var keyExpr, labelExpr, join string
	switch groupBy {
	case "category":
		keyExpr = `coalesce(e.category_id::text, '')`
		labelExpr = `coalesce(c.name, 'Uncategorized')`
		join = `LEFT JOIN expense_categories c ON c.id = e.category_id`
	case "subject":
		keyExpr = `coalesce(e.subject_id::text, '')`
		labelExpr = `coalesce(s.name, 'No subject')`
		join = `LEFT JOIN subjects s ON s.id = e.subject_id`
	case "student":
		keyExpr = `coalesce(e.student_id::text, '')`
		labelExpr = `coalesce(st.first_name || ' ' || st.last_name, 'No student')`
		join = `LEFT JOIN students st ON st.id = e.student_id`
	case "month":
		keyExpr = `to_char(e.incurred_on, 'YYYY-MM')`
		labelExpr = `to_char(e.incurred_on, 'YYYY-MM')`
	default:
		return nil, fmt.Errorf("unsupported grouping %q", groupBy)
	}

	query := fmt.Sprintf(`
		SELECT %s AS group_key, %s AS group_label,
			coalesce(sum(e.amount_cents), 0) AS total_cents, count(*) AS n
		FROM expenses e %s
		%s
		GROUP BY 1, 2
		ORDER BY total_cents DESC
	`, keyExpr, labelExpr, join, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ExpenseSummaryRow
	for rows.Next() {
		var row models.ExpenseSummaryRow
		if err := rows.Scan(&row.GroupKey, &row.GroupLabel, &row.TotalCents, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *ExpenseRepository) Update(e *models.Expense) error {
	ctx := context.Background()

	query := `
		UPDATE expenses
		SET amount_cents = $3, currency = $4, incurred_on = $5, description = $6,
			student_id = $7, subject_id = $8, category_id = $9, receipt_url = $10, updated_at = $11
		WHERE id = $1 AND teacher_id = $2
	`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.TeacherID, e.AmountCents, e.Currency, e.IncurredOn, e.Description,
		e.StudentID, e.SubjectID, e.CategoryID, e.ReceiptURL, time.Now(),
	)
	return err
}

func (r *ExpenseRepository) Delete(id, teacherID uuid.UUID) (bool, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
