package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homeschool/internal/models"
)

type ExpenseCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseCategoryRepository(pool *pgxpool.Pool) *ExpenseCategoryRepository {
	return &ExpenseCategoryRepository{pool: pool}
}

func (r *ExpenseCategoryRepository) Create(ec *models.ExpenseCategory) error {
	ctx := context.Background()

	ec.Prepare()

	query := `INSERT INTO expense_categories (id, teacher_id, name, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, ec.ID, ec.TeacherID, ec.Name, time.Now())
	return err
}

func (r *ExpenseCategoryRepository) GetByIDAndTeacherID(id, teacherID uuid.UUID) (*models.ExpenseCategory, error) {
	ctx := context.Background()

	query := `SELECT id, teacher_id, name, created_at FROM expense_categories WHERE id = $1 AND teacher_id = $2`

	var ec models.ExpenseCategory
	err := r.pool.QueryRow(ctx, query, id, teacherID).Scan(&ec.ID, &ec.TeacherID, &ec.Name, &ec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ec, nil
}

func (r *ExpenseCategoryRepository) List(teacherID uuid.UUID) ([]models.ExpenseCategory, error) {
	ctx := context.Background()

	query := `SELECT id, teacher_id, name, created_at FROM expense_categories WHERE teacher_id = $1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.ExpenseCategory
	for rows.Next() {
		var ec models.ExpenseCategory
		if err := rows.Scan(&ec.ID, &ec.TeacherID, &ec.Name, &ec.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, ec)
	}
	return categories, rows.Err()
}

func (r *ExpenseCategoryRepository) Update(ec *models.ExpenseCategory) error {
	ctx := context.Background()

	query := `UPDATE expense_categories SET name = $3 WHERE id = $1 AND teacher_id = $2`
	_, err := r.pool.Exec(ctx, query, ec.ID, ec.TeacherID, ec.Name)
	return err
}

func (r *ExpenseCategoryRepository) Delete(id, teacherID uuid.UUID) (bool, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM expense_categories WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
