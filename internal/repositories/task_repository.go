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

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

type TaskFilter struct {
	Completed *bool
	Priority  string
	DueFrom   *time.Time
	DueTo     *time.Time
	Limit     int
	Offset    int
}

const taskColumns = `id, teacher_id, title, notes, due_date, priority, completed_at, created_at, updated_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID,
		&t.TeacherID,
		&t.Title,
		&t.Notes,
		&t.DueDate,
		&t.Priority,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Create(t *models.Task) error {
	ctx := context.Background()

	t.Prepare()

	query := `
		INSERT INTO tasks (id, teacher_id, title, notes, due_date, priority, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		t.ID, t.TeacherID, t.Title, t.Notes, t.DueDate, t.Priority, t.CompletedAt, time.Now(),
	)
	return err
}

func (r *TaskRepository) GetByIDAndTeacherID(id, teacherID uuid.UUID) (*models.Task, error) {
	ctx := context.Background()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND teacher_id = $2`
	return scanTask(r.pool.QueryRow(ctx, query, id, teacherID))
}

func (r *TaskRepository) List(teacherID uuid.UUID, filter TaskFilter) ([]models.Task, int, error) {
	ctx := context.Background()

	where := `WHERE teacher_id = $1`
	args := []any{teacherID}

	if filter.Completed != nil {
		if *filter.Completed {
			where += ` AND completed_at IS NOT NULL`
		} else {
			where += ` AND completed_at IS NULL`
		}
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		where += fmt.Sprintf(` AND priority = $%d`, len(args))
	}
	if filter.DueFrom != nil {
		args = append(args, *filter.DueFrom)
		where += fmt.Sprintf(` AND due_date >= $%d`, len(args))
	}
	if filter.DueTo != nil {
		args = append(args, *filter.DueTo)
		where += fmt.Sprintf(` AND due_date <= $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM tasks `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM tasks %s ORDER BY due_date NULLS LAST, created_at DESC LIMIT $%d OFFSET $%d`,
		taskColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, total, rows.Err()
}

// ListDueBetween is used by the daily digest job; it spans all teachers.
func (r *TaskRepository) ListDueBetween(from, to time.Time) ([]models.Task, error) {
	ctx := context.Background()

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE completed_at IS NULL AND due_date >= $1 AND due_date < $2
		ORDER BY teacher_id, due_date
	`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Update(t *models.Task) error {
	ctx := context.Background()

	query := `
		UPDATE tasks
		SET title = $3, notes = $4, due_date = $5, priority = $6, completed_at = $7, updated_at = $8
		WHERE id = $1 AND teacher_id = $2
	`
	_, err := r.pool.Exec(ctx, query,
		t.ID, t.TeacherID, t.Title, t.Notes, t.DueDate, t.Priority, t.CompletedAt, time.Now(),
	)
	return err
}

func (r *TaskRepository) Delete(id, teacherID uuid.UUID) (bool, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
