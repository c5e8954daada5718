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

type AssignmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

type AssignmentFilter struct {
	StudentID *uuid.UUID
	SubjectID *uuid.UUID
	Status    string
	DueFrom   *time.Time
	DueTo     *time.Time
	Limit     int
	Offset    int
}

const assignmentColumns = `id, teacher_id, student_id, subject_id, title, description,
	due_date, status, score, grade, created_at, updated_at`

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var a models.Assignment
	err := row.Scan(
		&a.ID,
		&a.TeacherID,
		&a.StudentID,
		&a.SubjectID,
		&a.Title,
		&a.Description,
		&a.DueDate,
		&a.Status,
		&a.Score,
		&a.Grade,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) Create(a *models.Assignment) error {
	ctx := context.Background()

	a.Prepare()

	query := `
		INSERT INTO assignments (id, teacher_id, student_id, subject_id, title, description,
			due_date, status, score, grade, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.TeacherID, a.StudentID, a.SubjectID, a.Title, a.Description,
		a.DueDate, a.Status, a.Score, a.Grade, time.Now(),
	)
	return err
}

func (r *AssignmentRepository) GetByIDAndTeacherID(id, teacherID uuid.UUID) (*models.Assignment, error) {
	ctx := context.Background()

	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1 AND teacher_id = $2`
	return scanAssignment(r.pool.QueryRow(ctx, query, id, teacherID))
}

func (r *AssignmentRepository) List(teacherID uuid.UUID, filter AssignmentFilter) ([]models.Assignment, int, error) {
	ctx := context.Background()

	where := `WHERE teacher_id = $1`
	args := []any{teacherID}

	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		where += fmt.Sprintf(` AND student_id = $%d`, len(args))
	}
	if filter.SubjectID != nil {
		args = append(args, *filter.SubjectID)
		where += fmt.Sprintf(` AND subject_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
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
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM assignments `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM assignments %s ORDER BY due_date NULLS LAST, created_at DESC LIMIT $%d OFFSET $%d`,
		assignmentColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, 0, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, total, rows.Err()
}

func (r *AssignmentRepository) Update(a *models.Assignment) error {
	ctx := context.Background()

	query := `
		UPDATE assignments
		SET student_id = $3, subject_id = $4, title = $5, description = $6,
			due_date = $7, status = $8, score = $9, grade = $10, updated_at = $11
		WHERE id = $1 AND teacher_id = $2
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.TeacherID, a.StudentID, a.SubjectID, a.Title, a.Description,
		a.DueDate, a.Status, a.Score, a.Grade, time.Now(),
	)
	return err
}

func (r *AssignmentRepository) Delete(id, teacherID uuid.UUID) (bool, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM assignments WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
