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

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// StudentFilter narrows List results. Active == nil means both active
// and inactive students.
type StudentFilter struct {
	Search string
	Active *bool
	Sort   string // "name" (default) or "created_at"
	Limit  int
	Offset int
}

const studentColumns = `id, teacher_id, first_name, last_name, date_of_birth, grade_level,
	notes, is_active, created_at, updated_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.TeacherID,
		&s.FirstName,
		&s.LastName,
		&s.DateOfBirth,
		&s.GradeLevel,
		&s.Notes,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) Create(student *models.Student) error {
	ctx := context.Background()

	student.Prepare()

	query := `
		INSERT INTO students (id, teacher_id, first_name, last_name, date_of_birth,
			grade_level, notes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		student.ID,
		student.TeacherID,
		student.FirstName,
		student.LastName,
		student.DateOfBirth,
		student.GradeLevel,
		student.Notes,
		student.IsActive,
		time.Now(),
	)
	return err
}

func (r *StudentRepository) GetByIDAndTeacherID(id, teacherID uuid.UUID) (*models.Student, error) {
	ctx := context.Background()

	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 AND teacher_id = $2`
	return scanStudent(r.pool.QueryRow(ctx, query, id, teacherID))
}

func (r *StudentRepository) List(teacherID uuid.UUID, filter StudentFilter) ([]models.Student, int, error) {
	ctx := context.Background()

	where := `WHERE teacher_id = $1`
	args := []any{teacherID}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (first_name ILIKE $%d OR last_name ILIKE $%d)`, len(args), len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		where += fmt.Sprintf(` AND is_active = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM students `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := `last_name, first_name`
	if filter.Sort == "created_at" {
		orderBy = `created_at DESC`
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM students %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		studentColumns, where, orderBy, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, *s)
	}
	return students, total, rows.Err()
}

func (r *StudentRepository) Update(student *models.Student) error {
	ctx := context.Background()

	query := `
		UPDATE students
		SET first_name = $3, last_name = $4, date_of_birth = $5, grade_level = $6,
			notes = $7, is_active = $8, updated_at = $9
		WHERE id = $1 AND teacher_id = $2
	`
	_, err := r.pool.Exec(ctx, query,
		student.ID,
		student.TeacherID,
		student.FirstName,
		student.LastName,
		student.DateOfBirth,
		student.GradeLevel,
		student.Notes,
		student.IsActive,
		time.Now(),
	)
	return err
}

// SoftDelete deactivates the student but keeps the record and its
// history (assignments, attendance, report cards).
func (r *StudentRepository) SoftDelete(id, teacherID uuid.UUID) (bool, error) {
	ctx := context.Background()

	query := `UPDATE students SET is_active = false, updated_at = now() WHERE id = $1 AND teacher_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *StudentRepository) Delete(id, teacherID uuid.UUID) (bool, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
