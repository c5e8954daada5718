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

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

const subjectColumns = `id, teacher_id, name, color, is_active, created_at, updated_at`

func scanSubject(row pgx.Row) (*models.Subject, error) {
	var s models.Subject
	err := row.Scan(&s.ID, &s.TeacherID, &s.Name, &s.Color, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubjectRepository) Create(s *models.Subject) error {
	ctx := context.Background()

	s.Prepare()

	query := `
		INSERT INTO subjects (id, teacher_id, name, color, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`
	_, err := r.pool.Exec(ctx, query, s.ID, s.TeacherID, s.Name, s.Color, s.IsActive, time.Now())
	return err
}

func (r *SubjectRepository) GetByIDAndTeacherID(id, teacherID uuid.UUID) (*models.Subject, error) {
	ctx := context.Background()

	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE id = $1 AND teacher_id = $2`
	return scanSubject(r.pool.QueryRow(ctx, query, id, teacherID))
}

func (r *SubjectRepository) List(teacherID uuid.UUID, includeInactive bool) ([]models.Subject, error) {
	ctx := context.Background()

	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE teacher_id = $1`
	if !includeInactive {
		query += ` AND is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, *s)
	}
	return subjects, rows.Err()
}

func (r *SubjectRepository) Update(s *models.Subject) error {
	ctx := context.Background()

	query := `UPDATE subjects SET name = $3, color = $4, is_active = $5, updated_at = $6 WHERE id = $1 AND teacher_id = $2`
	_, err := r.pool.Exec(ctx, query, s.ID, s.TeacherID, s.Name, s.Color, s.IsActive, time.Now())
	return err
}

// SoftDelete deactivates the subject and NULLs its references on
// assignments, expenses, report card entries and lesson plans in one
// transaction, preserving those records.
func (r *SubjectRepository) SoftDelete(id, teacherID uuid.UUID) (bool, error) {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE subjects SET is_active = false, updated_at = now() WHERE id = $1 AND teacher_id = $2`,
		id, teacherID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	for _, q := range []string{
		`UPDATE assignments SET subject_id = NULL WHERE subject_id = $1 AND teacher_id = $2`,
		`UPDATE expenses SET subject_id = NULL WHERE subject_id = $1 AND teacher_id = $2`,
		`UPDATE lesson_plans SET subject_id = NULL WHERE subject_id = $1 AND teacher_id = $2`,
		`UPDATE report_card_entries SET subject_id = NULL
			WHERE subject_id = $1
			AND report_card_id IN (SELECT id FROM report_cards WHERE teacher_id = $2)`,
	} {
		if _, err := tx.Exec(ctx, q, id, teacherID); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
