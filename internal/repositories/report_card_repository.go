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

type ReportCardRepository struct {
	pool *pgxpool.Pool
}

func NewReportCardRepository(pool *pgxpool.Pool) *ReportCardRepository {
	return &ReportCardRepository{pool: pool}
}

const reportCardColumns = `id, teacher_id, student_id, term, period_start, period_end,
	is_published, created_at, updated_at`

func scanReportCard(row pgx.Row) (*models.ReportCard, error) {
	var rc models.ReportCard
	err := row.Scan(
		&rc.ID,
		&rc.TeacherID,
		&rc.StudentID,
		&rc.Term,
		&rc.PeriodStart,
		&rc.PeriodEnd,
		&rc.IsPublished,
		&rc.CreatedAt,
		&rc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rc, nil
}

func (r *ReportCardRepository) Create(rc *models.ReportCard) error {
	ctx := context.Background()

	rc.Prepare()

	query := `
		INSERT INTO report_cards (id, teacher_id, student_id, term, period_start, period_end,
			is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		rc.ID, rc.TeacherID, rc.StudentID, rc.Term, rc.PeriodStart, rc.PeriodEnd,
		rc.IsPublished, time.Now(),
	)
	return err
}

// GetByIDAndTeacherID loads the card together with its entries.
func (r *ReportCardRepository) GetByIDAndTeacherID(id, teacherID uuid.UUID) (*models.ReportCard, error) {
	ctx := context.Background()

	query := `SELECT ` + reportCardColumns + ` FROM report_cards WHERE id = $1 AND teacher_id = $2`
	rc, err := scanReportCard(r.pool.QueryRow(ctx, query, id, teacherID))
	if err != nil || rc == nil {
		return rc, err
	}

	entries, err := r.listEntries(ctx, rc.ID)
	if err != nil {
		return nil, err
	}
	rc.Entries = entries
	return rc, nil
}

func (r *ReportCardRepository) listEntries(ctx context.Context, cardID uuid.UUID) ([]models.ReportCardEntry, error) {
	query := `
		SELECT id, report_card_id, subject_id, subject_name, letter_grade, score, comments, created_at
		FROM report_card_entries WHERE report_card_id = $1 ORDER BY subject_name
	`
	rows, err := r.pool.Query(ctx, query, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReportCardEntry
	for rows.Next() {
		var e models.ReportCardEntry
		if err := rows.Scan(&e.ID, &e.ReportCardID, &e.SubjectID, &e.SubjectName,
			&e.LetterGrade, &e.Score, &e.Comments, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ReportCardRepository) List(teacherID uuid.UUID, studentID *uuid.UUID, limit, offset int) ([]models.ReportCard, int, error) {
	ctx := context.Background()

	where := `WHERE teacher_id = $1`
	args := []any{teacherID}
	if studentID != nil {
		args = append(args, *studentID)
		where += fmt.Sprintf(` AND student_id = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM report_cards `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM report_cards %s ORDER BY period_start DESC LIMIT $%d OFFSET $%d`,
		reportCardColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cards []models.ReportCard
	for rows.Next() {
		rc, err := scanReportCard(rows)
		if err != nil {
			return nil, 0, err
		}
		cards = append(cards, *rc)
	}
	return cards, total, rows.Err()
}

func (r *ReportCardRepository) Update(rc *models.ReportCard) error {
	ctx := context.Background()

	query := `
		UPDATE report_cards
		SET term = $3, period_start = $4, period_end = $5, is_published = $6, updated_at = $7
		WHERE id = $1 AND teacher_id = $2
	`
	_, err := r.pool.Exec(ctx, query,
		rc.ID, rc.TeacherID, rc.Term, rc.PeriodStart, rc.PeriodEnd, rc.IsPublished, time.Now(),
	)
	return err
}

func (r *ReportCardRepository) Delete(id, teacherID uuid.UUID) (bool, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM report_cards WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ReportCardRepository) AddEntry(e *models.ReportCardEntry) error {
	ctx := context.Background()

	e.Prepare()

	query := `
		INSERT INTO report_card_entries (id, report_card_id, subject_id, subject_name,
			letter_grade, score, comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.ReportCardID, e.SubjectID, e.SubjectName, e.LetterGrade, e.Score, e.Comments, time.Now(),
	)
	return err
}

func (r *ReportCardRepository) DeleteEntry(entryID, cardID uuid.UUID) (bool, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM report_card_entries WHERE id = $1 AND report_card_id = $2`, entryID, cardID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
