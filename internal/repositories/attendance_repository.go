package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"homeschool/internal/models"
)

type AttendanceRepository struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Upsert records or updates a student's status for one occurrence date.
func (r *AttendanceRepository) Upsert(a *models.Attendance) error {
	ctx := context.Background()

	a.Prepare()

	query := `
		INSERT INTO attendance (id, event_id, student_id, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (event_id, student_id, date)
		DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query, a.ID, a.EventID, a.StudentID, a.Date, a.Status, time.Now())
	return err
}

func (r *AttendanceRepository) ListByEvent(eventID uuid.UUID) ([]models.Attendance, error) {
	ctx := context.Background()

	query := `
		SELECT id, event_id, student_id, date, status, created_at, updated_at
		FROM attendance WHERE event_id = $1 ORDER BY date, student_id
	`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(&a.ID, &a.EventID, &a.StudentID, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

func (r *AttendanceRepository) Delete(eventID, studentID uuid.UUID, date time.Time) (bool, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM attendance WHERE event_id = $1 AND student_id = $2 AND date = $3`,
		eventID, studentID, date)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
