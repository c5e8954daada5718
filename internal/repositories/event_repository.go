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

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, teacher_id, title, description, location, event_type_id,
	start_at, end_at, all_day, recurrence_rule, parent_event_id, original_start_at,
	is_cancelled, created_at, updated_at`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID,
		&e.TeacherID,
		&e.Title,
		&e.Description,
		&e.Location,
		&e.EventTypeID,
		&e.StartAt,
		&e.EndAt,
		&e.AllDay,
		&e.RecurrenceRule,
		&e.ParentEventID,
		&e.OriginalStartAt,
		&e.IsCancelled,
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

func (r *EventRepository) Create(event *models.Event) error {
	ctx := context.Background()

	event.Prepare()

	query := `
		INSERT INTO events (id, teacher_id, title, description, location, event_type_id,
			start_at, end_at, all_day, recurrence_rule, parent_event_id, original_start_at,
			is_cancelled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.TeacherID,
		event.Title,
		event.Description,
		event.Location,
		event.EventTypeID,
		event.StartAt,
		event.EndAt,
		event.AllDay,
		event.RecurrenceRule,
		event.ParentEventID,
		event.OriginalStartAt,
		event.IsCancelled,
		time.Now(),
	)
	return err
}

func (r *EventRepository) GetByIDAndTeacherID(id, teacherID uuid.UUID) (*models.Event, error) {
	ctx := context.Background()

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND teacher_id = $2`
	return scanEvent(r.pool.QueryRow(ctx, query, id, teacherID))
}

// ListBaseInWindow returns non-exception events relevant to [from, to]:
// one-off events overlapping the window, plus every recurring series
// that starts before the window ends (its occurrences inside the window
// are computed by the caller).
func (r *EventRepository) ListBaseInWindow(teacherID uuid.UUID, from, to time.Time) ([]models.Event, error) {
	ctx := context.Background()

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE teacher_id = $1
		  AND parent_event_id IS NULL
		  AND start_at <= $3
		  AND (recurrence_rule IS NOT NULL OR end_at >= $2)
		ORDER BY start_at
	`
	rows, err := r.pool.Query(ctx, query, teacherID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListExceptions returns the exception children of the given series.
func (r *EventRepository) ListExceptions(parentIDs []uuid.UUID) ([]models.Event, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	ctx := context.Background()

	query := `SELECT ` + eventColumns + ` FROM events WHERE parent_event_id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]models.Event, error) {
	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *EventRepository) Update(event *models.Event) error {
	ctx := context.Background()

	query := `
		UPDATE events
		SET title = $3, description = $4, location = $5, event_type_id = $6,
			start_at = $7, end_at = $8, all_day = $9, recurrence_rule = $10,
			is_cancelled = $11, updated_at = $12
		WHERE id = $1 AND teacher_id = $2
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.TeacherID,
		event.Title,
		event.Description,
		event.Location,
		event.EventTypeID,
		event.StartAt,
		event.EndAt,
		event.AllDay,
		event.RecurrenceRule,
		event.IsCancelled,
		time.Now(),
	)
	return err
}

// Delete removes the event; exception children go with it via the
// ON DELETE CASCADE on parent_event_id.
func (r *EventRepository) Delete(id, teacherID uuid.UUID) (bool, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
