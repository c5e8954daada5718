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

type EventTypeRepository struct {
	pool *pgxpool.Pool
}

func NewEventTypeRepository(pool *pgxpool.Pool) *EventTypeRepository {
	return &EventTypeRepository{pool: pool}
}

func (r *EventTypeRepository) Create(et *models.EventType) error {
	ctx := context.Background()

	et.Prepare()

	query := `
		INSERT INTO event_types (id, teacher_id, name, color, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query, et.ID, et.TeacherID, et.Name, et.Color, time.Now())
	return err
}

func (r *EventTypeRepository) GetByIDAndTeacherID(id, teacherID uuid.UUID) (*models.EventType, error) {
	ctx := context.Background()

	query := `SELECT id, teacher_id, name, color, created_at FROM event_types WHERE id = $1 AND teacher_id = $2`

	var et models.EventType
	err := r.pool.QueryRow(ctx, query, id, teacherID).Scan(&et.ID, &et.TeacherID, &et.Name, &et.Color, &et.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &et, nil
}

func (r *EventTypeRepository) List(teacherID uuid.UUID) ([]models.EventType, error) {
	ctx := context.Background()

	query := `SELECT id, teacher_id, name, color, created_at FROM event_types WHERE teacher_id = $1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []models.EventType
	for rows.Next() {
		var et models.EventType
		if err := rows.Scan(&et.ID, &et.TeacherID, &et.Name, &et.Color, &et.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, et)
	}
	return types, rows.Err()
}

func (r *EventTypeRepository) Update(et *models.EventType) error {
	ctx := context.Background()

	query := `UPDATE event_types SET name = $3, color = $4 WHERE id = $1 AND teacher_id = $2`
	_, err := r.pool.Exec(ctx, query, et.ID, et.TeacherID, et.Name, et.Color)
	return err
}

func (r *EventTypeRepository) Delete(id, teacherID uuid.UUID) (bool, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM event_types WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
