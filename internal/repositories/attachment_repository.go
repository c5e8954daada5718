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

type AttachmentRepository struct {
	pool *pgxpool.Pool
}

func NewAttachmentRepository(pool *pgxpool.Pool) *AttachmentRepository {
	return &AttachmentRepository{pool: pool}
}

func (r *AttachmentRepository) Create(a *models.Attachment) error {
	ctx := context.Background()

	a.Prepare()

	query := `
		INSERT INTO attachments (id, teacher_id, owner_type, owner_id, file_name,
			content_type, size_bytes, storage_key, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.TeacherID, a.OwnerType, a.OwnerID, a.FileName,
		a.ContentType, a.SizeBytes, a.StorageKey, a.URL, time.Now(),
	)
	return err
}

func (r *AttachmentRepository) GetByIDAndTeacherID(id, teacherID uuid.UUID) (*models.Attachment, error) {
	ctx := context.Background()

	query := `
		SELECT id, teacher_id, owner_type, owner_id, file_name, content_type,
			size_bytes, storage_key, url, created_at
		FROM attachments WHERE id = $1 AND teacher_id = $2
	`
	var a models.Attachment
	err := r.pool.QueryRow(ctx, query, id, teacherID).Scan(
		&a.ID, &a.TeacherID, &a.OwnerType, &a.OwnerID, &a.FileName,
		&a.ContentType, &a.SizeBytes, &a.StorageKey, &a.URL, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AttachmentRepository) ListByOwner(ownerType models.AttachmentOwner, ownerID uuid.UUID) ([]models.Attachment, error) {
	ctx := context.Background()

	query := `
		SELECT id, teacher_id, owner_type, owner_id, file_name, content_type,
			size_bytes, storage_key, url, created_at
		FROM attachments WHERE owner_type = $1 AND owner_id = $2 ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(
			&a.ID, &a.TeacherID, &a.OwnerType, &a.OwnerID, &a.FileName,
			&a.ContentType, &a.SizeBytes, &a.StorageKey, &a.URL, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

func (r *AttachmentRepository) Delete(id, teacherID uuid.UUID) (bool, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM attachments WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
