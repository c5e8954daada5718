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

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(session *models.Session) error {
	ctx := context.Background()

	session.Prepare()

	query := `
		INSERT INTO sessions (id, user_id, refresh_token_hash, is_revoked, created_at, expires_at)
		VALUES ($1, $2, $3, false, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.RefreshTokenHash,
		time.Now(),
		session.ExpiresAt,
	)
	return err
}

func (r *SessionRepository) FindByTokenHash(tokenHash string) (*models.Session, error) {
	ctx := context.Background()

	query := `
		SELECT id, user_id, refresh_token_hash, is_revoked, replaced_by_id, created_at, expires_at
		FROM sessions WHERE refresh_token_hash = $1
	`
	var s models.Session
	err := r.pool.QueryRow(ctx, query, tokenHash).Scan(
		&s.ID,
		&s.UserID,
		&s.RefreshTokenHash,
		&s.IsRevoked,
		&s.ReplacedByID,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Rotate revokes the old session and records which session replaced it.
func (r *SessionRepository) Rotate(oldID, newID uuid.UUID) error {
	ctx := context.Background()

	query := `UPDATE sessions SET is_revoked = true, replaced_by_id = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, oldID, newID)
	return err
}

func (r *SessionRepository) Revoke(id uuid.UUID) error {
	ctx := context.Background()

	query := `UPDATE sessions SET is_revoked = true WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *SessionRepository) RevokeAllForUser(userID uuid.UUID) error {
	ctx := context.Background()

	query := `UPDATE sessions SET is_revoked = true WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

// DeleteExpired removes sessions whose expiry has passed; run from the
// hourly cleanup job.
func (r *SessionRepository) DeleteExpired() (int64, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
