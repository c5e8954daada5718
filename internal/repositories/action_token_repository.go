package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homeschool/internal/models"
)

type ActionTokenRepository struct {
	pool *pgxpool.Pool
}

func NewActionTokenRepository(pool *pgxpool.Pool) *ActionTokenRepository {
	return &ActionTokenRepository{pool: pool}
}

func (r *ActionTokenRepository) Create(token *models.ActionToken) error {
	ctx := context.Background()

	token.Prepare()

	query := `
		INSERT INTO action_tokens (id, user_id, purpose, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.Purpose,
		token.TokenHash,
		token.ExpiresAt,
		time.Now(),
	)
	return err
}

func (r *ActionTokenRepository) FindByHash(tokenHash string, purpose models.TokenPurpose) (*models.ActionToken, error) {
	ctx := context.Background()

	query := `
		SELECT id, user_id, purpose, token_hash, expires_at, used_at, created_at
		FROM action_tokens WHERE token_hash = $1 AND purpose = $2
	`
	var t models.ActionToken
	err := r.pool.QueryRow(ctx, query, tokenHash, purpose).Scan(
		&t.ID,
		&t.UserID,
		&t.Purpose,
		&t.TokenHash,
		&t.ExpiresAt,
		&t.UsedAt,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// MarkUsed consumes a token. Returns false when the token was already
// used, which callers treat the same as not found.
func (r *ActionTokenRepository) MarkUsed(tokenHash string) (bool, error) {
	ctx := context.Background()

	query := `UPDATE action_tokens SET used_at = now() WHERE token_hash = $1 AND used_at IS NULL`
	tag, err := r.pool.Exec(ctx, query, tokenHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ActionTokenRepository) DeleteExpired() (int64, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM action_tokens WHERE expires_at < now() OR used_at IS NOT NULL`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
