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

type LessonPlanRepository struct {
	pool *pgxpool.Pool
}

func NewLessonPlanRepository(pool *pgxpool.Pool) *LessonPlanRepository {
	return &LessonPlanRepository{pool: pool}
}

type LessonPlanFilter struct {
	Search     string
	SubjectID  *uuid.UUID
	GradeLevel string
	Limit      int
	Offset     int
}

const lessonPlanColumns = `id, teacher_id, title, subject_id, grade_level, content,
	is_public, share_token, copied_from_id, created_at, updated_at`

func scanLessonPlan(row pgx.Row) (*models.LessonPlan, error) {
	var lp models.LessonPlan
	err := row.Scan(
		&lp.ID,
		&lp.TeacherID,
		&lp.Title,
		&lp.SubjectID,
		&lp.GradeLevel,
		&lp.Content,
		&lp.IsPublic,
		&lp.ShareToken,
		&lp.CopiedFromID,
		&lp.CreatedAt,
		&lp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &lp, nil
}

func (r *LessonPlanRepository) Create(lp *models.LessonPlan) error {
	ctx := context.Background()

	lp.Prepare()

	query := `
		INSERT INTO lesson_plans (id, teacher_id, title, subject_id, grade_level, content,
			is_public, share_token, copied_from_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		lp.ID, lp.TeacherID, lp.Title, lp.SubjectID, lp.GradeLevel, lp.Content,
		lp.IsPublic, lp.ShareToken, lp.CopiedFromID, time.Now(),
	)
	return err
}

func (r *LessonPlanRepository) GetByIDAndTeacherID(id, teacherID uuid.UUID) (*models.LessonPlan, error) {
	ctx := context.Background()

	query := `SELECT ` + lessonPlanColumns + ` FROM lesson_plans WHERE id = $1 AND teacher_id = $2`
	return scanLessonPlan(r.pool.QueryRow(ctx, query, id, teacherID))
}

// GetPublicByID loads a plan visible across accounts: either published
// or reachable via its share token.
func (r *LessonPlanRepository) GetPublicByID(id uuid.UUID) (*models.LessonPlan, error) {
	ctx := context.Background()

	query := `SELECT ` + lessonPlanColumns + ` FROM lesson_plans WHERE id = $1 AND is_public`
	return scanLessonPlan(r.pool.QueryRow(ctx, query, id))
}

func (r *LessonPlanRepository) GetByShareToken(token string) (*models.LessonPlan, error) {
	ctx := context.Background()

	query := `SELECT ` + lessonPlanColumns + ` FROM lesson_plans WHERE share_token = $1`
	return scanLessonPlan(r.pool.QueryRow(ctx, query, token))
}

func (r *LessonPlanRepository) List(teacherID uuid.UUID, filter LessonPlanFilter) ([]models.LessonPlan, int, error) {
	ctx := context.Background()

	where := `WHERE teacher_id = $1`
	args := []any{teacherID}
	return r.list(ctx, where, args, filter)
}

// ListPublic searches published plans across all accounts.
func (r *LessonPlanRepository) ListPublic(filter LessonPlanFilter) ([]models.LessonPlan, int, error) {
	ctx := context.Background()

	where := `WHERE is_public`
	return r.list(ctx, where, nil, filter)
}

func (r *LessonPlanRepository) list(ctx context.Context, where string, args []any, filter LessonPlanFilter) ([]models.LessonPlan, int, error) {
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (title ILIKE $%d OR content ILIKE $%d)`, len(args), len(args))
	}
	if filter.SubjectID != nil {
		args = append(args, *filter.SubjectID)
		where += fmt.Sprintf(` AND subject_id = $%d`, len(args))
	}
	if filter.GradeLevel != "" {
		args = append(args, filter.GradeLevel)
		where += fmt.Sprintf(` AND grade_level = $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM lesson_plans `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM lesson_plans %s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`,
		lessonPlanColumns, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var plans []models.LessonPlan
	for rows.Next() {
		lp, err := scanLessonPlan(rows)
		if err != nil {
			return nil, 0, err
		}
		plans = append(plans, *lp)
	}
	return plans, total, rows.Err()
}

func (r *LessonPlanRepository) Update(lp *models.LessonPlan) error {
	ctx := context.Background()

	query := `
		UPDATE lesson_plans
		SET title = $3, subject_id = $4, grade_level = $5, content = $6,
			is_public = $7, share_token = $8, updated_at = $9
		WHERE id = $1 AND teacher_id = $2
	`
	_, err := r.pool.Exec(ctx, query,
		lp.ID, lp.TeacherID, lp.Title, lp.SubjectID, lp.GradeLevel, lp.Content,
		lp.IsPublic, lp.ShareToken, time.Now(),
	)
	return err
}

func (r *LessonPlanRepository) Delete(id, teacherID uuid.UUID) (bool, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM lesson_plans WHERE id = $1 AND teacher_id = $2`, id, teacherID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
