package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"homeschool/internal/database"
	"homeschool/internal/models"
)

// startPostgres spins up a throwaway database with the schema applied.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("homeschool_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(ctr)
	})

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(pool))
	return pool
}

func createTeacher(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	user := &models.User{
		Email:        "teacher@example.com",
		PasswordHash: "not-a-real-hash",
		FirstName:    "Pat",
		LastName:     "Example",
	}
	require.NoError(t, NewUserRepository(pool).Create(user))
	return user
}

func TestStudentRepositoryCRUD(t *testing.T) {
	pool := startPostgres(t)
	teacher := createTeacher(t, pool)
	repo := NewStudentRepository(pool)

	grade := "4"
	student := &models.Student{
		TeacherID:  teacher.ID,
		FirstName:  "Ada",
		LastName:   "Lovelace",
		GradeLevel: &grade,
		IsActive:   true,
	}
	require.NoError(t, repo.Create(student))

	got, err := repo.GetByIDAndTeacherID(student.ID, teacher.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.FirstName)
	require.NotNil(t, got.GradeLevel)
	assert.Equal(t, "4", *got.GradeLevel)

	// Ownership scoping: a different teacher sees nothing.
	other := &models.User{Email: "other@example.com", PasswordHash: "x", FirstName: "O", LastName: "T"}
	require.NoError(t, NewUserRepository(pool).Create(other))
	got, err = repo.GetByIDAndTeacherID(student.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	student.FirstName = "Augusta"
	require.NoError(t, repo.Update(student))
	got, err = repo.GetByIDAndTeacherID(student.ID, teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", got.FirstName)

	ok, err := repo.SoftDelete(student.ID, teacher.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = repo.GetByIDAndTeacherID(student.ID, teacher.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive)

	ok, err = repo.Delete(student.ID, teacher.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = repo.GetByIDAndTeacherID(student.ID, teacher.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStudentRepositoryListFilters(t *testing.T) {
	pool := startPostgres(t)
	teacher := createTeacher(t, pool)
	repo := NewStudentRepository(pool)

	for _, name := range []string{"Ada", "Alan", "Grace"} {
		require.NoError(t, repo.Create(&models.Student{
			TeacherID: teacher.ID,
			FirstName: name,
			LastName:  "Example",
			IsActive:  true,
		}))
	}

	all, total, err := repo.List(teacher.ID, StudentFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)

	matched, total, err := repo.List(teacher.ID, StudentFilter{Search: "ada", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, matched, 1)
	assert.Equal(t, "Ada", matched[0].FirstName)

	paged, total, err := repo.List(teacher.ID, StudentFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, paged, 2)
}
