package pdf

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeschool/internal/models"
)

func TestRenderReportCard(t *testing.T) {
	score := 91.5
	comments := "Strong progress this term."
	card := &models.ReportCard{
		ID:          uuid.New(),
		Term:        "Fall 2025",
		PeriodStart: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC),
		Entries: []models.ReportCardEntry{
			{SubjectName: "Mathematics", LetterGrade: "A", Score: &score, Comments: &comments},
			{SubjectName: "History", LetterGrade: "B+"},
		},
	}
	student := &models.Student{FirstName: "Ada", LastName: "Lovelace"}

	out, err := RenderReportCard(card, student)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderReportCardNoEntries(t *testing.T) {
	card := &models.ReportCard{
		ID:          uuid.New(),
		Term:        "Spring 2026",
		PeriodStart: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 5, 29, 0, 0, 0, 0, time.UTC),
	}
	student := &models.Student{FirstName: "Ada", LastName: "Lovelace"}

	out, err := RenderReportCard(card, student)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
