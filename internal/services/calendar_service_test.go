package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeschool/internal/apperrors"
	"homeschool/internal/models"
)

func TestValidateEventRejectsBadInput(t *testing.T) {
	svc := &CalendarService{}
	start := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input EventInput
		field string
	}{
		{
			"missing title",
			EventInput{StartAt: start, EndAt: start.Add(time.Hour)},
			"title",
		},
		{
			"end before start",
			EventInput{Title: "Math", StartAt: start, EndAt: start.Add(-time.Hour)},
			"end_at",
		},
		{
			"malformed rule",
			EventInput{Title: "Math", StartAt: start, EndAt: start.Add(time.Hour), RecurrenceRule: strPtr("FREQ=SOMETIMES")},
			"recurrence_rule",
		},
		{
			"until before start",
			EventInput{Title: "Math", StartAt: start, EndAt: start.Add(time.Hour), RecurrenceRule: strPtr("FREQ=WEEKLY;UNTIL=20250101T000000Z")},
			"recurrence_rule",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.validateEvent(uuid.New(), &tc.input)
			require.Error(t, err)
			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Contains(t, appErr.Details, tc.field)
		})
	}
}

func TestValidateEventAcceptsValidRule(t *testing.T) {
	svc := &CalendarService{}
	start := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	input := EventInput{
		Title:          "Math",
		StartAt:        start,
		EndAt:          start.Add(time.Hour),
		RecurrenceRule: strPtr("FREQ=WEEKLY;BYDAY=MO,WE;COUNT=10"),
	}
	assert.NoError(t, svc.validateEvent(uuid.New(), &input))
}

func TestOverlapsWindow(t *testing.T) {
	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 11, 30, 23, 59, 59, 0, time.UTC)

	assert.True(t, overlapsWindow(
		time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 10, 10, 0, 0, 0, time.UTC), from, to))
	// Straddles the window start.
	assert.True(t, overlapsWindow(
		time.Date(2025, 10, 31, 22, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 1, 2, 0, 0, 0, time.UTC), from, to))
	assert.False(t, overlapsWindow(
		time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 1, 10, 0, 0, 0, time.UTC), from, to))
}

func TestOccurrenceOfAllDayNormalizes(t *testing.T) {
	event := &models.Event{
		ID:     uuid.New(),
		Title:  "Field trip",
		AllDay: true,
	}
	start := time.Date(2025, 11, 10, 13, 45, 0, 0, time.UTC)

	occ := occurrenceOf(event, start, start.Add(time.Hour), false)
	assert.Equal(t, time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC), occ.StartAt)
	assert.Equal(t, time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC), occ.EndAt)
}

func TestOccurrenceOfExceptionReportsParentID(t *testing.T) {
	parentID := uuid.New()
	ex := &models.Event{
		ID:            uuid.New(),
		ParentEventID: &parentID,
		Title:         "Moved lesson",
	}
	start := time.Now()

	occ := occurrenceOf(ex, start, start.Add(time.Hour), true)
	assert.Equal(t, parentID, occ.EventID)
	assert.True(t, occ.IsException)
}

func TestNormalizeRule(t *testing.T) {
	assert.Nil(t, normalizeRule(nil))
	assert.Nil(t, normalizeRule(strPtr("")))
	rule := "FREQ=DAILY"
	require.NotNil(t, normalizeRule(&rule))
	assert.Equal(t, "FREQ=DAILY", *normalizeRule(&rule))
}

func strPtr(s string) *string { return &s }
