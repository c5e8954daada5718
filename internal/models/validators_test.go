package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidGradeLevel(t *testing.T) {
	assert.True(t, ValidGradeLevel("K"))
	assert.True(t, ValidGradeLevel("1"))
	assert.True(t, ValidGradeLevel("12"))
	assert.False(t, ValidGradeLevel("13"))
	assert.False(t, ValidGradeLevel("kindergarten"))
}

func TestValidAttendanceStatus(t *testing.T) {
	assert.True(t, ValidAttendanceStatus("present"))
	assert.True(t, ValidAttendanceStatus("excused"))
	assert.False(t, ValidAttendanceStatus("tardy"))
}

func TestValidAssignmentStatus(t *testing.T) {
	assert.True(t, ValidAssignmentStatus("in_progress"))
	assert.False(t, ValidAssignmentStatus("done"))
}

func TestValidTaskPriority(t *testing.T) {
	assert.True(t, ValidTaskPriority("high"))
	assert.False(t, ValidTaskPriority("urgent"))
}

func TestValidExpenseGrouping(t *testing.T) {
	for _, g := range ExpenseGroupings {
		assert.True(t, ValidExpenseGrouping(g))
	}
	assert.False(t, ValidExpenseGrouping("year"))
}

func TestUserPrepareNormalizesEmail(t *testing.T) {
	u := &User{Email: "  Teacher@Example.COM "}
	u.Prepare()
	assert.Equal(t, "teacher@example.com", u.Email)
	assert.NotEqual(t, "", u.ID.String())
}
