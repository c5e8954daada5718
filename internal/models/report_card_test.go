package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGPA(t *testing.T) {
	card := &ReportCard{Entries: []ReportCardEntry{
		{LetterGrade: "A"},  // 4.0
		{LetterGrade: "B"},  // 3.0
		{LetterGrade: "C+"}, // 2.3
	}}
	gpa, ok := card.GPA()
	assert.True(t, ok)
	assert.InDelta(t, 3.1, gpa, 0.001)
}

func TestGPANoEntries(t *testing.T) {
	card := &ReportCard{}
	_, ok := card.GPA()
	assert.False(t, ok)
}

func TestGPASkipsUnknownGrades(t *testing.T) {
	card := &ReportCard{Entries: []ReportCardEntry{
		{LetterGrade: "A"},
		{LetterGrade: "Pass"},
	}}
	gpa, ok := card.GPA()
	assert.True(t, ok)
	assert.InDelta(t, 4.0, gpa, 0.001)
}

func TestValidLetterGrade(t *testing.T) {
	assert.True(t, ValidLetterGrade("A+"))
	assert.True(t, ValidLetterGrade("F"))
	assert.False(t, ValidLetterGrade("E"))
	assert.False(t, ValidLetterGrade("a"))
}
