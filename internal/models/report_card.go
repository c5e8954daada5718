package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportCard struct {
	ID          uuid.UUID         `json:"id"`
	TeacherID   uuid.UUID         `json:"teacher_id"`
	StudentID   uuid.UUID         `json:"student_id"`
	Term        string            `json:"term"`
	PeriodStart time.Time         `json:"period_start"`
	PeriodEnd   time.Time         `json:"period_end"`
	IsPublished bool              `json:"is_published"`
	Entries     []ReportCardEntry `json:"entries,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (r *ReportCard) Prepare() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
}

type ReportCardEntry struct {
	ID           uuid.UUID  `json:"id"`
	ReportCardID uuid.UUID  `json:"report_card_id"`
	SubjectID    *uuid.UUID `json:"subject_id,omitempty"`
	SubjectName  string     `json:"subject_name"`
	LetterGrade  string     `json:"letter_grade"`
	Score        *float64   `json:"score,omitempty"`
	Comments     *string    `json:"comments,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (e *ReportCardEntry) Prepare() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
}

// gradePoints maps letter grades onto the 4.0 scale.
var gradePoints = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0.0,
}

func ValidLetterGrade(g string) bool {
	_, ok := gradePoints[g]
	return ok
}

// GPA computes the unweighted grade point average of the card's entries.
// The second return is false when no entry carries a recognized grade.
func (r *ReportCard) GPA() (float64, bool) {
	var sum float64
	var n int
	for _, e := range r.Entries {
		if pts, ok := gradePoints[e.LetterGrade]; ok {
			sum += pts
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
