package models

import (
	"time"

	"github.com/google/uuid"
)

type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentSubmitted  AssignmentStatus = "submitted"
	AssignmentGraded     AssignmentStatus = "graded"
)

func ValidAssignmentStatus(s string) bool {
	switch AssignmentStatus(s) {
	case AssignmentAssigned, AssignmentInProgress, AssignmentSubmitted, AssignmentGraded:
		return true
	}
	return false
}

type Assignment struct {
	ID          uuid.UUID        `json:"id"`
	TeacherID   uuid.UUID        `json:"teacher_id"`
	StudentID   uuid.UUID        `json:"student_id"`
	SubjectID   *uuid.UUID       `json:"subject_id,omitempty"`
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	Status      AssignmentStatus `json:"status"`
	Score       *float64         `json:"score,omitempty"`
	Grade       *string          `json:"grade,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (a *Assignment) Prepare() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = AssignmentAssigned
	}
}
