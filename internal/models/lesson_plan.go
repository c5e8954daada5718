package models

import (
	"time"

	"github.com/google/uuid"
)

type LessonPlan struct {
	ID           uuid.UUID  `json:"id"`
	TeacherID    uuid.UUID  `json:"teacher_id"`
	Title        string     `json:"title"`
	SubjectID    *uuid.UUID `json:"subject_id,omitempty"`
	GradeLevel   *string    `json:"grade_level,omitempty"`
	Content      string     `json:"content"`
	IsPublic     bool       `json:"is_public"`
	ShareToken   *string    `json:"share_token,omitempty"`
	CopiedFromID *uuid.UUID `json:"copied_from_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (lp *LessonPlan) Prepare() {
	if lp.ID == uuid.Nil {
		lp.ID = uuid.New()
	}
}
