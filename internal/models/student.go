package models

import (
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
)

var GradeLevels = []string{"K", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}

type Student struct {
	ID          uuid.UUID  `json:"id"`
	TeacherID   uuid.UUID  `json:"teacher_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	GradeLevel  *string    `json:"grade_level,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (s *Student) Prepare() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.FirstName = html.EscapeString(strings.TrimSpace(s.FirstName))
	s.LastName = html.EscapeString(strings.TrimSpace(s.LastName))
}

func ValidGradeLevel(level string) bool {
	for _, g := range GradeLevels {
		if g == level {
			return true
		}
	}
	return false
}
