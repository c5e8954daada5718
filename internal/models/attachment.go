package models

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentOwner string

const (
	AttachmentOwnerAssignment AttachmentOwner = "assignment"
	AttachmentOwnerLessonPlan AttachmentOwner = "lesson_plan"
	AttachmentOwnerExpense    AttachmentOwner = "expense"
)

// Attachment is an uploaded file tied to an owning resource. The binary
// lives in object storage under StorageKey; URL is what clients fetch.
type Attachment struct {
	ID          uuid.UUID       `json:"id"`
	TeacherID   uuid.UUID       `json:"teacher_id"`
	OwnerType   AttachmentOwner `json:"owner_type"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	FileName    string          `json:"file_name"`
	ContentType string          `json:"content_type"`
	SizeBytes   int64           `json:"size_bytes"`
	StorageKey  string          `json:"-"`
	URL         string          `json:"url"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (a *Attachment) Prepare() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
}
