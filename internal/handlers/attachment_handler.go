package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeschool/internal/models"
	"homeschool/internal/responses"
	"homeschool/internal/services"
)

// uploadAttachment and listAttachments back the per-resource attachment
// routes (assignments, lesson plans); the owner ID comes from the
// route's :id param.
func uploadAttachment(c *gin.Context, svc *services.AttachmentService, owner models.AttachmentOwner) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	ownerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	fh, ok := formFile(c, "file", maxAttachmentBytes, attachmentContentTypes)
	if !ok {
		return
	}
	f, err := fh.Open()
	if err != nil {
		responses.Fail(c, err)
		return
	}
	defer f.Close()

	a, err := svc.Upload(c.Request.Context(), teacherID, services.UploadInput{
		OwnerType:   owner,
		OwnerID:     ownerID,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		SizeBytes:   fh.Size,
		Body:        f,
	})
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, a)
}

func listAttachments(c *gin.Context, svc *services.AttachmentService, owner models.AttachmentOwner) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	ownerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	items, err := svc.ListByOwner(owner, ownerID, teacherID)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, items)
}

type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

func NewAttachmentHandler(attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

func (h *AttachmentHandler) Delete(c *gin.Context) {
	teacherID, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), id, teacherID); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}
