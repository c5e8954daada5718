package handlers

import (
	"mime/multipart"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/middlewares"
	"homeschool/internal/responses"
)

const (
	maxImageBytes      = 5 << 20
	maxAttachmentBytes = 10 << 20
)

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var attachmentContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// userID pulls the authenticated user out of the context; the auth
// middleware guarantees it is present on protected routes.
func userID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middlewares.CurrentUserID(c)
	if !ok {
		responses.Fail(c, apperrors.Unauthorized("authentication required"))
	}
	return id, ok
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		responses.Fail(c, apperrors.BadRequest(name+" must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		responses.Fail(c, apperrors.BadRequest(name+" must be a valid UUID"))
		return nil, false
	}
	return &id, true
}

func queryTime(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// Bare dates are accepted too.
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			responses.Fail(c, apperrors.BadRequest(name+" must be an RFC 3339 timestamp or YYYY-MM-DD date"))
			return nil, false
		}
	}
	return &t, true
}

func queryBool(c *gin.Context, name string) (*bool, bool) {
	switch c.Query(name) {
	case "":
		return nil, true
	case "true", "1":
		v := true
		return &v, true
	case "false", "0":
		v := false
		return &v, true
	default:
		responses.Fail(c, apperrors.BadRequest(name+" must be true or false"))
		return nil, false
	}
}

func invalidDateErr(field string) error {
	return apperrors.Validation("invalid date",
		map[string]string{field: "must be a YYYY-MM-DD date"})
}

// formFile validates an uploaded file against a size cap and a content
// type allowlist before the handler streams it to storage.
func formFile(c *gin.Context, field string, maxBytes int64, allowed map[string]bool) (*multipart.FileHeader, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		responses.Fail(c, apperrors.BadRequest("missing file field '"+field+"'"))
		return nil, false
	}
	if fh.Size > maxBytes {
		responses.Fail(c, apperrors.Validation("file too large",
			map[string]string{field: "exceeds the maximum allowed size"}))
		return nil, false
	}
	ct := fh.Header.Get("Content-Type")
	if !allowed[ct] {
		responses.Fail(c, apperrors.Validation("unsupported file type",
			map[string]string{field: "content type " + ct + " is not accepted"}))
		return nil, false
	}
	return fh, true
}
