package routes

import (
	"github.com/gin-gonic/gin"

	"homeschool/internal/handlers"
)

type AttachmentRoutes struct {
	handler *handlers.AttachmentHandler
	auth    gin.HandlerFunc
}

func NewAttachmentRoutes(handler *handlers.AttachmentHandler, auth gin.HandlerFunc) *AttachmentRoutes {
	return &AttachmentRoutes{handler: handler, auth: auth}
}

func (r *AttachmentRoutes) RegisterRoutes(router *gin.RouterGroup) {
	attachments := router.Group("/attachments")
	attachments.Use(r.auth)
	{
		attachments.DELETE("/:id", r.handler.Delete)
	}
}
