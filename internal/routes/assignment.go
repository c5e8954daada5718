package routes

import (
	"github.com/gin-gonic/gin"

	"homeschool/internal/handlers"
)

type AssignmentRoutes struct {
	handler     *handlers.AssignmentHandler
	auth        gin.HandlerFunc
	uploadLimit gin.HandlerFunc
}

func NewAssignmentRoutes(handler *handlers.AssignmentHandler, auth, uploadLimit gin.HandlerFunc) *AssignmentRoutes {
	return &AssignmentRoutes{handler: handler, auth: auth, uploadLimit: uploadLimit}
}

func (r *AssignmentRoutes) RegisterRoutes(router *gin.RouterGroup) {
	assignments := router.Group("/assignments")
	assignments.Use(r.auth)
	{
		assignments.POST("", r.handler.Create)
		assignments.GET("", r.handler.List)
		assignments.GET("/:id", r.handler.Get)
		assignments.PUT("/:id", r.handler.Update)
		assignments.DELETE("/:id", r.handler.Delete)

		assignments.POST("/:id/attachments", r.uploadLimit, r.handler.UploadAttachment)
		assignments.GET("/:id/attachments", r.handler.ListAttachments)
	}
}
