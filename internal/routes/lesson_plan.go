package routes

import (
	"github.com/gin-gonic/gin"

	"homeschool/internal/handlers"
)

type LessonPlanRoutes struct {
	handler     *handlers.LessonPlanHandler
	auth        gin.HandlerFunc
	uploadLimit gin.HandlerFunc
}

func NewLessonPlanRoutes(handler *handlers.LessonPlanHandler, auth, uploadLimit gin.HandlerFunc) *LessonPlanRoutes {
	return &LessonPlanRoutes{handler: handler, auth: auth, uploadLimit: uploadLimit}
}

func (r *LessonPlanRoutes) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/lesson-plans")
	plans.Use(r.auth)
	{
		plans.POST("", r.handler.Create)
		plans.GET("", r.handler.List)
		plans.GET("/:id", r.handler.Get)
		plans.PUT("/:id", r.handler.Update)
		plans.DELETE("/:id", r.handler.Delete)

		plans.POST("/:id/share", r.handler.Share)
		plans.DELETE("/:id/share", r.handler.Unshare)
		plans.POST("/:id/copy", r.handler.Copy)

		plans.POST("/:id/attachments", r.uploadLimit, r.handler.UploadAttachment)
		plans.GET("/:id/attachments", r.handler.ListAttachments)
	}

	// Community library: browsing published plans needs no account.
	public := router.Group("/public/lesson-plans")
	{
		public.GET("", r.handler.ListPublic)
		public.GET("/:id", r.handler.GetPublic)
		public.GET("/shared/:token", r.handler.GetShared)
	}
}
