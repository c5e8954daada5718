package routes

import (
	"github.com/gin-gonic/gin"

	"homeschool/internal/handlers"
)

type TeacherRoutes struct {
	handler     *handlers.TeacherHandler
	auth        gin.HandlerFunc
	uploadLimit gin.HandlerFunc
}

func NewTeacherRoutes(handler *handlers.TeacherHandler, auth, uploadLimit gin.HandlerFunc) *TeacherRoutes {
	return &TeacherRoutes{handler: handler, auth: auth, uploadLimit: uploadLimit}
}

func (r *TeacherRoutes) RegisterRoutes(router *gin.RouterGroup) {
	me := router.Group("/me")
	me.Use(r.auth)
	{
		me.GET("", r.handler.Me)
		me.PATCH("", r.handler.UpdateMe)
		me.POST("/profile-image", r.uploadLimit, r.handler.UploadProfileImage)
	}
}
