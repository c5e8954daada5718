package routes

import (
	"github.com/gin-gonic/gin"

	"homeschool/internal/handlers"
)

type StudentRoutes struct {
	handler *handlers.StudentHandler
	auth    gin.HandlerFunc
}

func NewStudentRoutes(handler *handlers.StudentHandler, auth gin.HandlerFunc) *StudentRoutes {
	return &StudentRoutes{handler: handler, auth: auth}
}

func (r *StudentRoutes) RegisterRoutes(router *gin.RouterGroup) {
	students := router.Group("/students")
	students.Use(r.auth)
	{
		students.POST("", r.handler.Create)
		students.GET("", r.handler.List)
		students.GET("/:id", r.handler.Get)
		students.PUT("/:id", r.handler.Update)
		students.DELETE("/:id", r.handler.Delete)
	}
}
