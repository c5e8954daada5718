package routes

import (
	"github.com/gin-gonic/gin"

	"homeschool/internal/handlers"
)

type SubjectRoutes struct {
	handler *handlers.SubjectHandler
	auth    gin.HandlerFunc
}

func NewSubjectRoutes(handler *handlers.SubjectHandler, auth gin.HandlerFunc) *SubjectRoutes {
	return &SubjectRoutes{handler: handler, auth: auth}
}

func (r *SubjectRoutes) RegisterRoutes(router *gin.RouterGroup) {
	subjects := router.Group("/subjects")
	subjects.Use(r.auth)
	{
		subjects.POST("", r.handler.Create)
		subjects.GET("", r.handler.List)
		subjects.GET("/:id", r.handler.Get)
		subjects.PUT("/:id", r.handler.Update)
		subjects.DELETE("/:id", r.handler.Delete)
	}
}
