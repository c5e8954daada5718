package routes

import (
	"github.com/gin-gonic/gin"

	"homeschool/internal/handlers"
)

type TaskRoutes struct {
	handler *handlers.TaskHandler
	auth    gin.HandlerFunc
}

func NewTaskRoutes(handler *handlers.TaskHandler, auth gin.HandlerFunc) *TaskRoutes {
	return &TaskRoutes{handler: handler, auth: auth}
}

func (r *TaskRoutes) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	tasks.Use(r.auth)
	{
		tasks.POST("", r.handler.Create)
		tasks.GET("", r.handler.List)
		tasks.GET("/:id", r.handler.Get)
		tasks.PUT("/:id", r.handler.Update)
		tasks.PATCH("/:id/complete", r.handler.SetCompleted)
		tasks.DELETE("/:id", r.handler.Delete)
	}
}
