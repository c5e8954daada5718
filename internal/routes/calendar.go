package routes

import (
	"github.com/gin-gonic/gin"

	"homeschool/internal/handlers"
)

type CalendarRoutes struct {
	handler *handlers.CalendarHandler
	auth    gin.HandlerFunc
}

func NewCalendarRoutes(handler *handlers.CalendarHandler, auth gin.HandlerFunc) *CalendarRoutes {
	return &CalendarRoutes{handler: handler, auth: auth}
}

func (r *CalendarRoutes) RegisterRoutes(router *gin.RouterGroup) {
	events := router.Group("/events")
	events.Use(r.auth)
	{
		events.POST("", r.handler.CreateEvent)
		events.GET("/occurrences", r.handler.ListOccurrences)
		events.GET("/:id", r.handler.GetEvent)
		events.PUT("/:id", r.handler.UpdateEvent)
		events.DELETE("/:id", r.handler.DeleteEvent)

		events.POST("/:id/attendance", r.handler.RecordAttendance)
		events.GET("/:id/attendance", r.handler.ListAttendance)
	}

	types := router.Group("/event-types")
	types.Use(r.auth)
	{
		types.POST("", r.handler.CreateEventType)
		types.GET("", r.handler.ListEventTypes)
		types.PUT("/:id", r.handler.UpdateEventType)
		types.DELETE("/:id", r.handler.DeleteEventType)
	}
}
