package routes

import (
	"github.com/gin-gonic/gin"

	"homeschool/internal/handlers"
)

type ReportCardRoutes struct {
	handler *handlers.ReportCardHandler
	auth    gin.HandlerFunc
}

func NewReportCardRoutes(handler *handlers.ReportCardHandler, auth gin.HandlerFunc) *ReportCardRoutes {
	return &ReportCardRoutes{handler: handler, auth: auth}
}

func (r *ReportCardRoutes) RegisterRoutes(router *gin.RouterGroup) {
	cards := router.Group("/report-cards")
	cards.Use(r.auth)
	{
		cards.POST("", r.handler.Create)
		cards.GET("", r.handler.List)
		cards.GET("/:id", r.handler.Get)
		cards.PUT("/:id", r.handler.Update)
		cards.DELETE("/:id", r.handler.Delete)
		cards.GET("/:id/pdf", r.handler.DownloadPDF)

		cards.POST("/:id/entries", r.handler.AddEntry)
		cards.DELETE("/:id/entries/:entryId", r.handler.DeleteEntry)
	}
}
