package routes

import (
	"github.com/gin-gonic/gin"

	"homeschool/internal/handlers"
)

type ExpenseRoutes struct {
	handler     *handlers.ExpenseHandler
	auth        gin.HandlerFunc
	uploadLimit gin.HandlerFunc
}

func NewExpenseRoutes(handler *handlers.ExpenseHandler, auth, uploadLimit gin.HandlerFunc) *ExpenseRoutes {
	return &ExpenseRoutes{handler: handler, auth: auth, uploadLimit: uploadLimit}
}

func (r *ExpenseRoutes) RegisterRoutes(router *gin.RouterGroup) {
	expenses := router.Group("/expenses")
	expenses.Use(r.auth)
	{
		expenses.POST("", r.handler.Create)
		expenses.GET("", r.handler.List)
		expenses.GET("/summary", r.handler.Summary)
		expenses.GET("/:id", r.handler.Get)
		expenses.PUT("/:id", r.handler.Update)
		expenses.DELETE("/:id", r.handler.Delete)
		expenses.POST("/:id/receipt", r.uploadLimit, r.handler.UploadReceipt)
	}

	categories := router.Group("/expense-categories")
	categories.Use(r.auth)
	{
		categories.POST("", r.handler.CreateCategory)
		categories.GET("", r.handler.ListCategories)
		categories.PUT("/:id", r.handler.UpdateCategory)
		categories.DELETE("/:id", r.handler.DeleteCategory)
	}
}
