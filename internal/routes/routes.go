package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"homeschool/internal/handlers"
	"homeschool/internal/middlewares"
)

// Handlers bundles every resource handler for route registration.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Teacher    *handlers.TeacherHandler
	Student    *handlers.StudentHandler
	Calendar   *handlers.CalendarHandler
	Assignment *handlers.AssignmentHandler
	Attachment *handlers.AttachmentHandler
	Task       *handlers.TaskHandler
	ReportCard *handlers.ReportCardHandler
	Expense    *handlers.ExpenseHandler
	Subject    *handlers.SubjectHandler
	LessonPlan *handlers.LessonPlanHandler
}

func RegisterRoutes(router *gin.Engine, h Handlers, auth gin.HandlerFunc, limiter *middlewares.RateLimiter) {
	api := router.Group("/api/v1")
	api.Use(limiter.Limit("standard", 1000, time.Hour))

	uploadLimit := limiter.Limit("uploads", 50, time.Hour)

	NewAuthRoutes(h.Auth, auth, limiter).RegisterRoutes(api)
	NewTeacherRoutes(h.Teacher, auth, uploadLimit).RegisterRoutes(api)
	NewStudentRoutes(h.Student, auth).RegisterRoutes(api)
	NewCalendarRoutes(h.Calendar, auth).RegisterRoutes(api)
	NewAssignmentRoutes(h.Assignment, auth, uploadLimit).RegisterRoutes(api)
	NewAttachmentRoutes(h.Attachment, auth).RegisterRoutes(api)
	NewTaskRoutes(h.Task, auth).RegisterRoutes(api)
	NewReportCardRoutes(h.ReportCard, auth).RegisterRoutes(api)
	NewExpenseRoutes(h.Expense, auth, uploadLimit).RegisterRoutes(api)
	NewSubjectRoutes(h.Subject, auth).RegisterRoutes(api)
	NewLessonPlanRoutes(h.LessonPlan, auth, uploadLimit).RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
