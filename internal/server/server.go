package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"homeschool/internal/config"
	"homeschool/internal/database"
	"homeschool/internal/email"
	"homeschool/internal/handlers"
	"homeschool/internal/jobs"
	"homeschool/internal/middlewares"
	"homeschool/internal/repositories"
	"homeschool/internal/routes"
	"homeschool/internal/services"
	"homeschool/internal/storage"
)

// Server owns the HTTP listener plus the resources that need an
// orderly shutdown.
type Server struct {
	http *http.Server
	pool *pgxpool.Pool
	jobs *jobs.Runner
}

func NewServer() (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	pool, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.RunMigrations(pool); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connecting to Redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Println("Connected to Redis successfully")
	}

	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	var emailer email.Service
	if cfg.SendgridAPIKey != "" {
		emailer = email.NewSendgridService(cfg.SendgridAPIKey, cfg.EmailFromName, cfg.EmailFrom)
	} else {
		log.Println("SENDGRID_API_KEY not set, email output goes to the log")
		emailer = email.NewConsoleService()
	}

	// Dependency injection
	userRepo := repositories.NewUserRepository(pool)
	sessionRepo := repositories.NewSessionRepository(pool)
	tokenRepo := repositories.NewActionTokenRepository(pool)
	redisRepo := repositories.NewRedisRepository(rdb)
	studentRepo := repositories.NewStudentRepository(pool)
	eventRepo := repositories.NewEventRepository(pool)
	eventTypeRepo := repositories.NewEventTypeRepository(pool)
	attendanceRepo := repositories.NewAttendanceRepository(pool)
	subjectRepo := repositories.NewSubjectRepository(pool)
	assignmentRepo := repositories.NewAssignmentRepository(pool)
	attachmentRepo := repositories.NewAttachmentRepository(pool)
	taskRepo := repositories.NewTaskRepository(pool)
	reportCardRepo := repositories.NewReportCardRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	expenseCategoryRepo := repositories.NewExpenseCategoryRepository(pool)
	lessonPlanRepo := repositories.NewLessonPlanRepository(pool)

	authService := services.NewAuthService(userRepo, sessionRepo, tokenRepo, redisRepo, emailer, cfg)
	teacherService := services.NewTeacherService(userRepo, store)
	studentService := services.NewStudentService(studentRepo)
	calendarService := services.NewCalendarService(eventRepo, eventTypeRepo, attendanceRepo, studentRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, studentRepo, subjectRepo)
	attachmentService := services.NewAttachmentService(attachmentRepo, assignmentRepo, lessonPlanRepo, expenseRepo, store)
	taskService := services.NewTaskService(taskRepo)
	reportCardService := services.NewReportCardService(reportCardRepo, studentRepo, subjectRepo)
	expenseService := services.NewExpenseService(expenseRepo, expenseCategoryRepo, studentRepo, subjectRepo, store)
	subjectService := services.NewSubjectService(subjectRepo)
	lessonPlanService := services.NewLessonPlanService(lessonPlanRepo, subjectRepo)

	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Teacher:    handlers.NewTeacherHandler(teacherService),
		Student:    handlers.NewStudentHandler(studentService),
		Calendar:   handlers.NewCalendarHandler(calendarService),
		Assignment: handlers.NewAssignmentHandler(assignmentService, attachmentService),
		Attachment: handlers.NewAttachmentHandler(attachmentService),
		Task:       handlers.NewTaskHandler(taskService),
		ReportCard: handlers.NewReportCardHandler(reportCardService),
		Expense:    handlers.NewExpenseHandler(expenseService),
		Subject:    handlers.NewSubjectHandler(subjectService),
		LessonPlan: handlers.NewLessonPlanHandler(lessonPlanService, attachmentService),
	}

	router := gin.Default()
	router.MaxMultipartMemory = 16 << 20

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authMiddleware := middlewares.Authenticate(redisRepo)
	limiter := middlewares.NewRateLimiter(rdb)
	routes.RegisterRoutes(router, h, authMiddleware, limiter)

	// Disk-backed uploads are served straight from the upload
	// directory; with B2 the URLs point at the bucket instead.
	if _, ok := store.(*storage.DiskStore); ok {
		router.Static("/files", cfg.UploadDir)
	}

	runner := jobs.NewRunner(sessionRepo, tokenRepo, taskRepo, userRepo, emailer)
	if err := runner.Start(); err != nil {
		return nil, fmt.Errorf("starting background jobs: %w", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return &Server{http: httpServer, pool: pool, jobs: runner}, nil
}

func (s *Server) Addr() string {
	return s.http.Addr
}

func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests, stops the job runner and closes
// the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.jobs.Stop()
	s.pool.Close()
	return err
}
