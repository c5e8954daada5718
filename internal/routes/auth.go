package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"homeschool/internal/handlers"
	"homeschool/internal/middlewares"
)

type AuthRoutes struct {
	handler *handlers.AuthHandler
	auth    gin.HandlerFunc
	limiter *middlewares.RateLimiter
}

func NewAuthRoutes(handler *handlers.AuthHandler, auth gin.HandlerFunc, limiter *middlewares.RateLimiter) *AuthRoutes {
	return &AuthRoutes{handler: handler, auth: auth, limiter: limiter}
}

func (r *AuthRoutes) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		// Public routes, tightly rate limited
		authLimit := r.limiter.Limit("auth", 5, 15*time.Minute)
		auth.POST("/register", authLimit, r.handler.Register)
		auth.POST("/login", authLimit, r.handler.Login)
		auth.POST("/refresh", authLimit, r.handler.Refresh)
		auth.POST("/verify-email", authLimit, r.handler.VerifyEmail)

		resetLimit := r.limiter.Limit("password-reset", 3, time.Hour)
		auth.POST("/password-reset", resetLimit, r.handler.RequestPasswordReset)
		auth.POST("/password-reset/confirm", resetLimit, r.handler.ConfirmPasswordReset)

		// Protected routes
		protected := auth.Group("/")
		protected.Use(r.auth)
		protected.POST("/logout", r.handler.Logout)
	}
}
