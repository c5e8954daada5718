package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homeschool/internal/models"
	"homeschool/internal/responses"
	"homeschool/internal/services"
	"homeschool/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	user := &models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	tokens, err := h.authService.Register(user, req.Password)
	if err != nil {
		responses.Fail(c, err)
		return
	}

	responses.Success(c, http.StatusCreated, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	tokens, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, tokens)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	tokens, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	// The access token was already validated by the auth middleware;
	// reparse it here only to recover the jti for blacklisting.
	var jti string
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 {
			if claims, err := utils.VerifyJWT(parts[1], utils.AccessTokenSecret); err == nil {
				jti = claims.ID
			}
		}
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken, jti); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.NoContent(c)
}

type passwordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		responses.Fail(c, err)
		return
	}
	// Always 200: existence of an account is not disclosed.
	responses.Success(c, http.StatusOK, gin.H{
		"message": "if the address is registered, a reset link has been sent",
	})
}

type passwordResetConfirm struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req passwordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	if err := h.authService.ConfirmPasswordReset(req.Token, req.NewPassword); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"message": "password updated"})
}

type verifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.FailBinding(c, err)
		return
	}

	if err := h.authService.VerifyEmail(req.Token); err != nil {
		responses.Fail(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"message": "email verified"})
}
