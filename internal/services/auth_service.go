package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"homeschool/internal/apperrors"
	"homeschool/internal/config"
	"homeschool/internal/email"
	"homeschool/internal/models"
	"homeschool/internal/repositories"
	"homeschool/internal/utils"
)

const (
	passwordResetTTL = time.Hour
	emailVerifyTTL   = 48 * time.Hour
)

type AuthService struct {
	userRepo    *repositories.UserRepository
	sessionRepo *repositories.SessionRepository
	tokenRepo   *repositories.ActionTokenRepository
	redisRepo   *repositories.RedisRepository
	emailer     email.Service
	cfg         *config.Config
}

func NewAuthService(
	userRepo *repositories.UserRepository,
	sessionRepo *repositories.SessionRepository,
	tokenRepo *repositories.ActionTokenRepository,
	redisRepo *repositories.RedisRepository,
	emailer email.Service,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokenRepo:   tokenRepo,
		redisRepo:   redisRepo,
		emailer:     emailer,
		cfg:         cfg,
	}
}

// TokenPair is what login/register/refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

func (s *AuthService) Register(user *models.User, password string) (*TokenPair, error) {
	existing, err := s.userRepo.FindUserByEmail(user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.DuplicateEmail()
	}

	hashed, err := utils.Hash(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hashed)

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.sendVerificationEmail(user)

	return s.issueTokens(user)
}

func (s *AuthService) Login(emailAddr, password string) (*TokenPair, error) {
	user, err := s.userRepo.FindUserByEmail(emailAddr)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.InvalidCredentials()
	}

	if err := utils.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	if err := s.userRepo.TouchLastLogin(user.ID); err != nil {
		log.Printf("failed to record last login for %s: %v", user.ID, err)
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	access, refresh, _, err := utils.GenerateTokens(user.ID)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		UserID:           user.ID,
		RefreshTokenHash: utils.HashToken(refresh),
		ExpiresAt:        time.Now().Add(utils.RefreshTokenTTL),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(utils.AccessTokenTTL.Seconds()),
	}, nil
}

// Refresh rotates the session: the presented token's session is revoked
// and a fresh pair is issued. A revoked or expired session is rejected.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	_, err := utils.VerifyJWT(refreshToken, utils.RefreshTokenSecret)
	if err != nil {
		if err == utils.ErrTokenExpired {
			return nil, apperrors.TokenExpired()
		}
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	session, err := s.sessionRepo.FindByTokenHash(utils.HashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.Unauthorized("refresh token not recognized")
	}
	if session.IsRevoked {
		// Reuse of a rotated token: revoke the whole family.
		if err := s.sessionRepo.RevokeAllForUser(session.UserID); err != nil {
			log.Printf("failed to revoke sessions for %s: %v", session.UserID, err)
		}
		return nil, apperrors.Unauthorized("refresh token has been revoked")
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, apperrors.TokenExpired()
	}

	user, err := s.userRepo.FindUserByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Unauthorized("account no longer exists")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	newSession, err := s.sessionRepo.FindByTokenHash(utils.HashToken(pair.RefreshToken))
	if err == nil && newSession != nil {
		if err := s.sessionRepo.Rotate(session.ID, newSession.ID); err != nil {
			log.Printf("failed to rotate session %s: %v", session.ID, err)
		}
	}

	return pair, nil
}

// Logout revokes the refresh session and blacklists the access token's
// jti for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, refreshToken, accessJTI string) error {
	session, err := s.sessionRepo.FindByTokenHash(utils.HashToken(refreshToken))
	if err != nil {
		return err
	}
	if session != nil {
		if err := s.sessionRepo.Revoke(session.ID); err != nil {
			return err
		}
	}

	if accessJTI != "" {
		if err := s.redisRepo.Blacklist(ctx, accessJTI, utils.AccessTokenTTL); err != nil {
			log.Printf("failed to blacklist token %s: %v", accessJTI, err)
		}
	}
	return nil
}

// RequestPasswordReset mails a single-use reset link. It succeeds even
// when no account matches, so the endpoint can't be used to probe for
// registered emails.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindUserByEmail(emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := utils.RandomToken()
	if err != nil {
		return err
	}

	record := &models.ActionToken{
		UserID:    user.ID,
		Purpose:   models.TokenPurposePasswordReset,
		TokenHash: utils.HashToken(token),
		ExpiresAt: time.Now().Add(passwordResetTTL),
	}
	if err := s.tokenRepo.Create(record); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.PublicBaseURL, token)
	msg := email.Message{
		ToEmail: user.Email,
		ToName:  user.FirstName + " " + user.LastName,
		Subject: "Reset your password",
		TextBody: "We received a request to reset your password.\n\n" +
			"Open this link to choose a new one (valid for 1 hour):\n" + link +
			"\n\nIf you didn't ask for this, you can ignore this email.",
	}
	if err := s.emailer.Send(ctx, msg); err != nil {
		log.Printf("failed to send password reset email to %s: %v", user.Email, err)
	}
	return nil
}

func (s *AuthService) ConfirmPasswordReset(token, newPassword string) error {
	record, err := s.tokenRepo.FindByHash(utils.HashToken(token), models.TokenPurposePasswordReset)
	if err != nil {
		return err
	}
	if record == nil || !record.Usable(time.Now()) {
		return apperrors.Unauthorized("reset token is invalid or expired")
	}

	used, err := s.tokenRepo.MarkUsed(record.TokenHash)
	if err != nil {
		return err
	}
	if !used {
		return apperrors.Unauthorized("reset token is invalid or expired")
	}

	hashed, err := utils.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(record.UserID, string(hashed)); err != nil {
		return err
	}

	// A password change invalidates every open session.
	return s.sessionRepo.RevokeAllForUser(record.UserID)
}

func (s *AuthService) VerifyEmail(token string) error {
	record, err := s.tokenRepo.FindByHash(utils.HashToken(token), models.TokenPurposeEmailVerify)
	if err != nil {
		return err
	}
	if record == nil || !record.Usable(time.Now()) {
		return apperrors.Unauthorized("verification token is invalid or expired")
	}

	used, err := s.tokenRepo.MarkUsed(record.TokenHash)
	if err != nil {
		return err
	}
	if !used {
		return apperrors.Unauthorized("verification token is invalid or expired")
	}

	return s.userRepo.MarkEmailVerified(record.UserID)
}

func (s *AuthService) sendVerificationEmail(user *models.User) {
	token, err := utils.RandomToken()
	if err != nil {
		log.Printf("failed to generate verification token: %v", err)
		return
	}

	record := &models.ActionToken{
		UserID:    user.ID,
		Purpose:   models.TokenPurposeEmailVerify,
		TokenHash: utils.HashToken(token),
		ExpiresAt: time.Now().Add(emailVerifyTTL),
	}
	if err := s.tokenRepo.Create(record); err != nil {
		log.Printf("failed to store verification token: %v", err)
		return
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.PublicBaseURL, token)
	msg := email.Message{
		ToEmail: user.Email,
		ToName:  user.FirstName + " " + user.LastName,
		Subject: "Verify your email address",
		TextBody: "Welcome! Please confirm your email address by opening:\n" + link +
			"\n\nThe link is valid for 48 hours.",
	}
	if err := s.emailer.Send(context.Background(), msg); err != nil {
		log.Printf("failed to send verification email to %s: %v", user.Email, err)
	}
}
