package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/Adal612Git/miNegocioApp-backend/internal/auth/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/auth/repository"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/config"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/database"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
)

const (
	bcryptCost    = 12
	resetTokenTTL = 30 * time.Minute
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetToken  = errors.New("reset token is invalid or expired")
)

type AuthService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.TokenResponse, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenResponse, error)
	Me(ctx context.Context, userID string) (*domain.Profile, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	StartResetTokenPurge() *cron.Cron
}

type authServiceImpl struct {
	repo   repository.AuthRepository
	tx     database.TxRunner
	mailer Mailer
	cfg    config.AuthConfig
}

func NewAuthService(repo repository.AuthRepository, tx database.TxRunner, mailer Mailer, cfg config.AuthConfig) AuthService {
	return &authServiceImpl{repo: repo, tx: tx, mailer: mailer, cfg: cfg}
}

func (s *authServiceImpl) Register(ctx context.Context, req domain.RegisterRequest) (*domain.TokenResponse, error) {
	_, err := s.repo.FindUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	business := &domain.Business{Name: req.BusinessName, CreatedAt: now}
	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
	}

	// business and user are created together or not at all
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateBusiness(ctx, business); err != nil {
			return err
		}
		user.BusinessID = business.ID
		return s.repo.CreateUser(ctx, user)
	})
	if errors.Is(err, repository.ErrEmailTaken) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Register: new business registered: " + business.ID)
	return s.issueToken(user)
}

func (s *authServiceImpl) Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenResponse, error) {
	user, err := s.repo.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(user)
}

func (s *authServiceImpl) issueToken(user *domain.User) (*domain.TokenResponse, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":     user.ID,
		"business_id": user.BusinessID,
		"iat":         now.Unix(),
		"exp":         now.Add(time.Duration(s.cfg.TokenTTLHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	return &domain.TokenResponse{Token: signed}, nil
}

func (s *authServiceImpl) Me(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	business, err := s.repo.FindBusinessByID(ctx, user.BusinessID)
	if err != nil && !errors.Is(err, repository.ErrBusinessNotFound) {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:     user.ID,
		BusinessID: user.BusinessID,
		Name:       user.Name,
		Email:      user.Email,
	}
	if business != nil {
		profile.BusinessName = business.Name
	}
	return profile, nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ForgotPassword never tells the caller whether the email exists. The raw
// token goes out by mail only; the store keeps its sha256.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	reset := &domain.PasswordReset{
		UserID:    user.ID,
		TokenHash: hashResetToken(token),
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	}
	if err := s.repo.CreatePasswordReset(ctx, reset); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(user.Email, token); err != nil {
		logger.Error("ForgotPassword: failed to send reset email to "+user.Email, err)
		return err
	}
	return nil
}

func (s *authServiceImpl) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	reset, err := s.repo.FindPasswordResetByTokenHash(ctx, hashResetToken(req.Token))
	if errors.Is(err, repository.ErrResetNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}
	if time.Now().UTC().After(reset.ExpiresAt) {
		return ErrInvalidResetToken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateUserPassword(ctx, reset.UserID, string(passwordHash)); err != nil {
		return err
	}

	// a used token must not work twice
	if err := s.repo.DeletePasswordReset(ctx, reset.ID); err != nil {
		logger.Warn("ResetPassword: failed to delete used reset record " + reset.ID)
	}
	return nil
}

// StartResetTokenPurge schedules an hourly sweep of expired reset records.
// The caller owns the returned cron and stops it on shutdown.
func (s *authServiceImpl) StartResetTokenPurge() *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		deleted, err := s.repo.DeleteExpiredPasswordResets(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("ResetTokenPurge: sweep failed", err)
			return
		}
		if deleted > 0 {
			logger.Info("ResetTokenPurge: removed expired reset records")
		}
	})
	if err != nil {
		logger.Error("ResetTokenPurge: failed to schedule", err)
		return c
	}
	c.Start()
	logger.Info("Reset token purge scheduled hourly")
	return c
}
