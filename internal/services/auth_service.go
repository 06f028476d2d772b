package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/internal/repositories"
	"github.com/ArowuTest/lotto645-backend/internal/utils"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl authenticates admin accounts and issues JWTs
type AuthServiceImpl struct {
	adminRepo repositories.AdminUserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(adminRepo repositories.AdminUserRepository, jwtSecret string, tokenTTL time.Duration) *AuthServiceImpl {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthServiceImpl{
		adminRepo: adminRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Login handles admin login
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	// 1. Find the account
	user, err := s.adminRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			slog.Warn("Login attempt for unknown admin", "email", req.Email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	// 2. Compare password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		slog.Warn("Login attempt with wrong password", "email", user.Email)
		return nil, ErrInvalidCredentials
	}

	// 3. Issue token
	token, expiresAt, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("Admin logged in", "email", user.Email)
	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Email:     user.Email,
		Role:      user.Role,
	}, nil
}

// EnsureAdmin creates the admin account when it does not exist yet. Empty
// credentials are a no-op.
func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	_, err := s.adminRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	if _, err := s.adminRepo.Create(ctx, &models.AdminUser{
		Email:     email,
		Password:  string(hashedPassword),
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	slog.Info("Admin account created", "email", email)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
