package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ArowuTest/lottery-results-backend/internal/models"
	"github.com/ArowuTest/lottery-results-backend/internal/repositories"
	"github.com/ArowuTest/lottery-results-backend/pkg/jwt"
)

// AuthService authenticates admin users.
type AuthService struct {
	adminRepo repositories.AdminUserRepository
	tokens    *jwt.TokenService
	logger    *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repositories.AdminUserRepository, tokens *jwt.TokenService, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{adminRepo: adminRepo, tokens: tokens, logger: logger}
}

// Login checks the password and issues an access token.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn("auth.login.unknown_email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load admin user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Warn("auth.login.bad_password", "userId", user.ID.Hex())
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	s.logger.Info("auth.login.ok", "userId", user.ID.Hex())
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// EnsureAdmin creates the admin account if no account uses email yet.
// It returns true when an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	_, err := s.adminRepo.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return false, fmt.Errorf("failed to look up admin user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.AdminUser{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := s.adminRepo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}
	s.logger.Info("auth.admin.seeded", "userId", user.ID.Hex())
	return true, nil
}
