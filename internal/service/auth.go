package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
	"skillswap-backend/internal/security"
)

type authService struct {
	userRepo     repository.UserRepository
	ledgerRepo   repository.LedgerRepository
	tokenManager security.TokenManager
	signupGrant  int32
}

func NewAuthService(userRepo repository.UserRepository, ledgerRepo repository.LedgerRepository, tokenManager security.TokenManager, signupGrant int32) AuthService {
	return &authService{
		userRepo:     userRepo,
		ledgerRepo:   ledgerRepo,
		tokenManager: tokenManager,
		signupGrant:  signupGrant,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", "", domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", fmt.Errorf("failed to create user: %w", err)
	}

	// Starting credits so new members can make their first exchange.
	if s.signupGrant > 0 {
		if err := s.ledgerRepo.Credit(ctx, user.ID, s.signupGrant, domain.EntryTypeSignupGrant, nil, "Signup credit grant"); err != nil {
			logger.ErrorContext(ctx, "Failed to apply signup grant", "user_id", user.ID, "error", err)
		} else {
			user.Credits = s.signupGrant
		}
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, "", "", domain.ErrForbidden
		}
		return nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", domain.ErrForbidden
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokenManager.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}

	access, newRefresh, err := s.issueTokens(user)
	if err != nil {
		return "", "", err
	}
	return access, newRefresh, nil
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokenManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return access, refresh, nil
}
