package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"workout_api/internal/common"
	"workout_api/internal/common/security"
	"workout_api/internal/domain/model"
	"workout_api/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo       repository.UserRepository
	sessionRepo    repository.SessionRepository
	tokens         *security.TokenManager
	storageTimeout time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, tokens *security.TokenManager, storageTimeout time.Duration) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		sessionRepo:    sessionRepo,
		tokens:         tokens,
		storageTimeout: storageTimeout,
	}
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,bcryptmax"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	email := req.Email

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}

	sctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	if err := s.userRepo.Create(sctx, user); err != nil {
		// Repo returns common.ErrConflict for a taken email
		return nil, storageErr("create user", err)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	slog.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return &AuthResponse{Email: user.Email, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, common.ErrUnauthorized
	}

	sctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	user, err := s.userRepo.FindByEmail(sctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, storageErr("find user", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{Email: user.Email, Token: token}, nil
}

// Logout revokes the session's token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, session security.Session) error {
	sctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	if err := s.sessionRepo.Revoke(sctx, session.TokenID, time.Until(session.ExpiresAt)); err != nil {
		return storageErr("revoke session", err)
	}
	return nil
}

// Authenticate resolves a verified token's session to a live user. Revoked
// tokens and tokens whose user no longer exists are unauthorized.
func (s *AuthService) Authenticate(ctx context.Context, session security.Session) (string, error) {
	sctx, cancel := storageContext(ctx, s.storageTimeout)
	defer cancel()

	revoked, err := s.sessionRepo.IsRevoked(sctx, session.TokenID)
	if err != nil {
		return "", storageErr("check session", err)
	}
	if revoked {
		return "", common.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(sctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", storageErr("find user", err)
	}
	return user.ID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
