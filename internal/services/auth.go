package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"erp-backend/internal/models"
	"erp-backend/internal/repository"
	"erp-backend/pkg/jwt"
	"erp-backend/pkg/logger"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the account persistence used by auth and user services.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

type AuthService struct {
	users   UserStore
	jwtUtil *jwt.JWTUtil
	log     *log.Entry
}

func NewAuthService(users UserStore, jwtUtil *jwt.JWTUtil) *AuthService {
	return &AuthService{
		users:   users,
		jwtUtil: jwtUtil,
		log:     logger.New("auth"),
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User      *models.AuthUser `json:"user"`
	Token     string           `json:"token"`
	ExpiresIn int64            `json:"expiresIn"`
}

func toAuthUser(u *models.User) *models.AuthUser {
	return &models.AuthUser{
		ID:        u.ID.Hex(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

// Login checks the password and issues a token. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID.Hex()).Warn("Failed to record last login")
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.WithField("user_id", user.ID.Hex()).Info("User logged in")
	return &LoginResponse{
		User:      toAuthUser(user),
		Token:     token,
		ExpiresIn: int64(s.jwtUtil.Expiry().Seconds()),
	}, nil
}

// RefreshToken exchanges a still-valid token for a fresh one, provided the
// account is still active.
func (s *AuthService) RefreshToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := s.jwtUtil.ValidateToken(tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	if _, err := s.activeUser(ctx, claims.UserID); err != nil {
		return "", err
	}

	token, err := s.jwtUtil.RefreshToken(tokenString)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	return token, nil
}

func (s *AuthService) GetUserProfile(ctx context.Context, userID string) (*models.AuthUser, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toAuthUser(user), nil
}

func (s *AuthService) activeUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	return user, nil
}
