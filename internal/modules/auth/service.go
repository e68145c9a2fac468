package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stayhub/internal/domain"
)

type Service struct {
	users  userRepo
	tokens tokenIssuer
}

func NewService(users userRepo, tokens tokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a guest account. An email already used by a placeholder
// record (created by a public booking) is claimed by setting its password.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if !existing.IsPlaceholder {
			return nil, ErrEmailTaken
		}
		existing.PasswordHash = string(hash)
		existing.Name = req.Name
		existing.Phone = req.Phone
		existing.IsPlaceholder = false
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, err
		}
		return s.respond(existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		u := &domain.User{
			Email:        req.Email,
			PasswordHash: string(hash),
			Name:         req.Name,
			Phone:        req.Phone,
			Role:         domain.RoleGuest,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
		return s.respond(u)
	default:
		return nil, err
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.IsPlaceholder {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.respond(u)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) respond(u *domain.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}
