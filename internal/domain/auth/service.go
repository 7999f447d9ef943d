package auth

import (
	"context"
	"errors"
	"time"
)

const TokenTTL = 12 * time.Hour

type Service struct {
	store  StoreAPI
	secret string
}

func NewService(store StoreAPI, secret string) *Service {
	return &Service{store: store, secret: secret}
}

func (s *Service) Register(ctx context.Context, name, email, password, role string) (User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	if role != RoleAdmin {
		role = RoleStaff
	}
	return s.store.CreateUser(ctx, name, email, hash, role)
}

// Login verifies credentials and returns the user with a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := GenerateToken(s.secret, Claims{UserID: user.ID, Email: user.Email, Role: user.Role}, TokenTTL)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

func (s *Service) HasUsers(ctx context.Context) (bool, error) {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
