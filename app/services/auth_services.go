package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/cafepos/app/repositories"
	"github.com/shashiranjanraj/cafepos/pkg/auth"
)

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Login mints a new token for the user matching both credentials and stores
// it as that user's only active session. ok is false, and nothing is
// written, when no user matches.
func (s *AuthService) Login(ctx context.Context, username, password string) (token auth.Token, ok bool, err error) {
	user, found, err := s.users.FindByCredentials(ctx, username, password)
	if err != nil {
		return "", false, fmt.Errorf("login: %w", err)
	}
	if !found {
		return "", false, nil
	}

	token = auth.Issue()
	if err := s.users.SetToken(ctx, user.ID, token.String()); err != nil {
		return "", false, fmt.Errorf("login: store token: %w", err)
	}
	return token, true, nil
}

// Authorize reports whether token is some user's current session token.
func (s *AuthService) Authorize(ctx context.Context, token auth.Token) (bool, error) {
	if token == "" {
		return false, nil
	}
	ok, err := s.users.HasToken(ctx, token.String())
	if err != nil {
		return false, fmt.Errorf("authorize: %w", err)
	}
	return ok, nil
}
