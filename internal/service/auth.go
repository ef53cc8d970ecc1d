package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
)

type RegisterRequest struct {
	UserID    string   `json:"user_id,omitempty"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Age       int      `json:"age,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// Register creates a new user. A caller-supplied user id is honored;
// otherwise one is derived from the current user count.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (string, error) {
	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	userID := req.UserID
	if userID == "" {
		count, err := s.repo.CountUsers(ctx)
		if err != nil {
			return "", err
		}
		userID = fmt.Sprintf("u_%d", count+1)
	}

	age := req.Age
	if age <= 0 {
		age = 25
	}

	user := &domain.User{
		ID:           userID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Age:          age,
		Interests:    req.Interests,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return "", err
	}

	s.logger.Info().Str("user_id", userID).Msg("user registered")
	return userID, nil
}

// Login verifies credentials and returns the user record.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
