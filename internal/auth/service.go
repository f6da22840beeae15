// Package auth registers and authenticates shoppers and resolves bearer
// tokens back to accounts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xyzlearns/ShopEase1/internal/models"
	"github.com/xyzlearns/ShopEase1/internal/store"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// Registration carries the fields accepted by Register.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Service ties the user repository to token issuance.
type Service struct {
	users  store.Users
	tokens *TokenManager
}

func NewService(users store.Users, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates an account and issues a token for it.
func (s *Service) Register(ctx context.Context, reg Registration) (*models.User, string, error) {
	email := strings.TrimSpace(reg.Email)

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, "", ErrUserExists
	}

	var pw models.Password
	if err := pw.Set(reg.Password); err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: pw.Hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, "", ErrUserExists
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate checks email and password. Unknown email and wrong password
// both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	ok, err := models.Password{Hash: user.PasswordHash}.Matches(password)
	if err != nil {
		return nil, "", fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Resolve maps a bearer token to its account.
func (s *Service) Resolve(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
