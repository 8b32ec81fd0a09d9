package services

import (
	"context"
	"errors"
	"log"
	"time"

	"jangja-school/internal/adapters/persistence/repositories"
	"jangja-school/internal/core/domain"
	"jangja-school/internal/pkg/jwt"
	"jangja-school/internal/pkg/password"
)

// AuthService handles authentication business logic
type AuthService struct {
	accountRepo repositories.AccountRepository
	tokens      *jwt.TokenManager
	denylist    TokenDenylist
}

// NewAuthService creates a new auth service. denylist may be nil, in which
// case logout is left to the client.
func NewAuthService(
	accountRepo repositories.AccountRepository,
	tokens *jwt.TokenManager,
	denylist TokenDenylist,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		tokens:      tokens,
		denylist:    denylist,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token     string                  `json:"token"`
	ExpiresAt time.Time               `json:"expiresAt"`
	User      *domain.AccountResponse `json:"user"`
}

// Login authenticates an account and issues a session token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Both fields are required
	if input == nil || input.Username == "" || input.Password == "" {
		return nil, domain.ErrMissingCredentials
	}

	// 2. Find account by username
	account, err := s.accountRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 3. Verify password
	if !password.Verify(input.Password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// 4. Issue token
	token, expiresAt, err := s.tokens.Issue(account.ID, account.Username, string(account.Role))
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Account logged in: %s (%s)", account.Username, account.Role)

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      account.ToResponse(),
	}, nil
}

// VerifyToken validates a session token and checks it was not revoked
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, domain.ErrTokenMissing
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, domain.ErrTokenRevoked
		}
	}

	return claims, nil
}

// Logout revokes token when a denylist is configured. Tokens that are
// already invalid are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.denylist == nil || token == "" {
		return nil
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil
	}

	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}

	log.Printf("✅ Token revoked for account: %s", claims.Username)
	return nil
}

// RevocationEnabled reports whether logout is enforced server-side
func (s *AuthService) RevocationEnabled() bool {
	return s.denylist != nil
}
