package service

import (
	"context"
	"strings"

	"github.com/notevault/notevault/concurrency/worker"
	"github.com/notevault/notevault/crypto"
	"github.com/notevault/notevault/data/repository"
	"github.com/notevault/notevault/ecode"
	"github.com/notevault/notevault/logging/logger"
	"github.com/notevault/notevault/security/jwt"
)

const minPasswordLength = 6

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthService manages account registration, credential verification and
// session tokens.
type AuthService struct {
	users  repository.UserRepository
	tokens *jwt.TokenManager
	pool   *worker.Pool
	logger *logger.Logger
}

// NewAuthService creates an auth service. The worker pool is used to keep
// password hashing off the request goroutines.
func NewAuthService(users repository.UserRepository, tokens *jwt.TokenManager, pool *worker.Pool, log *logger.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		pool:   pool,
		logger: log,
	}
}

// Register validates the input, enforces username and email uniqueness and
// stores the account with a hashed password.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*repository.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if input.Username == "" {
		return nil, ecode.Validation(ecode.FieldIsRequired("username"))
	}
	if input.Email == "" {
		return nil, ecode.Validation(ecode.FieldIsRequired("email"))
	}
	if input.Password == "" {
		return nil, ecode.Validation(ecode.FieldIsRequired("password"))
	}
	if len(input.Password) < minPasswordLength {
		return nil, ecode.Validation("password must be at least 6 characters")
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, ecode.Conflict("username already taken")
	} else if !ecode.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, ecode.Conflict("email already taken")
	} else if !ecode.IsNotFound(err) {
		return nil, err
	}

	var hashed string
	err := s.pool.Do(ctx, func() error {
		var hashErr error
		hashed, hashErr = crypto.HashPassword(input.Password)
		return hashErr
	})
	if err != nil {
		s.logger.Error(ctx, "failed to hash password", "error", err)
		return nil, ecode.Internal("failed to create user", err)
	}

	user, err := s.users.Create(ctx, &repository.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
	})
	if err != nil {
		if !ecode.IsConflict(err) {
			s.logger.Error(ctx, "failed to create user", "error", err)
		}
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID.Hex())
	return user, nil
}

// Authenticate verifies a username and password pair. Callers should present
// a single "invalid username or password" message to clients; the returned
// errors stay distinct for logging.
func (s *AuthService) Authenticate(ctx context.Context, input *LoginInput) (*repository.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, ecode.Validation("username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if ecode.IsNotFound(err) {
			return nil, ecode.Authentication("invalid username")
		}
		return nil, err
	}

	var matched bool
	err = s.pool.Do(ctx, func() error {
		matched = crypto.ComparePassword(user.Password, input.Password)
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "failed to compare password", "error", err)
		return nil, ecode.Internal("failed to verify credentials", err)
	}
	if !matched {
		return nil, ecode.Authentication("invalid password")
	}

	return user, nil
}

// IssueToken creates a signed session token for the given account.
func (s *AuthService) IssueToken(ctx context.Context, accountID string) (string, error) {
	token, err := s.tokens.Generate(accountID)
	if err != nil {
		s.logger.Error(ctx, "failed to generate token", "error", err)
		return "", ecode.Internal("failed to issue token", err)
	}
	return token, nil
}

// VerifyToken decodes a session token and resolves its subject to a live
// account.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*repository.User, error) {
	if tokenString == "" {
		return nil, ecode.Authentication("no token provided")
	}

	subject, err := s.tokens.Decode(tokenString)
	if err != nil {
		return nil, ecode.Authentication("invalid or expired token")
	}

	user, err := s.users.FindByID(ctx, subject)
	if err != nil {
		if ecode.IsNotFound(err) || ecode.KindOf(err) == ecode.KindValidation {
			return nil, ecode.NotFound("user not found")
		}
		return nil, err
	}

	return user, nil
}
