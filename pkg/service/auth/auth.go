// Package auth is the authentication boundary collaborator: it stores
// credentials, issues bearer tokens and resolves them back to a user id. The
// ledger core only ever sees the resolved id.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/securebank/ledger/pkg/config"
	"github.com/securebank/ledger/pkg/domain"
	"github.com/securebank/ledger/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

// Service implements registration, login and token resolution.
type Service struct {
	uow    repository.UnitOfWork
	cfg    config.Jwt
	logger *slog.Logger
}

// New creates an auth service.
func New(uow repository.UnitOfWork, cfg config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Register creates a user with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, username, email, password string) (u *domain.User, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		exists, err := users.ExistsByUsernameOrEmail(ctx, username, email)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: username or email already taken", domain.ErrAlreadyExists)
		}
		u = &domain.User{Username: username, Email: email, Password: string(hash)}
		return users.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "userID", u.ID, "username", u.Username)
	return u, nil
}

// Login verifies credentials and issues a signed token. Unknown identities and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, identity, password string) (string, *domain.User, error) {
	users, err := s.uow.UserRepository()
	if err != nil {
		return "", nil, err
	}
	u, err := users.GetByIdentity(ctx, identity)
	if err != nil {
		s.logger.Warn("login failed", "identity", identity)
		return "", nil, fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		s.logger.Warn("login failed", "identity", identity)
		return "", nil, fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
	}
	token, err := s.GenerateToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// GenerateToken signs a bearer token for the user.
func (s *Service) GenerateToken(u *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"exp":      time.Now().Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentUserID resolves the user id from a verified token.
func (s *Service) CurrentUserID(token *jwt.Token) (uint, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("%w: unexpected claims type", domain.ErrUnauthorized)
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("%w: missing user id claim", domain.ErrUnauthorized)
	}
	return uint(id), nil
}
