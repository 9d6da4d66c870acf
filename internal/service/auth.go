package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/psouza/gerador-provas/internal/apperror"
	"github.com/psouza/gerador-provas/internal/auth"
	"github.com/psouza/gerador-provas/internal/model"
	"github.com/psouza/gerador-provas/internal/repository"
	"github.com/psouza/gerador-provas/internal/version"
)

// AuthService orchestrates registration, login and "me".
type AuthService struct {
	users     repository.UserRepository
	userSvc   *UserService
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService. Registration delegates to the
// UserService so the v1/v2 reconciliation runs through one code path.
func NewAuthService(
	users repository.UserRepository,
	userSvc *UserService,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		userSvc:   userSvc,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user record with the issued token so the
// handler can respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a user through the v2 representation and issues a
// bearer token for the new account.
func (s *AuthService) Register(ctx context.Context, req version.CreateUserV2) (*AuthResult, error) {
	user, err := s.userSvc.CreateV2(ctx, req, nil)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(auth.Identity{ID: user.ID, Email: user.Email, Papel: user.Papel})
	if err != nil {
		return nil, fmt.Errorf("emitindo token para usuário %d: %w", user.ID, err)
	}

	s.logger.Info("usuário registrado", slog.Int64("id", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates email+senha and issues a token. Unknown email
// and wrong password return the same generic UNAUTHORIZED — the
// response must not reveal which half was wrong. The real cause is
// logged at Warn.
func (s *AuthService) Login(ctx context.Context, req version.LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Warn("login recusado: email desconhecido", slog.String("email", req.Email))
			return nil, apperror.Unauthorized("email ou senha inválidos")
		}
		return nil, fmt.Errorf("autenticando %s: %w", req.Email, err)
	}

	if err := s.passwords.Verify(user.SenhaHash, req.Senha); err != nil {
		s.logger.Warn("login recusado: senha incorreta", slog.Int64("id", user.ID))
		return nil, apperror.Unauthorized("email ou senha inválidos")
	}

	token, err := s.tokens.Issue(auth.Identity{ID: user.ID, Email: user.Email, Papel: user.Papel})
	if err != nil {
		return nil, fmt.Errorf("emitindo token para usuário %d: %w", user.ID, err)
	}

	s.logger.Info("login efetuado", slog.Int64("id", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

// Me returns the record behind an authenticated identity.
func (s *AuthService) Me(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
