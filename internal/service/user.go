// Package service contains the business logic layer.
//
// Handlers parse and validate HTTP input; services enforce business
// rules (uniqueness, referential integrity, reconciliation) against
// the repository interfaces; repositories talk SQL. Services return
// apperror values — never HTTP status codes — and the handler package
// maps them at the boundary.
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

// UserService handles user CRUD through both API versions. Every write
// goes through the version package so the v1 and v2 representations
// stay mirrored in storage.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{users: users, passwords: passwords, logger: logger}
}

// List returns all users. Shaping to the v1 or v2 view happens at the
// handler, per the requested API version.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("falha ao listar usuários", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listando usuários: %w", err)
	}
	return users, nil
}

// Get returns one user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// CreateV1 creates a user through the legacy representation. The v2
// mirror fields are populated as far as derivable (tipo_usuario only;
// split names stay null).
func (s *UserService) CreateV1(ctx context.Context, req version.CreateUserV1) (*model.User, error) {
	if err := s.checkEmailFree(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(req.Senha)
	if err != nil {
		return nil, fmt.Errorf("criando usuário: %w", err)
	}

	user := version.NewUserFromV1(req, hash)
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("falha ao criar usuário v1",
			slog.String("email", req.Email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("criando usuário: %w", err)
	}

	s.logger.Info("usuário criado",
		slog.Int64("id", user.ID),
		slog.String("versao", "v1"),
	)
	return user, nil
}

// CreateV2 creates a user through the current representation, with an
// optional foto URL from the blob store. The legacy mirror (nome,
// papel) is fully derived.
func (s *UserService) CreateV2(ctx context.Context, req version.CreateUserV2, foto *string) (*model.User, error) {
	if err := s.checkEmailFree(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(req.Senha)
	if err != nil {
		return nil, fmt.Errorf("criando usuário: %w", err)
	}

	user := version.NewUserFromV2(req, hash)
	user.Foto = foto
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("falha ao criar usuário v2",
			slog.String("email", req.Email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("criando usuário: %w", err)
	}

	s.logger.Info("usuário criado",
		slog.Int64("id", user.ID),
		slog.String("versao", "v2"),
	)
	return user, nil
}

// UpdateV1 applies a legacy partial update. Fields absent from the
// request stay untouched in both representations.
func (s *UserService) UpdateV1(ctx context.Context, id int64, req version.UpdateUserV1) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if err := s.checkEmailFree(ctx, *req.Email, id); err != nil {
			return nil, err
		}
	}

	version.ApplyV1Update(user, req)

	if req.Senha != nil {
		hash, err := s.passwords.Hash(*req.Senha)
		if err != nil {
			return nil, fmt.Errorf("atualizando usuário %d: %w", id, err)
		}
		user.SenhaHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("atualizando usuário %d: %w", id, err)
	}

	s.logger.Info("usuário atualizado", slog.Int64("id", id), slog.String("versao", "v1"))
	return user, nil
}

// UpdateV2 applies a current partial update, with an optional new foto
// URL. Half-supplied split names are completed from stored values and
// the legacy nome recomputed (see version.ApplyV2Update).
func (s *UserService) UpdateV2(ctx context.Context, id int64, req version.UpdateUserV2, foto *string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if err := s.checkEmailFree(ctx, *req.Email, id); err != nil {
			return nil, err
		}
	}

	version.ApplyV2Update(user, req)
	if foto != nil {
		user.Foto = foto
	}

	if req.Senha != nil {
		hash, err := s.passwords.Hash(*req.Senha)
		if err != nil {
			return nil, fmt.Errorf("atualizando usuário %d: %w", id, err)
		}
		user.SenhaHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("atualizando usuário %d: %w", id, err)
	}

	s.logger.Info("usuário atualizado", slog.Int64("id", id), slog.String("versao", "v2"))
	return user, nil
}

// Delete confirms existence, removes the record and returns the
// pre-delete snapshot. A second delete of the same id gets NOT_FOUND.
func (s *UserService) Delete(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("removendo usuário %d: %w", id, err)
	}

	s.logger.Info("usuário removido", slog.Int64("id", id))
	return user, nil
}

// checkEmailFree enforces email uniqueness with a lookup pre-check.
// The UNIQUE column constraint remains the backstop against races.
func (s *UserService) checkEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("verificando email %s: %w", email, err)
	}
	if existing.ID == selfID {
		return nil
	}
	return apperror.EmailInUse(email)
}
