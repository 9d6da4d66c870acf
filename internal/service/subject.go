package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/psouza/gerador-provas/internal/apperror"
	"github.com/psouza/gerador-provas/internal/model"
	"github.com/psouza/gerador-provas/internal/repository"
)

// SubjectService handles disciplina CRUD with referential-integrity
// checks against users.
type SubjectService struct {
	subjects repository.SubjectRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

// NewSubjectService creates a SubjectService.
func NewSubjectService(subjects repository.SubjectRepository, users repository.UserRepository, logger *slog.Logger) *SubjectService {
	return &SubjectService{subjects: subjects, users: users, logger: logger}
}

// List returns all disciplinas.
func (s *SubjectService) List(ctx context.Context) ([]model.Subject, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		s.logger.Error("falha ao listar disciplinas", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listando disciplinas: %w", err)
	}
	return subjects, nil
}

// Get returns one disciplina by id.
func (s *SubjectService) Get(ctx context.Context, id int64) (*model.Subject, error) {
	return s.subjects.GetByID(ctx, id)
}

// Create validates the name pre-check and the professor FK, then
// inserts. ativa defaults to true when the payload omits it.
func (s *SubjectService) Create(ctx context.Context, nome string, ativa *bool, professorID int64) (*model.Subject, error) {
	nome = strings.TrimSpace(nome)

	inUse, err := s.subjects.NomeInUse(ctx, nome, 0)
	if err != nil {
		return nil, fmt.Errorf("criando disciplina: %w", err)
	}
	if inUse {
		return nil, apperror.Conflict(fmt.Sprintf("disciplina %q já existe", nome))
	}

	if err := s.checkProfessor(ctx, professorID); err != nil {
		return nil, err
	}

	subject := &model.Subject{
		Nome:        nome,
		Ativa:       true,
		ProfessorID: professorID,
	}
	if ativa != nil {
		subject.Ativa = *ativa
	}

	if err := s.subjects.Create(ctx, subject); err != nil {
		s.logger.Error("falha ao criar disciplina",
			slog.String("nome", nome),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("criando disciplina: %w", err)
	}

	s.logger.Info("disciplina criada", slog.Int64("id", subject.ID), slog.String("nome", nome))
	return subject, nil
}

// Update applies a partial update, re-validating the professor FK when
// the field is supplied.
func (s *SubjectService) Update(ctx context.Context, id int64, nome *string, ativa *bool, professorID *int64) (*model.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if nome != nil {
		trimmed := strings.TrimSpace(*nome)
		if trimmed != subject.Nome {
			inUse, err := s.subjects.NomeInUse(ctx, trimmed, id)
			if err != nil {
				return nil, fmt.Errorf("atualizando disciplina %d: %w", id, err)
			}
			if inUse {
				return nil, apperror.Conflict(fmt.Sprintf("disciplina %q já existe", trimmed))
			}
		}
		subject.Nome = trimmed
	}

	if professorID != nil {
		if err := s.checkProfessor(ctx, *professorID); err != nil {
			return nil, err
		}
		subject.ProfessorID = *professorID
	}

	if ativa != nil {
		subject.Ativa = *ativa
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, fmt.Errorf("atualizando disciplina %d: %w", id, err)
	}

	s.logger.Info("disciplina atualizada", slog.Int64("id", id))
	return subject, nil
}

// Delete confirms existence, removes and returns the pre-delete
// snapshot. Disciplinas still referenced by questões surface CONFLICT
// through the FK restrict policy.
func (s *SubjectService) Delete(ctx context.Context, id int64) (*model.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.subjects.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("removendo disciplina %d: %w", id, err)
	}

	s.logger.Info("disciplina removida", slog.Int64("id", id))
	return subject, nil
}

func (s *SubjectService) checkProfessor(ctx context.Context, professorID int64) error {
	exists, err := s.users.Exists(ctx, professorID)
	if err != nil {
		return fmt.Errorf("verificando professor %d: %w", professorID, err)
	}
	if !exists {
		return apperror.MissingReference("professorId", professorID)
	}
	return nil
}
