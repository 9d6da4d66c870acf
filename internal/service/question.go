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

// Difficulty bounds for questões.
const (
	MinDificuldade = 1
	MaxDificuldade = 5
)

// QuestionInput carries the fields of a questão create request after
// schema validation.
type QuestionInput struct {
	Enunciado       string
	Dificuldade     int
	RespostaCorreta *string
	DisciplinaID    int64
	AutorID         int64
	Ativa           *bool
}

// QuestionUpdate carries a partial update; nil means "not supplied".
type QuestionUpdate struct {
	Enunciado       *string
	Dificuldade     *int
	RespostaCorreta *string
	DisciplinaID    *int64
	AutorID         *int64
	Ativa           *bool
}

// QuestionService handles questão CRUD with referential-integrity
// checks against disciplinas and usuários.
type QuestionService struct {
	questions repository.QuestionRepository
	subjects  repository.SubjectRepository
	users     repository.UserRepository
	logger    *slog.Logger
}

// NewQuestionService creates a QuestionService.
func NewQuestionService(
	questions repository.QuestionRepository,
	subjects repository.SubjectRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *QuestionService {
	return &QuestionService{questions: questions, subjects: subjects, users: users, logger: logger}
}

// List returns all questões.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	questions, err := s.questions.List(ctx)
	if err != nil {
		s.logger.Error("falha ao listar questões", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listando questões: %w", err)
	}
	return questions, nil
}

// Get returns one questão by id.
func (s *QuestionService) Get(ctx context.Context, id int64) (*model.Question, error) {
	return s.questions.GetByID(ctx, id)
}

// Create validates dificuldade bounds and both FKs before inserting.
// Both checks run before any write, so an invalid reference leaves no
// row behind.
func (s *QuestionService) Create(ctx context.Context, in QuestionInput) (*model.Question, error) {
	if in.Dificuldade < MinDificuldade || in.Dificuldade > MaxDificuldade {
		return nil, apperror.InvalidField("dificuldade",
			fmt.Sprintf("dificuldade deve estar entre %d e %d", MinDificuldade, MaxDificuldade))
	}

	if err := s.checkDisciplina(ctx, in.DisciplinaID); err != nil {
		return nil, err
	}
	if err := s.checkAutor(ctx, in.AutorID); err != nil {
		return nil, err
	}

	question := &model.Question{
		Enunciado:       strings.TrimSpace(in.Enunciado),
		Dificuldade:     in.Dificuldade,
		RespostaCorreta: in.RespostaCorreta,
		DisciplinaID:    in.DisciplinaID,
		AutorID:         in.AutorID,
		Ativa:           true,
	}
	if in.Ativa != nil {
		question.Ativa = *in.Ativa
	}

	if err := s.questions.Create(ctx, question); err != nil {
		s.logger.Error("falha ao criar questão", slog.String("error", err.Error()))
		return nil, fmt.Errorf("criando questão: %w", err)
	}

	s.logger.Info("questão criada", slog.Int64("id", question.ID))
	return question, nil
}

// Update applies a partial update. FKs are re-validated whenever the
// corresponding field is supplied — a partial update naming a dead
// reference fails exactly like a create would.
func (s *QuestionService) Update(ctx context.Context, id int64, up QuestionUpdate) (*model.Question, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if up.Dificuldade != nil {
		if *up.Dificuldade < MinDificuldade || *up.Dificuldade > MaxDificuldade {
			return nil, apperror.InvalidField("dificuldade",
				fmt.Sprintf("dificuldade deve estar entre %d e %d", MinDificuldade, MaxDificuldade))
		}
		question.Dificuldade = *up.Dificuldade
	}

	if up.DisciplinaID != nil {
		if err := s.checkDisciplina(ctx, *up.DisciplinaID); err != nil {
			return nil, err
		}
		question.DisciplinaID = *up.DisciplinaID
	}

	if up.AutorID != nil {
		if err := s.checkAutor(ctx, *up.AutorID); err != nil {
			return nil, err
		}
		question.AutorID = *up.AutorID
	}

	if up.Enunciado != nil {
		question.Enunciado = strings.TrimSpace(*up.Enunciado)
	}
	if up.RespostaCorreta != nil {
		question.RespostaCorreta = up.RespostaCorreta
	}
	if up.Ativa != nil {
		question.Ativa = *up.Ativa
	}

	if err := s.questions.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("atualizando questão %d: %w", id, err)
	}

	s.logger.Info("questão atualizada", slog.Int64("id", id))
	return question, nil
}

// Delete confirms existence, removes and returns the pre-delete
// snapshot.
func (s *QuestionService) Delete(ctx context.Context, id int64) (*model.Question, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("removendo questão %d: %w", id, err)
	}

	s.logger.Info("questão removida", slog.Int64("id", id))
	return question, nil
}

func (s *QuestionService) checkDisciplina(ctx context.Context, id int64) error {
	exists, err := s.subjects.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("verificando disciplina %d: %w", id, err)
	}
	if !exists {
		return apperror.MissingReference("disciplinaId", id)
	}
	return nil
}

func (s *QuestionService) checkAutor(ctx context.Context, id int64) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("verificando autor %d: %w", id, err)
	}
	if !exists {
		return apperror.MissingReference("autorId", id)
	}
	return nil
}
