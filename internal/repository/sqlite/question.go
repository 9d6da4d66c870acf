package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/psouza/gerador-provas/internal/apperror"
	"github.com/psouza/gerador-provas/internal/model"
	"github.com/psouza/gerador-provas/internal/repository"
)

// Questions is the QuestionRepository implementation over the shared
// pool.
type Questions struct {
	conn *sql.DB
}

// Questions returns the questão repository view of the database.
func (db *DB) Questions() *Questions {
	return &Questions{conn: db.conn}
}

var _ repository.QuestionRepository = (*Questions)(nil)

const questionColumns = `id, enunciado, dificuldade, resposta_correta,
	disciplina_id, autor_id, ativa, created_at, updated_at`

// Create inserts a questão. Both FKs are pre-checked by the service;
// nothing is written when either check fails.
func (q *Questions) Create(ctx context.Context, question *model.Question) error {
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	res, err := q.conn.ExecContext(ctx,
		`INSERT INTO questoes (enunciado, dificuldade, resposta_correta,
			disciplina_id, autor_id, ativa, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		question.Enunciado,
		question.Dificuldade,
		question.RespostaCorreta,
		question.DisciplinaID,
		question.AutorID,
		question.Ativa,
		question.CreatedAt,
		question.UpdatedAt,
	)
	if err != nil {
		if terr := translateConstraint(err, ""); terr != err {
			return terr
		}
		return fmt.Errorf("sqlite: inserindo questão: %w", err)
	}

	question.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: lendo id da questão inserida: %w", err)
	}
	return nil
}

// GetByID retrieves a questão. Returns apperror.ErrNotFound when
// absent.
func (q *Questions) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	var question model.Question
	err := q.conn.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questoes WHERE id = ?`, id,
	).Scan(
		&question.ID,
		&question.Enunciado,
		&question.Dificuldade,
		&question.RespostaCorreta,
		&question.DisciplinaID,
		&question.AutorID,
		&question.Ativa,
		&question.CreatedAt,
		&question.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("questão", id)
		}
		return nil, fmt.Errorf("sqlite: buscando questão %d: %w", id, err)
	}
	return &question, nil
}

// List returns all questões ordered by id.
func (q *Questions) List(ctx context.Context) ([]model.Question, error) {
	rows, err := q.conn.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questoes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listando questões: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var question model.Question
		if err := rows.Scan(
			&question.ID,
			&question.Enunciado,
			&question.Dificuldade,
			&question.RespostaCorreta,
			&question.DisciplinaID,
			&question.AutorID,
			&question.Ativa,
			&question.CreatedAt,
			&question.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: lendo linha de questão: %w", err)
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

// Update persists a modified questão.
func (q *Questions) Update(ctx context.Context, question *model.Question) error {
	question.UpdatedAt = time.Now()

	res, err := q.conn.ExecContext(ctx,
		`UPDATE questoes SET enunciado = ?, dificuldade = ?, resposta_correta = ?,
			disciplina_id = ?, autor_id = ?, ativa = ?, updated_at = ?
		 WHERE id = ?`,
		question.Enunciado,
		question.Dificuldade,
		question.RespostaCorreta,
		question.DisciplinaID,
		question.AutorID,
		question.Ativa,
		question.UpdatedAt,
		question.ID,
	)
	if err != nil {
		if terr := translateConstraint(err, ""); terr != err {
			return terr
		}
		return fmt.Errorf("sqlite: atualizando questão %d: %w", question.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: verificando update da questão %d: %w", question.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("questão", question.ID)
	}
	return nil
}

// Delete removes a questão. Hard delete, no archival.
func (q *Questions) Delete(ctx context.Context, id int64) error {
	res, err := q.conn.ExecContext(ctx, `DELETE FROM questoes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: removendo questão %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: verificando remoção da questão %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("questão", id)
	}
	return nil
}
