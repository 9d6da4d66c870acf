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

// Subjects is the SubjectRepository implementation over the shared
// pool.
type Subjects struct {
	conn *sql.DB
}

// Subjects returns the disciplina repository view of the database.
func (db *DB) Subjects() *Subjects {
	return &Subjects{conn: db.conn}
}

var _ repository.SubjectRepository = (*Subjects)(nil)

const subjectColumns = `id, nome, ativa, professor_id, created_at, updated_at`

// Create inserts a disciplina. The professor FK is pre-checked by the
// service; the engine-level FK is the safety net against races.
func (s *Subjects) Create(ctx context.Context, subject *model.Subject) error {
	now := time.Now()
	subject.CreatedAt = now
	subject.UpdatedAt = now

	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO disciplinas (nome, ativa, professor_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		subject.Nome,
		subject.Ativa,
		subject.ProfessorID,
		subject.CreatedAt,
		subject.UpdatedAt,
	)
	if err != nil {
		if terr := translateConstraint(err, ""); terr != err {
			return terr
		}
		return fmt.Errorf("sqlite: inserindo disciplina %q: %w", subject.Nome, err)
	}

	subject.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: lendo id da disciplina inserida: %w", err)
	}
	return nil
}

// GetByID retrieves a disciplina. Returns apperror.ErrNotFound when
// absent.
func (s *Subjects) GetByID(ctx context.Context, id int64) (*model.Subject, error) {
	var subject model.Subject
	err := s.conn.QueryRowContext(ctx,
		`SELECT `+subjectColumns+` FROM disciplinas WHERE id = ?`, id,
	).Scan(
		&subject.ID,
		&subject.Nome,
		&subject.Ativa,
		&subject.ProfessorID,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("disciplina", id)
		}
		return nil, fmt.Errorf("sqlite: buscando disciplina %d: %w", id, err)
	}
	return &subject, nil
}

// List returns all disciplinas ordered by id.
func (s *Subjects) List(ctx context.Context) ([]model.Subject, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+subjectColumns+` FROM disciplinas ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listando disciplinas: %w", err)
	}
	defer rows.Close()

	subjects := []model.Subject{}
	for rows.Next() {
		var subject model.Subject
		if err := rows.Scan(
			&subject.ID,
			&subject.Nome,
			&subject.Ativa,
			&subject.ProfessorID,
			&subject.CreatedAt,
			&subject.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: lendo linha de disciplina: %w", err)
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// Update persists a modified disciplina.
func (s *Subjects) Update(ctx context.Context, subject *model.Subject) error {
	subject.UpdatedAt = time.Now()

	res, err := s.conn.ExecContext(ctx,
		`UPDATE disciplinas SET nome = ?, ativa = ?, professor_id = ?, updated_at = ?
		 WHERE id = ?`,
		subject.Nome,
		subject.Ativa,
		subject.ProfessorID,
		subject.UpdatedAt,
		subject.ID,
	)
	if err != nil {
		if terr := translateConstraint(err, ""); terr != err {
			return terr
		}
		return fmt.Errorf("sqlite: atualizando disciplina %d: %w", subject.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: verificando update da disciplina %d: %w", subject.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("disciplina", subject.ID)
	}
	return nil
}

// Delete removes a disciplina. Hard delete; a disciplina still
// referenced by questões trips the FK restrict policy (CONFLICT).
func (s *Subjects) Delete(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM disciplinas WHERE id = ?`, id)
	if err != nil {
		if terr := translateConstraint(err, ""); terr != err {
			return terr
		}
		return fmt.Errorf("sqlite: removendo disciplina %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: verificando remoção da disciplina %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("disciplina", id)
	}
	return nil
}

// Exists is the FK pre-check used before writing questões.
func (s *Subjects) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := s.conn.QueryRowContext(ctx,
		`SELECT 1 FROM disciplinas WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: verificando disciplina %d: %w", id, err)
	}
	return true, nil
}

// NomeInUse reports whether another disciplina already uses the name.
// This backs a soft pre-check only — there is deliberately no UNIQUE
// constraint on the column.
func (s *Subjects) NomeInUse(ctx context.Context, nome string, excludeID int64) (bool, error) {
	var one int
	err := s.conn.QueryRowContext(ctx,
		`SELECT 1 FROM disciplinas WHERE nome = ? AND id != ?`, nome, excludeID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: verificando nome de disciplina %q: %w", nome, err)
	}
	return true, nil
}
