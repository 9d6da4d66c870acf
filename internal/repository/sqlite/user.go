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

// Users is the UserRepository implementation over the shared pool.
// Each entity gets its own view type because the three repository
// interfaces share method names (Create, GetByID, ...).
type Users struct {
	conn *sql.DB
}

// Users returns the usuário repository view of the database.
func (db *DB) Users() *Users {
	return &Users{conn: db.conn}
}

var _ repository.UserRepository = (*Users)(nil)

const userColumns = `id, email, senha, nome, primeiro_nome, sobrenome,
	papel, tipo_usuario, telefone, foto, created_at, updated_at`

// Create inserts a user. Both role columns are written from the single
// canonical Papel so the stored representations can never disagree.
// A duplicate email surfaces as apperror.EmailInUse.
func (u *Users) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := u.conn.ExecContext(ctx,
		`INSERT INTO usuarios (email, senha, nome, primeiro_nome, sobrenome,
			papel, tipo_usuario, telefone, foto, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Email,
		user.SenhaHash,
		user.Nome,
		user.PrimeiroNome,
		user.Sobrenome,
		string(user.Papel),
		user.Papel.TipoUsuario(),
		user.Telefone,
		user.Foto,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if terr := translateConstraint(err, user.Email); terr != err {
			return terr
		}
		return fmt.Errorf("sqlite: inserindo usuário %s: %w", user.Email, err)
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: lendo id do usuário inserido: %w", err)
	}
	return nil
}

// GetByID retrieves a user. Returns apperror.ErrNotFound when absent.
func (u *Users) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := u.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM usuarios WHERE id = ?`, id)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("usuário", id)
		}
		return nil, fmt.Errorf("sqlite: buscando usuário %d: %w", id, err)
	}
	return user, nil
}

// GetByEmail retrieves a user by (already lowercased) email. Used by
// login and by the registration uniqueness pre-check.
func (u *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := u.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM usuarios WHERE email = ?`, email)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperror.AppError{
				Err:     apperror.ErrNotFound,
				Code:    apperror.CodeNotFound,
				Message: fmt.Sprintf("usuário não encontrado com email %s", email),
			}
		}
		return nil, fmt.Errorf("sqlite: buscando usuário por email: %w", err)
	}
	return user, nil
}

// List returns all users ordered by id.
func (u *Users) List(ctx context.Context) ([]model.User, error) {
	rows, err := u.conn.QueryContext(ctx,
		`SELECT `+userColumns+` FROM usuarios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listando usuários: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: lendo linha de usuário: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// Update persists a modified user record, refreshing both role columns.
func (u *Users) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()

	res, err := u.conn.ExecContext(ctx,
		`UPDATE usuarios SET email = ?, senha = ?, nome = ?, primeiro_nome = ?,
			sobrenome = ?, papel = ?, tipo_usuario = ?, telefone = ?, foto = ?,
			updated_at = ?
		 WHERE id = ?`,
		user.Email,
		user.SenhaHash,
		user.Nome,
		user.PrimeiroNome,
		user.Sobrenome,
		string(user.Papel),
		user.Papel.TipoUsuario(),
		user.Telefone,
		user.Foto,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if terr := translateConstraint(err, user.Email); terr != err {
			return terr
		}
		return fmt.Errorf("sqlite: atualizando usuário %d: %w", user.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: verificando update do usuário %d: %w", user.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("usuário", user.ID)
	}
	return nil
}

// Delete removes a user. A user still referenced by questões or
// disciplinas trips the FK restrict policy and surfaces as CONFLICT.
func (u *Users) Delete(ctx context.Context, id int64) error {
	res, err := u.conn.ExecContext(ctx, `DELETE FROM usuarios WHERE id = ?`, id)
	if err != nil {
		if terr := translateConstraint(err, ""); terr != err {
			return terr
		}
		return fmt.Errorf("sqlite: removendo usuário %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: verificando remoção do usuário %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("usuário", id)
	}
	return nil
}

// Exists is the FK pre-check used before writing disciplinas/questões.
func (u *Users) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := u.conn.QueryRowContext(ctx,
		`SELECT 1 FROM usuarios WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: verificando usuário %d: %w", id, err)
	}
	return true, nil
}

// scanner abstracts sql.Row and sql.Rows for scanUser.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*model.User, error) {
	var (
		u     model.User
		papel string
		tipo  string
	)
	err := s.Scan(
		&u.ID,
		&u.Email,
		&u.SenhaHash,
		&u.Nome,
		&u.PrimeiroNome,
		&u.Sobrenome,
		&papel,
		&tipo,
		&u.Telefone,
		&u.Foto,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// tipo is persisted for direct SQL consumers; in process the
	// canonical Papel is authoritative.
	_ = tipo

	u.Papel, err = model.ParseRole(papel)
	if err != nil {
		return nil, fmt.Errorf("papel inválido no banco para usuário %d: %w", u.ID, err)
	}
	return &u, nil
}
