// Package sqlite implements the repository interfaces on SQLite.
//
// modernc.org/sqlite is a pure-Go translation of SQLite — no CGo, no C
// toolchain, cross-compiles everywhere Go does. The database is a
// single file (or ":memory:" in tests), which fits a single-server
// deployment of this API.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Blank import registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"

	"github.com/psouza/gerador-provas/internal/apperror"
)

// DB wraps the sql.DB pool and implements all three repository
// interfaces. The server owns the lifecycle: New opens and migrates,
// Close runs at shutdown.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath, applies the pragmas
// the server depends on and runs migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrindo banco: %w", err)
	}

	// Each pooled connection to ":memory:" would get its own empty
	// database; pin the pool to one connection so tests share state.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: ping no banco: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress —
	// required for a web server sharing one database file.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: habilitando WAL: %w", err)
	}

	// Foreign keys are off by default in SQLite. They must be on: the
	// restrict-on-delete policy for disciplinas/usuarios still
	// referenced by questões relies on the engine enforcing the FKs.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: habilitando foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: migrando schema: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Deferred by the server on shutdown
// so the WAL is flushed and the file lock released.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports store reachability for the health endpoint.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

func (db *DB) migrate() error {
	// usuarios carries both historical representations on one row:
	// nome/papel (v1) and primeiro_nome/sobrenome/tipo_usuario (v2).
	// papel and tipo_usuario are both persisted so either version can
	// be queried directly; the version package guarantees they agree.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS usuarios (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			email         TEXT NOT NULL UNIQUE,
			senha         TEXT NOT NULL,
			nome          TEXT,
			primeiro_nome TEXT,
			sobrenome     TEXT,
			papel         TEXT NOT NULL,
			tipo_usuario  TEXT NOT NULL,
			telefone      TEXT,
			foto          TEXT,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("criando tabela usuarios: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS disciplinas (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			nome         TEXT NOT NULL,
			ativa        INTEGER NOT NULL DEFAULT 1,
			professor_id INTEGER NOT NULL REFERENCES usuarios(id),
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_disciplinas_professor ON disciplinas(professor_id);
	`)
	if err != nil {
		return fmt.Errorf("criando tabela disciplinas: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS questoes (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			enunciado        TEXT NOT NULL,
			dificuldade      INTEGER NOT NULL,
			resposta_correta TEXT,
			disciplina_id    INTEGER NOT NULL REFERENCES disciplinas(id),
			autor_id         INTEGER NOT NULL REFERENCES usuarios(id),
			ativa            INTEGER NOT NULL DEFAULT 1,
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_questoes_disciplina ON questoes(disciplina_id);
		CREATE INDEX IF NOT EXISTS idx_questoes_autor ON questoes(autor_id);
	`)
	if err != nil {
		return fmt.Errorf("criando tabela questoes: %w", err)
	}

	return nil
}

// translateConstraint converts SQLite constraint failures into the
// application taxonomy so the raw engine error never leaks to clients.
// The services pre-check FKs and email uniqueness, so these paths are
// a second line of defence against races.
func translateConstraint(err error, email string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: usuarios.email"):
		return apperror.EmailInUse(email)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return apperror.Conflict("registro referenciado por outros recursos")
	default:
		return err
	}
}
