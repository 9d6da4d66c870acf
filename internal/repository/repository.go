// Package repository declares the storage interfaces consumed by the
// service layer. Services program against these interfaces; the sqlite
// subpackage provides the concrete implementation and tests use
// in-memory mocks.
package repository

import (
	"context"

	"github.com/psouza/gerador-provas/internal/model"
)

// UserRepository persists user records (both v1 and v2 field sets on
// one row).
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
	// Exists is the foreign-key pre-check used by subject/question
	// writes.
	Exists(ctx context.Context, id int64) (bool, error)
}

// SubjectRepository persists disciplinas.
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id int64) (*model.Subject, error)
	List(ctx context.Context) ([]model.Subject, error)
	Update(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	// NomeInUse backs the soft uniqueness pre-check on subject names.
	// excludeID skips the row being updated; pass 0 on create.
	NomeInUse(ctx context.Context, nome string, excludeID int64) (bool, error)
}

// QuestionRepository persists questões.
type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	List(ctx context.Context) ([]model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id int64) error
}
