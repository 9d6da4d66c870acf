// Package version keeps the v1 (full-name, uppercase papel) and v2
// (split-name, lowercase tipo_usuario) representations of a User
// mutually consistent, and shapes user responses per API version.
//
// The storage schema carries both field sets on a single row. Every
// write path — v1 or v2, create or update — goes through this package
// so that a record read back through EITHER version is correct.
package version

import (
	"strings"

	"github.com/psouza/gerador-provas/internal/validation"
)

// CreateUserV1 is the legacy create/register payload. Papel is
// uppercase-only by the v1 schema — "admin" is a validation error here
// even though the v2 endpoint would accept it.
type CreateUserV1 struct {
	Nome  string `json:"nome" validate:"required,max=120"`
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=6,max=72"`
	Papel string `json:"papel" validate:"required,oneof=PROFESSOR ADMIN"`
}

func (r *CreateUserV1) Normalize() {
	r.Nome = strings.TrimSpace(r.Nome)
	r.Email = validation.NormalizeEmail(r.Email)
}

// UpdateUserV1 is the legacy partial-update payload. Nil means "field
// not present in the request": it must remain unchanged in both
// representations.
type UpdateUserV1 struct {
	Nome  *string `json:"nome" validate:"omitempty,min=1,max=120"`
	Email *string `json:"email" validate:"omitempty,email"`
	Senha *string `json:"senha" validate:"omitempty,min=6,max=72"`
	Papel *string `json:"papel" validate:"omitempty,oneof=PROFESSOR ADMIN"`
}

func (r *UpdateUserV1) Normalize() {
	if r.Nome != nil {
		trimmed := strings.TrimSpace(*r.Nome)
		r.Nome = &trimmed
	}
	if r.Email != nil {
		normalized := validation.NormalizeEmail(*r.Email)
		r.Email = &normalized
	}
}

// CreateUserV2 is the current create/register payload. TipoUsuario is
// lowercase-only: "ADMIN" through this path is rejected, not folded.
// Telefone is normalized to bare digits before the 10-11 digit rule
// runs, so formatted input like "(11) 98765-4321" passes.
type CreateUserV2 struct {
	PrimeiroNome string `json:"primeiro_nome" validate:"required,max=60"`
	Sobrenome    string `json:"sobrenome" validate:"required,max=60"`
	Email        string `json:"email" validate:"required,email"`
	Senha        string `json:"senha" validate:"required,min=6,max=72"`
	TipoUsuario  string `json:"tipo_usuario" validate:"required,oneof=professor admin"`
	Telefone     string `json:"telefone" validate:"omitempty,telefone"`
}

func (r *CreateUserV2) Normalize() {
	r.PrimeiroNome = strings.TrimSpace(r.PrimeiroNome)
	r.Sobrenome = strings.TrimSpace(r.Sobrenome)
	r.Email = validation.NormalizeEmail(r.Email)
	r.Telefone = validation.NormalizeTelefone(r.Telefone)
}

// UpdateUserV2 is the current partial-update payload. A present-but-
// empty telefone clears the stored number.
type UpdateUserV2 struct {
	PrimeiroNome *string `json:"primeiro_nome" validate:"omitempty,min=1,max=60"`
	Sobrenome    *string `json:"sobrenome" validate:"omitempty,min=1,max=60"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Senha        *string `json:"senha" validate:"omitempty,min=6,max=72"`
	TipoUsuario  *string `json:"tipo_usuario" validate:"omitempty,oneof=professor admin"`
	Telefone     *string `json:"telefone" validate:"omitempty,telefone"`
}

func (r *UpdateUserV2) Normalize() {
	if r.PrimeiroNome != nil {
		trimmed := strings.TrimSpace(*r.PrimeiroNome)
		r.PrimeiroNome = &trimmed
	}
	if r.Sobrenome != nil {
		trimmed := strings.TrimSpace(*r.Sobrenome)
		r.Sobrenome = &trimmed
	}
	if r.Email != nil {
		normalized := validation.NormalizeEmail(*r.Email)
		r.Email = &normalized
	}
	if r.Telefone != nil {
		normalized := validation.NormalizeTelefone(*r.Telefone)
		r.Telefone = &normalized
	}
}

// LoginRequest authenticates an existing user (v2 only).
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = validation.NormalizeEmail(r.Email)
}
