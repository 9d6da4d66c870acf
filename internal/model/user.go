// Package model defines the data structures used throughout the application.
package model

import "time"

// User is the identity and credential record.
//
// The table carries two historical representations of the same person:
// the legacy v1 fields (Nome as a single full name, Papel uppercase)
// and the current v2 fields (PrimeiroNome/Sobrenome split, telefone).
// The version package keeps the two mirrored; this struct just holds
// both sets.
//
// WHY POINTER FIELDS?
// Nome, PrimeiroNome, Sobrenome, Telefone and Foto are all genuinely
// nullable: a user created through the v1 endpoints has no split name
// (and we never synthesize one by guessing where a full name splits),
// and a v2 user may have no telefone or foto. A nil pointer is the
// honest representation of "this record never had the field".
//
// Papel is held canonically (uppercase Role); the lowercase v2
// tipo_usuario column is derived from it on every write so the two
// representations can never disagree.
type User struct {
	ID           int64
	Email        string // unique, stored lowercase
	SenhaHash    string // bcrypt hash; never serialized
	Nome         *string
	PrimeiroNome *string
	Sobrenome    *string
	Papel        Role
	Telefone     *string // normalized to 10-11 digits when present
	Foto         *string // blob-store URL
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
