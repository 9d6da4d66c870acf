package model

import "time"

// Subject (disciplina) is a professor-owned resource.
//
// The `json:"..."` tags define the wire shape shared by the v1 and v2
// endpoints — only the response envelope differs between versions.
type Subject struct {
	ID          int64     `json:"id"`
	Nome        string    `json:"nome"`
	Ativa       bool      `json:"ativa"`
	ProfessorID int64     `json:"professorId"` // FK → users.id, checked at write time
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
