package model

import "time"

// Question (questão) is authored content referencing a Subject and an
// author User. Dificuldade is constrained to [1,5]; both foreign keys
// are re-validated whenever they are supplied, including on partial
// updates.
type Question struct {
	ID              int64     `json:"id"`
	Enunciado       string    `json:"enunciado"`
	Dificuldade     int       `json:"dificuldade"`
	RespostaCorreta *string   `json:"respostaCorreta"`
	DisciplinaID    int64     `json:"disciplinaId"` // FK → subjects.id
	AutorID         int64     `json:"autorId"`      // FK → users.id
	Ativa           bool      `json:"ativa"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
