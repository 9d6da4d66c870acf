package version

import (
	"time"

	"github.com/psouza/gerador-provas/internal/model"
)

// UserV1 is the legacy wire shape: full name and uppercase papel.
// It never exposes the password hash or any v2-only field (split
// names, telefone).
type UserV1 struct {
	ID        int64     `json:"id"`
	Nome      *string   `json:"nome"`
	Papel     string    `json:"papel"`
	Email     string    `json:"email"`
	Foto      *string   `json:"foto"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserV2 is the current wire shape: split name and lowercase
// tipo_usuario. It never exposes the password hash, the legacy full
// name or papel. A record created purely through v1 legitimately shows
// null primeiro_nome/sobrenome here — that is expected, not an error.
type UserV2 struct {
	ID           int64     `json:"id"`
	PrimeiroNome *string   `json:"primeiro_nome"`
	Sobrenome    *string   `json:"sobrenome"`
	TipoUsuario  string    `json:"tipo_usuario"`
	Email        string    `json:"email"`
	Telefone     *string   `json:"telefone"`
	Foto         *string   `json:"foto"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// V1View shapes a user record for the legacy endpoints.
func V1View(u *model.User) UserV1 {
	return UserV1{
		ID:        u.ID,
		Nome:      u.Nome,
		Papel:     string(u.Papel),
		Email:     u.Email,
		Foto:      u.Foto,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// V2View shapes a user record for the current endpoints.
func V2View(u *model.User) UserV2 {
	return UserV2{
		ID:           u.ID,
		PrimeiroNome: u.PrimeiroNome,
		Sobrenome:    u.Sobrenome,
		TipoUsuario:  u.Papel.TipoUsuario(),
		Email:        u.Email,
		Telefone:     u.Telefone,
		Foto:         u.Foto,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// V1Views shapes a listing.
func V1Views(users []model.User) []UserV1 {
	out := make([]UserV1, 0, len(users))
	for i := range users {
		out = append(out, V1View(&users[i]))
	}
	return out
}

// V2Views shapes a listing.
func V2Views(users []model.User) []UserV2 {
	out := make([]UserV2, 0, len(users))
	for i := range users {
		out = append(out, V2View(&users[i]))
	}
	return out
}
