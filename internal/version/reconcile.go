package version

import (
	"strings"
	"time"

	"github.com/psouza/gerador-provas/internal/model"
)

// NewUserFromV1 builds a full user record from a legacy create payload.
//
// The mirrored v2 fields are populated as far as they are derivable:
// tipo_usuario is just lowercase(papel), but PrimeiroNome/Sobrenome
// stay nil — a full name is never split into parts, because nothing
// guarantees where the segmentation falls ("Ana Maria Souza" could be
// first="Ana Maria" or first="Ana").
func NewUserFromV1(req CreateUserV1, senhaHash string) *model.User {
	papel, _ := model.ParseRole(req.Papel) // schema already constrained to the enum
	nome := req.Nome
	return &model.User{
		Email:     req.Email,
		SenhaHash: senhaHash,
		Nome:      &nome,
		Papel:     papel,
	}
}

// NewUserFromV2 builds a full user record from a current create
// payload. Both representations are written: Nome is derived as
// "primeiro sobrenome" trimmed, and Papel is the canonical uppercase
// form of tipo_usuario, so a later v1 read returns correct data.
func NewUserFromV2(req CreateUserV2, senhaHash string) *model.User {
	papel, _ := model.ParseRole(req.TipoUsuario)
	primeiro := req.PrimeiroNome
	sobrenome := req.Sobrenome
	u := &model.User{
		Email:        req.Email,
		SenhaHash:    senhaHash,
		PrimeiroNome: &primeiro,
		Sobrenome:    &sobrenome,
		Nome:         joinNome(&primeiro, &sobrenome),
		Papel:        papel,
	}
	if req.Telefone != "" {
		tel := req.Telefone
		u.Telefone = &tel
	}
	return u
}

// ApplyV1Update merges a legacy partial update into an existing record.
//
// Papel changes mirror into tipo_usuario automatically (the model holds
// one canonical Role). A nome change overwrites the stored full name
// without touching PrimeiroNome/Sobrenome — the segmentation rule cuts
// both ways, so a legacy edit never invents or rewrites split names.
// Fields absent from the request are left untouched in both views.
func ApplyV1Update(u *model.User, req UpdateUserV1) {
	if req.Nome != nil {
		nome := *req.Nome
		u.Nome = &nome
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Papel != nil {
		u.Papel, _ = model.ParseRole(*req.Papel)
	}
	u.UpdatedAt = time.Now()
}

// ApplyV2Update merges a current partial update into an existing
// record. When only one side of the split name is supplied, the stored
// other half fills in and Nome is recomputed from the pair — updating
// only sobrenome yields nome = stored primeiro + " " + new sobrenome.
// A request touching neither name field leaves nome exactly as it was.
func ApplyV2Update(u *model.User, req UpdateUserV2) {
	nameTouched := false

	if req.PrimeiroNome != nil {
		primeiro := *req.PrimeiroNome
		u.PrimeiroNome = &primeiro
		nameTouched = true
	}
	if req.Sobrenome != nil {
		sobrenome := *req.Sobrenome
		u.Sobrenome = &sobrenome
		nameTouched = true
	}
	if nameTouched {
		u.Nome = joinNome(u.PrimeiroNome, u.Sobrenome)
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.TipoUsuario != nil {
		u.Papel, _ = model.ParseRole(*req.TipoUsuario)
	}
	if req.Telefone != nil {
		if *req.Telefone == "" {
			u.Telefone = nil
		} else {
			tel := *req.Telefone
			u.Telefone = &tel
		}
	}
	u.UpdatedAt = time.Now()
}

// joinNome derives the legacy full name from the split pair. With both
// halves present the result is "primeiro sobrenome"; with only one, the
// trimmed remainder; with neither, nil.
func joinNome(primeiro, sobrenome *string) *string {
	var parts []string
	if primeiro != nil && *primeiro != "" {
		parts = append(parts, *primeiro)
	}
	if sobrenome != nil && *sobrenome != "" {
		parts = append(parts, *sobrenome)
	}
	if len(parts) == 0 {
		return nil
	}
	nome := strings.TrimSpace(strings.Join(parts, " "))
	return &nome
}
