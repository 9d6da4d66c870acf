package version

import (
	"testing"

	"github.com/psouza/gerador-provas/internal/model"
)

func strPtr(s string) *string { return &s }

func TestNewUserFromV1LeavesSplitNamesNull(t *testing.T) {
	u := NewUserFromV1(CreateUserV1{
		Nome:  "Ana Maria Souza",
		Email: "ana@example.com",
		Papel: "PROFESSOR",
	}, "hash")

	if u.Nome == nil || *u.Nome != "Ana Maria Souza" {
		t.Errorf("nome: got %v", u.Nome)
	}
	if u.PrimeiroNome != nil || u.Sobrenome != nil {
		t.Errorf("split names must stay null for v1 creates, got primeiro=%v sobrenome=%v",
			u.PrimeiroNome, u.Sobrenome)
	}
	if u.Papel != model.RoleProfessor {
		t.Errorf("papel: got %q", u.Papel)
	}
	if u.Papel.TipoUsuario() != "professor" {
		t.Errorf("tipo_usuario mirror: got %q", u.Papel.TipoUsuario())
	}
}

func TestNewUserFromV2DerivesLegacyFields(t *testing.T) {
	u := NewUserFromV2(CreateUserV2{
		PrimeiroNome: "João",
		Sobrenome:    "Silva",
		Email:        "joao@example.com",
		TipoUsuario:  "admin",
		Telefone:     "11987654321",
	}, "hash")

	if u.Nome == nil || *u.Nome != "João Silva" {
		t.Errorf("derived nome: got %v", u.Nome)
	}
	if u.Papel != model.RoleAdmin {
		t.Errorf("derived papel: got %q, want ADMIN", u.Papel)
	}
	if u.Telefone == nil || *u.Telefone != "11987654321" {
		t.Errorf("telefone: got %v", u.Telefone)
	}
}

func TestNewUserFromV2WithoutTelefone(t *testing.T) {
	u := NewUserFromV2(CreateUserV2{
		PrimeiroNome: "João",
		Sobrenome:    "Silva",
		Email:        "joao@example.com",
		TipoUsuario:  "professor",
	}, "hash")

	if u.Telefone != nil {
		t.Errorf("telefone should be nil when absent, got %v", u.Telefone)
	}
}

func TestApplyV1UpdateMirrorsPapel(t *testing.T) {
	u := &model.User{
		Email:        "x@example.com",
		PrimeiroNome: strPtr("Ana"),
		Sobrenome:    strPtr("Souza"),
		Nome:         strPtr("Ana Souza"),
		Papel:        model.RoleProfessor,
	}

	ApplyV1Update(u, UpdateUserV1{Papel: strPtr("ADMIN")})

	if u.Papel != model.RoleAdmin {
		t.Errorf("papel: got %q", u.Papel)
	}
	if u.Papel.TipoUsuario() != "admin" {
		t.Errorf("tipo_usuario must mirror the papel change, got %q", u.Papel.TipoUsuario())
	}
}

func TestApplyV1UpdateNomeDoesNotTouchSplitNames(t *testing.T) {
	u := &model.User{
		PrimeiroNome: strPtr("Ana"),
		Sobrenome:    strPtr("Souza"),
		Nome:         strPtr("Ana Souza"),
		Papel:        model.RoleProfessor,
	}

	ApplyV1Update(u, UpdateUserV1{Nome: strPtr("Ana Maria Lima")})

	if u.Nome == nil || *u.Nome != "Ana Maria Lima" {
		t.Errorf("nome: got %v", u.Nome)
	}
	if *u.PrimeiroNome != "Ana" || *u.Sobrenome != "Souza" {
		t.Errorf("split names must survive a legacy nome edit, got %q %q",
			*u.PrimeiroNome, *u.Sobrenome)
	}
}

func TestApplyV2UpdateMirrorsTipoUsuario(t *testing.T) {
	u := &model.User{Papel: model.RoleProfessor}

	ApplyV2Update(u, UpdateUserV2{TipoUsuario: strPtr("admin")})

	if u.Papel != model.RoleAdmin {
		t.Errorf("papel must mirror tipo_usuario, got %q", u.Papel)
	}
}

func TestApplyV2UpdateHalfNameRecomputesNome(t *testing.T) {
	u := &model.User{
		PrimeiroNome: strPtr("Ana"),
		Sobrenome:    strPtr("Souza"),
		Nome:         strPtr("Ana Souza"),
	}

	ApplyV2Update(u, UpdateUserV2{Sobrenome: strPtr("Lima")})

	if u.Nome == nil || *u.Nome != "Ana Lima" {
		t.Errorf("nome should recompute from stored primeiro + new sobrenome, got %v", u.Nome)
	}
	if *u.PrimeiroNome != "Ana" {
		t.Errorf("primeiro_nome: got %q", *u.PrimeiroNome)
	}
}

func TestApplyV2UpdateTelefoneOnlyLeavesNamesAndRole(t *testing.T) {
	u := &model.User{
		PrimeiroNome: strPtr("Ana"),
		Sobrenome:    strPtr("Souza"),
		Nome:         strPtr("Ana Souza"),
		Papel:        model.RoleProfessor,
	}

	ApplyV2Update(u, UpdateUserV2{Telefone: strPtr("11987654321")})

	if *u.Nome != "Ana Souza" || *u.PrimeiroNome != "Ana" || *u.Sobrenome != "Souza" {
		t.Errorf("names must be untouched: nome=%q primeiro=%q sobrenome=%q",
			*u.Nome, *u.PrimeiroNome, *u.Sobrenome)
	}
	if u.Papel != model.RoleProfessor {
		t.Errorf("papel must be untouched, got %q", u.Papel)
	}
	if u.Telefone == nil || *u.Telefone != "11987654321" {
		t.Errorf("telefone: got %v", u.Telefone)
	}
}

func TestApplyV2UpdateEmptyTelefoneClears(t *testing.T) {
	u := &model.User{Telefone: strPtr("11987654321")}

	ApplyV2Update(u, UpdateUserV2{Telefone: strPtr("")})

	if u.Telefone != nil {
		t.Errorf("present-but-empty telefone should clear, got %v", u.Telefone)
	}
}

func TestJoinNome(t *testing.T) {
	tests := []struct {
		name      string
		primeiro  *string
		sobrenome *string
		want      *string
	}{
		{"both", strPtr("Ana"), strPtr("Souza"), strPtr("Ana Souza")},
		{"only primeiro", strPtr("Ana"), nil, strPtr("Ana")},
		{"only sobrenome", nil, strPtr("Souza"), strPtr("Souza")},
		{"neither", nil, nil, nil},
		{"empty strings", strPtr(""), strPtr(""), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := joinNome(tt.primeiro, tt.sobrenome)
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil:
				t.Errorf("got %v, want %v", got, tt.want)
			case *got != *tt.want:
				t.Errorf("got %q, want %q", *got, *tt.want)
			}
		})
	}
}
