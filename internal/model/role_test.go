package model

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"PROFESSOR", RoleProfessor, false},
		{"professor", RoleProfessor, false},
		{"Professor", RoleProfessor, false},
		{"ADMIN", RoleAdmin, false},
		{"admin", RoleAdmin, false},
		{"  admin  ", RoleAdmin, false},
		{"aluno", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q): expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseRole(%q) = (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestTipoUsuario(t *testing.T) {
	if RoleProfessor.TipoUsuario() != "professor" {
		t.Errorf("got %q", RoleProfessor.TipoUsuario())
	}
	if RoleAdmin.TipoUsuario() != "admin" {
		t.Errorf("got %q", RoleAdmin.TipoUsuario())
	}
}
