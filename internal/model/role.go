package model

import (
	"fmt"
	"strings"
)

// Role is the closed set of access roles a user can hold.
//
// The canonical form is the legacy uppercase value ("PROFESSOR",
// "ADMIN"). The v2 API exposes the same role as a lowercase
// "tipo_usuario" string; both spellings map to the same Role via
// ParseRole, and internal comparisons never re-normalize case.
type Role string

const (
	RoleProfessor Role = "PROFESSOR"
	RoleAdmin     Role = "ADMIN"
)

// ParseRole canonicalizes a role string from either API version.
// Accepts "PROFESSOR"/"professor"/"Admin" etc.; anything outside the
// closed set is an error. This is the single place case-folding of
// roles happens — callers hold a canonical Role afterwards.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleProfessor):
		return RoleProfessor, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("model: papel desconhecido %q", s)
	}
}

// TipoUsuario returns the v2 (lowercase) spelling of the role.
func (r Role) TipoUsuario() string {
	return strings.ToLower(string(r))
}

// Is reports whether r equals other. Both sides are canonical, so this
// is a plain comparison.
func (r Role) Is(other Role) bool {
	return r == other
}
