package service

import (
	"context"
	"errors"
	"testing"

	"github.com/psouza/gerador-provas/internal/apperror"
	"github.com/psouza/gerador-provas/internal/model"
	"github.com/psouza/gerador-provas/internal/version"
)

func strPtr(s string) *string { return &s }

func newUserService(repo *mockUserRepo) *UserService {
	return NewUserService(repo, testPasswords(), testLogger())
}

func TestUserCreateV1(t *testing.T) {
	repo := newMockUserRepo()
	svc := newUserService(repo)

	user, err := svc.CreateV1(context.Background(), version.CreateUserV1{
		Nome:  "Ana Souza",
		Email: "ana@example.com",
		Senha: "senha123",
		Papel: "PROFESSOR",
	})
	if err != nil {
		t.Fatalf("CreateV1: %v", err)
	}

	if user.ID == 0 {
		t.Error("id should be assigned")
	}
	if user.SenhaHash == "senha123" || user.SenhaHash == "" {
		t.Error("senha must be stored hashed")
	}
	if user.PrimeiroNome != nil || user.Sobrenome != nil {
		t.Error("v1 create must not synthesize split names")
	}
	if user.Papel != model.RoleProfessor {
		t.Errorf("papel: got %q", user.Papel)
	}
}

func TestUserCreateV2(t *testing.T) {
	repo := newMockUserRepo()
	svc := newUserService(repo)

	foto := "https://i.ibb.co/abc/foto.png"
	user, err := svc.CreateV2(context.Background(), version.CreateUserV2{
		PrimeiroNome: "João",
		Sobrenome:    "Silva",
		Email:        "joao@example.com",
		Senha:        "senha123",
		TipoUsuario:  "admin",
	}, &foto)
	if err != nil {
		t.Fatalf("CreateV2: %v", err)
	}

	if user.Nome == nil || *user.Nome != "João Silva" {
		t.Errorf("derived nome: got %v", user.Nome)
	}
	if user.Papel != model.RoleAdmin {
		t.Errorf("derived papel: got %q", user.Papel)
	}
	if user.Foto == nil || *user.Foto != foto {
		t.Errorf("foto: got %v", user.Foto)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newUserService(repo)
	repo.seed(model.User{Email: "ana@example.com", Papel: model.RoleProfessor})

	_, err := svc.CreateV1(context.Background(), version.CreateUserV1{
		Nome:  "Outra Ana",
		Email: "ana@example.com",
		Senha: "senha123",
		Papel: "PROFESSOR",
	})

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeEmailInUse {
		t.Fatalf("duplicate email: got %v, want EMAIL_IN_USE", err)
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("EMAIL_IN_USE should classify as conflict, got %v", err)
	}
	if repo.creates != 0 {
		t.Error("nothing should have been written")
	}
}

func TestUserUpdateV1KeepsOwnEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newUserService(repo)
	u := repo.seed(model.User{Email: "ana@example.com", Papel: model.RoleProfessor})

	// Re-sending the current email is not a conflict with oneself.
	got, err := svc.UpdateV1(context.Background(), u.ID, version.UpdateUserV1{
		Email: strPtr("ana@example.com"),
		Nome:  strPtr("Ana Maria"),
	})
	if err != nil {
		t.Fatalf("UpdateV1: %v", err)
	}
	if got.Nome == nil || *got.Nome != "Ana Maria" {
		t.Errorf("nome: got %v", got.Nome)
	}
}

func TestUserUpdateV1EmailTaken(t *testing.T) {
	repo := newMockUserRepo()
	svc := newUserService(repo)
	repo.seed(model.User{ID: 1, Email: "ana@example.com", Papel: model.RoleProfessor})
	repo.seed(model.User{ID: 2, Email: "joao@example.com", Papel: model.RoleProfessor})

	_, err := svc.UpdateV1(context.Background(), 2, version.UpdateUserV1{
		Email: strPtr("ana@example.com"),
	})

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeEmailInUse {
		t.Fatalf("taken email: got %v, want EMAIL_IN_USE", err)
	}
}

func TestUserUpdateV2RehashesSenha(t *testing.T) {
	repo := newMockUserRepo()
	svc := newUserService(repo)
	u := repo.seed(model.User{Email: "ana@example.com", SenhaHash: "hash-antigo", Papel: model.RoleProfessor})

	got, err := svc.UpdateV2(context.Background(), u.ID, version.UpdateUserV2{
		Senha: strPtr("senha-nova"),
	}, nil)
	if err != nil {
		t.Fatalf("UpdateV2: %v", err)
	}
	if got.SenhaHash == "hash-antigo" || got.SenhaHash == "senha-nova" {
		t.Errorf("senha must be rehashed, got %q", got.SenhaHash)
	}
}

func TestUserDeleteTwice(t *testing.T) {
	repo := newMockUserRepo()
	svc := newUserService(repo)
	u := repo.seed(model.User{Email: "ana@example.com", Papel: model.RoleProfessor})

	snapshot, err := svc.Delete(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if snapshot.Email != "ana@example.com" {
		t.Errorf("snapshot should carry the deleted record, got %+v", snapshot)
	}

	_, err = svc.Delete(context.Background(), u.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second delete: got %v, want not-found", err)
	}
}

func TestUserGetUnknown(t *testing.T) {
	svc := newUserService(newMockUserRepo())

	_, err := svc.Get(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown id: got %v, want not-found", err)
	}
}
