package validation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/psouza/gerador-provas/internal/apperror"
)

type sampleRequest struct {
	Nome        string `json:"nome" validate:"required,max=10"`
	Email       string `json:"email" validate:"required,email"`
	Papel       string `json:"papel" validate:"required,oneof=PROFESSOR ADMIN"`
	Dificuldade int    `json:"dificuldade" validate:"omitempty,gte=1,lte=5"`
	Telefone    string `json:"telefone" validate:"omitempty,telefone"`
}

func (r *sampleRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.Telefone = NormalizeTelefone(r.Telefone)
}

func fieldErrors(t *testing.T, err error) map[string]apperror.FieldError {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %v", err)
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation sentinel, got %v", err)
	}
	byField := make(map[string]apperror.FieldError, len(appErr.Details))
	for _, d := range appErr.Details {
		byField[d.Field] = d
	}
	return byField
}

func TestDecodeBodyValid(t *testing.T) {
	body := `{"nome":"Ana","email":" ANA@Example.COM ","papel":"ADMIN","telefone":"(11) 98765-4321"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	req, err := DecodeBody[sampleRequest](r)
	if err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}
	if req.Email != "ana@example.com" {
		t.Errorf("email should be normalized, got %q", req.Email)
	}
	if req.Telefone != "11987654321" {
		t.Errorf("telefone should be reduced to digits, got %q", req.Telefone)
	}
}

func TestDecodeBodyEmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

	_, err := DecodeBody[sampleRequest](r)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("empty body: got %v, want validation error", err)
	}
}

func TestDecodeBodyMalformedJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{nope"))

	_, err := DecodeBody[sampleRequest](r)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("malformed JSON: got %v, want validation error", err)
	}
}

func TestCheckReportsJSONFieldNamesAndCodes(t *testing.T) {
	req := sampleRequest{
		Email:       "nao-e-email",
		Papel:       "aluno",
		Dificuldade: 9,
		Telefone:    "123",
	}

	byField := fieldErrors(t, Check(&req))

	tests := []struct {
		field string
		code  string
	}{
		{"nome", "required"},
		{"email", "invalid_email"},
		{"papel", "invalid_enum"},
		{"dificuldade", "out_of_range"},
		{"telefone", "invalid_phone"},
	}
	for _, tt := range tests {
		d, ok := byField[tt.field]
		if !ok {
			t.Errorf("missing detail for field %q (got %v)", tt.field, byField)
			continue
		}
		if d.Code != tt.code {
			t.Errorf("%s: code got %q, want %q", tt.field, d.Code, tt.code)
		}
		if d.Message == "" {
			t.Errorf("%s: empty message", tt.field)
		}
	}
}

func TestCheckLowercaseEnumRejectsUppercase(t *testing.T) {
	type v2Request struct {
		TipoUsuario string `json:"tipo_usuario" validate:"required,oneof=professor admin"`
	}

	if err := Check(&v2Request{TipoUsuario: "ADMIN"}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("uppercase value against lowercase enum: got %v, want validation error", err)
	}
	if err := Check(&v2Request{TipoUsuario: "admin"}); err != nil {
		t.Errorf("lowercase value: got %v, want nil", err)
	}
}

func TestCheckTelefonePresentButEmpty(t *testing.T) {
	// A pointer to "" is not skipped by omitempty, so the telefone rule
	// itself must accept the empty string — it is what lets an update
	// request clear a stored number.
	type updateRequest struct {
		Telefone *string `json:"telefone" validate:"omitempty,telefone"`
	}

	empty := ""
	if err := Check(&updateRequest{Telefone: &empty}); err != nil {
		t.Errorf("present-but-empty telefone: got %v, want nil", err)
	}

	short := "123"
	if err := Check(&updateRequest{Telefone: &short}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("short telefone: got %v, want validation error", err)
	}
}

func TestIDParam(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"7", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/x/"+tt.raw, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", tt.raw)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

		id, err := IDParam(r, "id")
		if tt.wantErr {
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("IDParam(%q): got err %v, want validation error", tt.raw, err)
			}
			continue
		}
		if err != nil || id != tt.want {
			t.Errorf("IDParam(%q): got (%d, %v), want (%d, nil)", tt.raw, id, err, tt.want)
		}
	}
}

func TestNormalizeTelefone(t *testing.T) {
	tests := []struct{ in, want string }{
		{"(11) 98765-4321", "11987654321"},
		{"11 3456 7890", "1134567890"},
		{"+55 11 98765-4321", "5511987654321"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTelefone(tt.in); got != tt.want {
			t.Errorf("NormalizeTelefone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
