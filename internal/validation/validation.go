// Package validation validates and normalizes request input before it
// reaches the service layer.
//
// Schemas are declarative: request structs carry `validate:"..."` tags
// (go-playground/validator) and optionally implement Normalizer to
// trim/lowercase/default their fields first. On failure the caller gets
// a single VALIDATION_ERROR carrying one {field, message, code} entry
// per violated rule, with dot-joined paths for nested fields.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/psouza/gerador-provas/internal/apperror"
)

// Normalizer is implemented by request types that need their fields
// coerced before validation (emails lowercased, telefone reduced to
// digits, defaults applied). Normalize runs exactly once, before the
// schema check.
type Normalizer interface {
	Normalize()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names, not Go field names, so error details
	// match what the client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// telefone: 10-11 digit string, or empty — a present-but-empty value
	// on update clears the stored number. Input is normalized to bare
	// digits before validation, so the rule itself is a plain pattern.
	must(v.RegisterValidation("telefone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || telefonePattern.MatchString(s)
	}))

	return v
}

var telefonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// DecodeBody decodes a JSON request body into T, normalizes it and
// validates it against its schema tags. The three failure modes
// (unreadable body, malformed JSON, schema violation) all surface as
// VALIDATION_ERROR; each validator in a route's chain independently
// short-circuits.
func DecodeBody[T any](r *http.Request) (T, error) {
	var req T

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, apperror.Validation("corpo da requisição vazio")
		}
		return req, apperror.Validation("JSON inválido no corpo da requisição")
	}

	return req, Check(&req)
}

// Check normalizes and validates an already-decoded value. Used
// directly for multipart forms, where decoding happens field by field.
func Check(v any) error {
	if n, ok := v.(Normalizer); ok {
		n.Normalize()
	}

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperror.Validation("dados inválidos", translate(verrs)...)
		}
		return apperror.Validation(err.Error())
	}
	return nil
}

// IDParam reads a numeric route parameter and coerces it to a positive
// int64. Anything else — non-numeric, zero, negative — is a dedicated
// invalid-id validation error (HTTP 400 at the boundary, never a 404).
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.InvalidField(name,
			fmt.Sprintf("%s deve ser um inteiro positivo", name))
	}
	return id, nil
}

// NormalizeEmail trims and lowercases an email address. Matching the
// storage normalization keeps the unique check case-insensitive.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeTelefone strips everything but digits from a phone number:
// "(11) 98765-4321" → "11987654321". Empty input stays empty.
func NormalizeTelefone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// translate maps validator tags to wire-level field errors. Namespace
// is "StructName.field.nested" — the struct name is dropped and the
// rest dot-joined as the field path.
func translate(verrs validator.ValidationErrors) []apperror.FieldError {
	details := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apperror.FieldError{
			Field:   fieldPath(fe),
			Message: messageFor(fe),
			Code:    codeFor(fe.Tag()),
		})
	}
	return details
}

func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}

func codeFor(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "email":
		return "invalid_email"
	case "oneof":
		return "invalid_enum"
	case "min", "max", "gte", "lte":
		return "out_of_range"
	case "telefone":
		return "invalid_phone"
	default:
		return "invalid"
	}
}

func messageFor(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", field)
	case "email":
		return fmt.Sprintf("%s deve ser um email válido", field)
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s deve ter no mínimo %s caracteres", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s deve ser menor ou igual a %s", field, fe.Param())
	case "telefone":
		return fmt.Sprintf("%s deve conter 10 ou 11 dígitos", field)
	default:
		return fmt.Sprintf("%s é inválido", field)
	}
}
