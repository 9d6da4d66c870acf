// Package apperror defines the application error taxonomy.
//
// Services and middleware return these errors; a single terminal stage
// in the handler package (writeError) maps them to HTTP status codes
// and the uniform JSON error body. No handler invents its own error
// shape.
//
// The sentinels below are matched with errors.Is across wrapped chains;
// *AppError carries the wire-level code and human-readable message,
// plus optional field-level details for validation failures.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Wire-level error codes returned inside the response envelope.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeEmailInUse   = "EMAIL_IN_USE"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL"
)

// FieldError is one violated validation rule. Field paths are
// dot-joined for nested errors (e.g. "endereco.cep").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// AppError is a classified application error.
type AppError struct {
	Err     error        // sentinel, for errors.Is matching
	Code    string       // wire code (VALIDATION_ERROR, NOT_FOUND, ...)
	Message string       // human-readable, safe to expose
	Details []FieldError // populated for validation errors only
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation returns a 400-class error with field-level details.
func Validation(message string, details ...FieldError) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Code:    CodeValidation,
		Message: message,
		Details: details,
	}
}

// InvalidField is shorthand for a single-field validation failure.
func InvalidField(field, message string) *AppError {
	return Validation(message, FieldError{Field: field, Message: message, Code: "invalid"})
}

// Unauthorized returns a 401-class error. The message may distinguish
// expired from missing tokens, but the code is always UNAUTHORIZED so
// the response discloses nothing beyond "not authenticated".
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// Forbidden returns a 403-class error: valid credential, insufficient
// privilege.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Code:    CodeForbidden,
		Message: message,
	}
}

// NotFound returns a 404-class error for a missing target resource.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s não encontrado(a) com id %d", resource, id),
	}
}

// MissingReference reports a foreign key pointing at a record that does
// not exist. Unlike NotFound this is a client input problem (the
// payload named a nonexistent disciplina/autor), so it maps to 400 and
// names the violated reference instead of leaking the store error.
func MissingReference(field string, id int64) *AppError {
	msg := fmt.Sprintf("%s %d não existe", field, id)
	return &AppError{
		Err:     ErrValidation,
		Code:    CodeValidation,
		Message: msg,
		Details: []FieldError{{Field: field, Message: msg, Code: "reference_not_found"}},
	}
}

// Conflict returns a 409-class error for uniqueness violations.
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Code:    CodeConflict,
		Message: message,
	}
}

// EmailInUse is the dedicated conflict for duplicate user emails.
func EmailInUse(email string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Code:    CodeEmailInUse,
		Message: fmt.Sprintf("email %s já está em uso", email),
	}
}
