// Package handler implements the HTTP layer: request parsing, response
// shaping and the terminal error-mapping stage.
//
// Every endpoint — success or failure, v1 or v2 — responds with the
// same envelope:
//
//	{"success": bool, "data"?, "message"?, "error"?: {code, message,
//	 details?}, "total"?, "version"?}
//
// and every failure funnels through writeError, which translates the
// apperror taxonomy into HTTP status codes. No handler writes an
// ad-hoc error shape.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/psouza/gerador-provas/internal/apperror"
)

// Envelope is the uniform response body.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Total   *int       `json:"total,omitempty"`
	Version string     `json:"version,omitempty"`
}

// ErrorInfo is the error block inside the envelope.
type ErrorInfo struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already sent; logging is all that's left.
		slog.Error("falha ao codificar resposta JSON", slog.String("error", err.Error()))
	}
}

// writeData sends a success envelope.
func writeData(w http.ResponseWriter, status int, version string, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data, Version: version})
}

// writeList sends a success envelope with the total count, used by
// get-all endpoints.
func writeList(w http.ResponseWriter, version string, data any, total int) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Total: &total, Version: version})
}

// writeDeleted sends the pre-delete snapshot with a confirmation
// message.
func writeDeleted(w http.ResponseWriter, version string, data any) {
	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Message: "registro removido",
		Version: version,
	})
}

// writeError maps a domain error to HTTP: the terminal stage for every
// failure in middleware, handlers and services.
//
// errors.As extracts the innermost *AppError (services wrap with
// fmt.Errorf("...: %w", err)), errors.Is classifies by sentinel.
// Anything unclassified — store failures, bugs — becomes a generic 500
// INTERNAL; the raw error is logged, never exposed.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		}

		writeJSON(w, status, Envelope{
			Success: false,
			Error: &ErrorInfo{
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
		return
	}

	slog.Error("erro não classificado", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, Envelope{
		Success: false,
		Error: &ErrorInfo{
			Code:    apperror.CodeInternal,
			Message: "erro interno no servidor",
		},
	})
}
