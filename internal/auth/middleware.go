package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/psouza/gerador-provas/internal/apperror"
	"github.com/psouza/gerador-provas/internal/model"
)

// contextKey is an unexported type for context keys in this package —
// only this package can create keys of this type, so no other package
// can shadow or read the identity value by accident.
type contextKey string

const identityKey contextKey = "identity"

// IdentityFromContext retrieves the authenticated identity attached by
// RequireAuth or OptionalAuth. Returns (zero, false) for anonymous
// requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.ID > 0
}

// WithIdentity returns a context carrying the given identity. Exported
// for handler tests that exercise protected endpoints without running
// the middleware chain.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// RequireAuth enforces bearer-token authentication.
//
// Header parsing is deliberately strict: the value is split on single
// spaces and must yield exactly two parts. "Bearer  x" (double space)
// or a token containing internal whitespace is rejected even though it
// "looks" well-formed. The scheme comparison is case-insensitive, so
// "bearer <token>" is accepted.
//
// The response code is always UNAUTHORIZED regardless of the internal
// cause (missing vs malformed vs expired) — the message only
// distinguishes expiry, and the precise cause is logged server-side.
func RequireAuth(tokens *TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := identityFromHeader(r.Header.Get("Authorization"), tokens)
			if err != nil {
				logger.Warn("autenticação recusada",
					slog.String("path", r.URL.Path),
					slog.String("causa", err.Error()),
				)
				writeUnauthorized(w, unauthorizedMessage(err))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the identity when a valid token is present but
// never rejects: any parsing or verification failure simply leaves the
// request anonymous. Used on routes that behave differently for
// authenticated and anonymous callers.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, err := identityFromHeader(r.Header.Get("Authorization"), tokens); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), identityKey, id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles gates access by role. Must run after RequireAuth.
//
// No identity in context → 401 (defensive: authentication was skipped
// or failed silently). An empty role list passes unconditionally — the
// gate degrades to authentication-only. Roles are canonical (see
// model.ParseRole), so membership is a plain comparison.
func RequireRoles(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				writeUnauthorized(w, "token não fornecido")
				return
			}

			if len(roles) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			for _, role := range roles {
				if id.Papel.Is(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeAuthError(w, http.StatusForbidden, apperror.CodeForbidden,
				"permissão insuficiente para esta operação")
		})
	}
}

// RequireOwnerOrRole passes when the caller either holds the privileged
// role or owns the resource (the route parameter equals the caller's
// own id). Must run after RequireAuth.
func RequireOwnerOrRole(param string, privileged model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				writeUnauthorized(w, "token não fornecido")
				return
			}

			if id.Papel.Is(privileged) {
				next.ServeHTTP(w, r)
				return
			}

			resourceID, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
			if err != nil || resourceID <= 0 {
				writeAuthError(w, http.StatusBadRequest, apperror.CodeValidation,
					"id inválido na rota")
				return
			}

			if resourceID == id.ID {
				next.ServeHTTP(w, r)
				return
			}

			writeAuthError(w, http.StatusForbidden, apperror.CodeForbidden,
				"recurso pertence a outro usuário")
		})
	}
}

// identityFromHeader implements the header-parsing algorithm shared by
// RequireAuth and OptionalAuth.
func identityFromHeader(header string, tokens *TokenService) (Identity, error) {
	if header == "" {
		return Identity{}, errors.New("token não fornecido")
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 {
		return Identity{}, errors.New("formato inválido, use Bearer <token>")
	}

	if !strings.EqualFold(parts[0], "Bearer") {
		return Identity{}, errors.New("formato inválido, use Bearer <token>")
	}

	return tokens.Verify(parts[1])
}

// unauthorizedMessage picks the externally visible message: expiry gets
// its own wording, every other cause collapses to the parser/verifier
// message or a generic one. The code is UNAUTHORIZED either way.
func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "token expirado"
	case errors.Is(err, ErrTokenMalformed), errors.Is(err, ErrTokenNotYetValid):
		return "token inválido"
	default:
		return err.Error()
	}
}

// authErrorBody mirrors the handler package's response envelope for the
// failure path. Duplicated here (rather than importing handler) to keep
// the dependency direction handler → auth.
type authErrorBody struct {
	Success bool          `json:"success"`
	Error   authErrorInfo `json:"error"`
}

type authErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	writeAuthError(w, http.StatusUnauthorized, apperror.CodeUnauthorized, message)
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(authErrorBody{
		Success: false,
		Error:   authErrorInfo{Code: code, Message: message},
	})
}
