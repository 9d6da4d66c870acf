package handler

import (
	"log/slog"
	"net/http"

	"github.com/psouza/gerador-provas/internal/apperror"
	"github.com/psouza/gerador-provas/internal/auth"
	"github.com/psouza/gerador-provas/internal/service"
	"github.com/psouza/gerador-provas/internal/validation"
	"github.com/psouza/gerador-provas/internal/version"
)

// AuthHandler exposes the v2 authentication endpoints: register, login
// and me.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, logger: logger}
}

// authPayload is the data block for register/login responses: the
// created/authenticated user in the v2 view plus the bearer token.
// The senha hash never appears here — the v2 view has no field for it.
type authPayload struct {
	Usuario version.UserV2 `json:"usuario"`
	Token   string         `json:"token"`
}

// HandleRegister creates an account through the v2 representation and
// issues a token.
//
// HTTP: POST /v2/auth/registrar
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeBody[version.CreateUserV2](r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "v2", authPayload{
		Usuario: version.V2View(result.User),
		Token:   result.Token,
	})
}

// HandleLogin authenticates email+senha and issues a token.
//
// HTTP: POST /v2/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeBody[version.LoginRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "v2", authPayload{
		Usuario: version.V2View(result.User),
		Token:   result.Token,
	})
}

// HandleMe returns the authenticated caller's own record (v2 view).
//
// HTTP: GET /v2/auth/me (requires bearer token)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		// RequireAuth should have rejected already; defensive.
		writeError(w, apperror.Unauthorized("token não fornecido"))
		return
	}

	user, err := h.auth.Me(r.Context(), id.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, "v2", version.V2View(user))
}
