package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/psouza/gerador-provas/internal/apperror"
	"github.com/psouza/gerador-provas/internal/service"
	"github.com/psouza/gerador-provas/internal/storage"
	"github.com/psouza/gerador-provas/internal/validation"
	"github.com/psouza/gerador-provas/internal/version"
)

// maxUploadSize bounds the multipart memory buffer for foto uploads.
const maxUploadSize = 10 << 20 // 10 MiB

// UserHandler exposes user CRUD for both API versions. The same
// service backs both; only request schemas and response views differ.
type UserHandler struct {
	users   *service.UserService
	uploads storage.Uploader // nil when IMGBB_API_KEY is not configured
	logger  *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, uploads storage.Uploader, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, uploads: uploads, logger: logger}
}

// ---- v1 (legacy) -------------------------------------------------

// HandleListV1 returns all users in the legacy view.
//
// HTTP: GET /v1/usuarios
func (h *UserHandler) HandleListV1(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	views := version.V1Views(users)
	writeList(w, "v1", views, len(views))
}

// HandleGetV1 returns one user in the legacy view.
//
// HTTP: GET /v1/usuarios/{id}
func (h *UserHandler) HandleGetV1(w http.ResponseWriter, r *http.Request) {
	id, err := validation.IDParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "v1", version.V1View(user))
}

// HandleCreateV1 creates a user through the legacy representation.
//
// HTTP: POST /v1/usuarios
func (h *UserHandler) HandleCreateV1(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeBody[version.CreateUserV1](r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.CreateV1(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "v1", version.V1View(user))
}

// HandleUpdateV1 applies a legacy partial update.
//
// HTTP: PUT /v1/usuarios/{id}
func (h *UserHandler) HandleUpdateV1(w http.ResponseWriter, r *http.Request) {
	id, err := validation.IDParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := validation.DecodeBody[version.UpdateUserV1](r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.UpdateV1(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "v1", version.V1View(user))
}

// HandleDeleteV1 removes a user and returns the pre-delete snapshot.
//
// HTTP: DELETE /v1/usuarios/{id}
func (h *UserHandler) HandleDeleteV1(w http.ResponseWriter, r *http.Request) {
	id, err := validation.IDParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeDeleted(w, "v1", version.V1View(user))
}

// ---- v2 (current) ------------------------------------------------

// HandleListV2 returns all users in the current view.
//
// HTTP: GET /v2/usuarios (public)
func (h *UserHandler) HandleListV2(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	views := version.V2Views(users)
	writeList(w, "v2", views, len(views))
}

// HandleGetV2 returns one user in the current view.
//
// HTTP: GET /v2/usuarios/{id}
func (h *UserHandler) HandleGetV2(w http.ResponseWriter, r *http.Request) {
	id, err := validation.IDParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "v2", version.V2View(user))
}

// HandleCreateV2 creates a user through the current representation.
// Accepts JSON or multipart/form-data; the multipart form may carry a
// `foto` file, which is uploaded to the blob store and stored as a URL.
//
// HTTP: POST /v2/usuarios (admin only)
func (h *UserHandler) HandleCreateV2(w http.ResponseWriter, r *http.Request) {
	var (
		req  version.CreateUserV2
		foto *string
		err  error
	)

	if isMultipart(r) {
		req, foto, err = h.decodeCreateForm(r)
	} else {
		req, err = validation.DecodeBody[version.CreateUserV2](r)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.CreateV2(r.Context(), req, foto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "v2", version.V2View(user))
}

// HandleUpdateV2 applies a current partial update, optionally with a
// new foto.
//
// HTTP: PUT /v2/usuarios/{id} (owner or admin)
func (h *UserHandler) HandleUpdateV2(w http.ResponseWriter, r *http.Request) {
	id, err := validation.IDParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var (
		req  version.UpdateUserV2
		foto *string
	)

	if isMultipart(r) {
		req, foto, err = h.decodeUpdateForm(r)
	} else {
		req, err = validation.DecodeBody[version.UpdateUserV2](r)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.UpdateV2(r.Context(), id, req, foto)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, "v2", version.V2View(user))
}

// HandleDeleteV2 removes a user and returns the pre-delete snapshot.
//
// HTTP: DELETE /v2/usuarios/{id} (admin only)
func (h *UserHandler) HandleDeleteV2(w http.ResponseWriter, r *http.Request) {
	id, err := validation.IDParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeDeleted(w, "v2", version.V2View(user))
}

// ---- multipart helpers -------------------------------------------

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func (h *UserHandler) decodeCreateForm(r *http.Request) (version.CreateUserV2, *string, error) {
	var req version.CreateUserV2

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return req, nil, apperror.Validation("formulário multipart inválido")
	}

	req = version.CreateUserV2{
		PrimeiroNome: r.FormValue("primeiro_nome"),
		Sobrenome:    r.FormValue("sobrenome"),
		Email:        r.FormValue("email"),
		Senha:        r.FormValue("senha"),
		TipoUsuario:  r.FormValue("tipo_usuario"),
		Telefone:     r.FormValue("telefone"),
	}
	if err := validation.Check(&req); err != nil {
		return req, nil, err
	}

	foto, err := h.uploadFoto(r)
	return req, foto, err
}

func (h *UserHandler) decodeUpdateForm(r *http.Request) (version.UpdateUserV2, *string, error) {
	var req version.UpdateUserV2

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return req, nil, apperror.Validation("formulário multipart inválido")
	}

	// Partial semantics: only keys present in the form count as
	// supplied, mirroring how absent JSON fields stay nil.
	req = version.UpdateUserV2{
		PrimeiroNome: formValue(r, "primeiro_nome"),
		Sobrenome:    formValue(r, "sobrenome"),
		Email:        formValue(r, "email"),
		Senha:        formValue(r, "senha"),
		TipoUsuario:  formValue(r, "tipo_usuario"),
		Telefone:     formValue(r, "telefone"),
	}
	if err := validation.Check(&req); err != nil {
		return req, nil, err
	}

	foto, err := h.uploadFoto(r)
	return req, foto, err
}

func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// uploadFoto streams the optional foto file to the blob store and
// returns its URL. A missing file is not an error.
func (h *UserHandler) uploadFoto(r *http.Request) (*string, error) {
	file, header, err := r.FormFile("foto")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperror.Validation("arquivo de foto inválido")
	}
	defer file.Close()

	if h.uploads == nil {
		return nil, fmt.Errorf("upload de foto indisponível: blob store não configurado")
	}

	data, err := readAllLimited(file, maxUploadSize)
	if err != nil {
		return nil, apperror.Validation("arquivo de foto excede o tamanho máximo")
	}

	url, err := h.uploads.Upload(r.Context(), header.Filename, data)
	if err != nil {
		h.logger.Error("falha no upload da foto", slog.String("error", err.Error()))
		return nil, fmt.Errorf("enviando foto ao blob store: %w", err)
	}
	return &url, nil
}

func readAllLimited(f multipart.File, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("arquivo excede %d bytes", limit)
	}
	return data, nil
}
