package handler

import (
	"log/slog"
	"net/http"

	"github.com/psouza/gerador-provas/internal/service"
	"github.com/psouza/gerador-provas/internal/validation"
)

// SubjectHandler exposes disciplina CRUD. The v1 and v2 routes share
// these handlers — the wire shape of a disciplina is identical, only
// the envelope version string differs, so each method is parameterized
// by version at route-registration time.
type SubjectHandler struct {
	subjects *service.SubjectService
	logger   *slog.Logger
}

// NewSubjectHandler creates a SubjectHandler.
func NewSubjectHandler(subjects *service.SubjectService, logger *slog.Logger) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, logger: logger}
}

type subjectCreateRequest struct {
	Nome        string `json:"nome" validate:"required,max=120"`
	Ativa       *bool  `json:"ativa"`
	ProfessorID int64  `json:"professorId" validate:"required,gt=0"`
}

type subjectUpdateRequest struct {
	Nome        *string `json:"nome" validate:"omitempty,min=1,max=120"`
	Ativa       *bool   `json:"ativa"`
	ProfessorID *int64  `json:"professorId" validate:"omitempty,gt=0"`
}

// HandleList returns all disciplinas.
//
// HTTP: GET /v1/disciplinas | GET /v2/disciplinas
func (h *SubjectHandler) HandleList(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjects, err := h.subjects.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeList(w, apiVersion, subjects, len(subjects))
	}
}

// HandleGet returns one disciplina.
//
// HTTP: GET /v{1,2}/disciplinas/{id}
func (h *SubjectHandler) HandleGet(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validation.IDParam(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}

		subject, err := h.subjects.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, apiVersion, subject)
	}
}

// HandleCreate creates a disciplina.
//
// HTTP: POST /v{1,2}/disciplinas
func (h *SubjectHandler) HandleCreate(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := validation.DecodeBody[subjectCreateRequest](r)
		if err != nil {
			writeError(w, err)
			return
		}

		subject, err := h.subjects.Create(r.Context(), req.Nome, req.Ativa, req.ProfessorID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusCreated, apiVersion, subject)
	}
}

// HandleUpdate applies a partial update to a disciplina.
//
// HTTP: PUT /v{1,2}/disciplinas/{id}
func (h *SubjectHandler) HandleUpdate(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validation.IDParam(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}

		req, err := validation.DecodeBody[subjectUpdateRequest](r)
		if err != nil {
			writeError(w, err)
			return
		}

		subject, err := h.subjects.Update(r.Context(), id, req.Nome, req.Ativa, req.ProfessorID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, apiVersion, subject)
	}
}

// HandleDelete removes a disciplina and returns the pre-delete
// snapshot.
//
// HTTP: DELETE /v{1,2}/disciplinas/{id}
func (h *SubjectHandler) HandleDelete(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validation.IDParam(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}

		subject, err := h.subjects.Delete(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeDeleted(w, apiVersion, subject)
	}
}
