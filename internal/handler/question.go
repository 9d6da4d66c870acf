package handler

import (
	"log/slog"
	"net/http"

	"github.com/psouza/gerador-provas/internal/service"
	"github.com/psouza/gerador-provas/internal/validation"
)

// QuestionHandler exposes questão CRUD, shared between the v1 and v2
// route trees the same way SubjectHandler is.
type QuestionHandler struct {
	questions *service.QuestionService
	logger    *slog.Logger
}

// NewQuestionHandler creates a QuestionHandler.
func NewQuestionHandler(questions *service.QuestionService, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{questions: questions, logger: logger}
}

type questionCreateRequest struct {
	Enunciado       string  `json:"enunciado" validate:"required"`
	Dificuldade     int     `json:"dificuldade" validate:"required,gte=1,lte=5"`
	RespostaCorreta *string `json:"respostaCorreta"`
	DisciplinaID    int64   `json:"disciplinaId" validate:"required,gt=0"`
	AutorID         int64   `json:"autorId" validate:"required,gt=0"`
	Ativa           *bool   `json:"ativa"`
}

type questionUpdateRequest struct {
	Enunciado       *string `json:"enunciado" validate:"omitempty,min=1"`
	Dificuldade     *int    `json:"dificuldade" validate:"omitempty,gte=1,lte=5"`
	RespostaCorreta *string `json:"respostaCorreta"`
	DisciplinaID    *int64  `json:"disciplinaId" validate:"omitempty,gt=0"`
	AutorID         *int64  `json:"autorId" validate:"omitempty,gt=0"`
	Ativa           *bool   `json:"ativa"`
}

// HandleList returns all questões.
//
// HTTP: GET /v{1,2}/questoes
func (h *QuestionHandler) HandleList(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := h.questions.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeList(w, apiVersion, questions, len(questions))
	}
}

// HandleGet returns one questão.
//
// HTTP: GET /v{1,2}/questoes/{id}
func (h *QuestionHandler) HandleGet(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validation.IDParam(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}

		question, err := h.questions.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, apiVersion, question)
	}
}

// HandleCreate creates a questão. The referenced disciplina and autor
// must already exist; the service reports which reference is missing.
//
// HTTP: POST /v{1,2}/questoes
func (h *QuestionHandler) HandleCreate(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := validation.DecodeBody[questionCreateRequest](r)
		if err != nil {
			writeError(w, err)
			return
		}

		question, err := h.questions.Create(r.Context(), service.QuestionInput{
			Enunciado:       req.Enunciado,
			Dificuldade:     req.Dificuldade,
			RespostaCorreta: req.RespostaCorreta,
			DisciplinaID:    req.DisciplinaID,
			AutorID:         req.AutorID,
			Ativa:           req.Ativa,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusCreated, apiVersion, question)
	}
}

// HandleUpdate applies a partial update to a questão.
//
// HTTP: PUT /v{1,2}/questoes/{id}
func (h *QuestionHandler) HandleUpdate(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validation.IDParam(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}

		req, err := validation.DecodeBody[questionUpdateRequest](r)
		if err != nil {
			writeError(w, err)
			return
		}

		question, err := h.questions.Update(r.Context(), id, service.QuestionUpdate{
			Enunciado:       req.Enunciado,
			Dificuldade:     req.Dificuldade,
			RespostaCorreta: req.RespostaCorreta,
			DisciplinaID:    req.DisciplinaID,
			AutorID:         req.AutorID,
			Ativa:           req.Ativa,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeData(w, http.StatusOK, apiVersion, question)
	}
}

// HandleDelete removes a questão and returns the pre-delete snapshot.
//
// HTTP: DELETE /v{1,2}/questoes/{id}
func (h *QuestionHandler) HandleDelete(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validation.IDParam(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}

		question, err := h.questions.Delete(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeDeleted(w, apiVersion, question)
	}
}
