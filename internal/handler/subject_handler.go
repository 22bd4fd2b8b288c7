package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"go-school-records/internal/middleware"
	"go-school-records/internal/model"
	"go-school-records/internal/service"
)

type SubjectHandler struct {
	subjects *service.SubjectService
	validate *validator.Validate
}

func NewSubjectHandler(subjects *service.SubjectService, validate *validator.Validate) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, validate: validate}
}

func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjects.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "materias": subjects})
}

func (h *SubjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	subject, err := h.subjects.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "materia": subject})
}

func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo JSON inválido")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	subject, err := h.subjects.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "materia": subject})
}

func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo JSON inválido")
		return
	}

	if payload.Nombre == nil && payload.Codigo == nil && payload.Anio == nil {
		writeMessage(w, http.StatusBadRequest, "No hay campos para actualizar")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if err := h.subjects.Update(r.Context(), id, payload); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Materia actualizada correctamente"})
}

func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.subjects.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": id})
}

// MySubjects lists the subjects the caller's linked student is graded in.
func (h *SubjectHandler) MySubjects(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	subjects, err := h.subjects.ListOwn(r.Context(), claims)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "materias": subjects})
}
