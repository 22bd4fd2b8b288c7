package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"go-school-records/internal/middleware"
	"go-school-records/internal/model"
	"go-school-records/internal/service"
)

type GradeHandler struct {
	grades   *service.GradeService
	validate *validator.Validate
}

func NewGradeHandler(grades *service.GradeService, validate *validator.Validate) *GradeHandler {
	return &GradeHandler{grades: grades, validate: validate}
}

func (h *GradeHandler) List(w http.ResponseWriter, r *http.Request) {
	grades, err := h.grades.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "notas": grades})
}

func (h *GradeHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	grades, err := h.grades.ListByStudent(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "notas": grades})
}

// MyGrades serves the caller's own grades; the linked-student gate upstream
// guarantees the identity knows which student that is.
func (h *GradeHandler) MyGrades(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	grades, err := h.grades.ListOwn(r.Context(), claims)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "notas": grades})
}

func (h *GradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo JSON inválido")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	id, err := h.grades.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Se cargo una nota",
		"id":      id,
	})
}

func (h *GradeHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo JSON inválido")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if err := h.grades.Update(r.Context(), id, payload); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Nota actualizada correctamente."})
}
