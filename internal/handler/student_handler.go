package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"go-school-records/internal/middleware"
	"go-school-records/internal/model"
	"go-school-records/internal/service"
)

type StudentHandler struct {
	students *service.StudentService
	validate *validator.Validate
}

func NewStudentHandler(students *service.StudentService, validate *validator.Validate) *StudentHandler {
	return &StudentHandler{students: students, validate: validate}
}

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "alumnos": students})
}

// Get releases a specific student record. The service fetches before it
// authorizes, so callers see 404 for a missing record and 403 only when the
// record exists and is not theirs.
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No autenticado.")
		return
	}

	student, err := h.students.Get(r.Context(), claims, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "alumno": student})
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo JSON inválido")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	id, err := h.students.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Alumno creado correctamente.",
		"id":      id,
	})
}

func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo JSON inválido")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if err := h.students.Update(r.Context(), id, payload); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Alumno actualizado correctamente."})
}
