package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"go-school-records/internal/model"
	"go-school-records/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Success: false, Message: message})
}

func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		writeMessage(w, apiErr.HTTPStatus, apiErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "Usuario no encontrado.")
	case errors.Is(err, model.ErrRoleNotFound):
		writeMessage(w, http.StatusNotFound, "Rol no encontrado.")
	case errors.Is(err, model.ErrStudentNotFound):
		writeMessage(w, http.StatusNotFound, "Alumno no encontrado.")
	case errors.Is(err, model.ErrSubjectNotFound):
		writeMessage(w, http.StatusNotFound, "Materia no encontrada")
	case errors.Is(err, model.ErrGradeNotFound):
		writeMessage(w, http.StatusNotFound, "Nota no encontrada.")
	case errors.Is(err, model.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "Acceso denegado: no tienes permiso para ver este perfil de alumno.")
	case errors.Is(err, model.ErrStudentNotLinked):
		writeMessage(w, http.StatusForbidden, "Acceso denegado: se requiere un perfil de alumno vinculado para esta operación.")
	case errors.Is(err, model.ErrUsernameTaken):
		writeMessage(w, http.StatusBadRequest, "El nombre de usuario ya existe.")
	case errors.Is(err, model.ErrUserAlreadyLinked):
		writeMessage(w, http.StatusBadRequest, "Este ID de usuario ya está asociado a un alumno.")
	case errors.Is(err, model.ErrDuplicateCode):
		writeMessage(w, http.StatusBadRequest, "Código de materia ya existe")
	case errors.Is(err, model.ErrDuplicateRoleName):
		writeMessage(w, http.StatusBadRequest, "El nombre de rol ya existe.")
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.New("BAD_REQUEST", "ID inválido", http.StatusBadRequest)
	}
	return id, nil
}
