package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"go-school-records/internal/model"
	"go-school-records/internal/service"
)

type RoleHandler struct {
	roles    *service.RoleService
	validate *validator.Validate
}

func NewRoleHandler(roles *service.RoleService, validate *validator.Validate) *RoleHandler {
	return &RoleHandler{roles: roles, validate: validate}
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "roles": roles})
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo JSON inválido")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Nombre inválido")
		return
	}

	role, err := h.roles.Create(r.Context(), payload.Nombre)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "rol": role})
}

func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo JSON inválido")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Nombre inválido")
		return
	}

	if err := h.roles.Update(r.Context(), id, payload.Nombre); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "rol": model.Role{ID: id, Nombre: payload.Nombre}})
}
