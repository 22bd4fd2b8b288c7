package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"go-school-records/internal/middleware"
	"go-school-records/internal/model"
	"go-school-records/internal/service"
	"go-school-records/internal/validation"
	"go-school-records/pkg/apierror"
)

type AuthHandler struct {
	auth     *service.AuthService
	validate *validator.Validate
}

func NewAuthHandler(auth *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{auth: auth, validate: validate}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Cuerpo JSON inválido")
		return
	}

	// Format violations reuse the credential-failure bodies so a probe
	// cannot tell a malformed username from an unknown one.
	if err := h.validate.Struct(payload); err != nil {
		if validation.FieldFailed(err, "Username") {
			writeLoginError(w, "Usuario inválido")
		} else {
			writeLoginError(w, "Contraseña inválido")
		}
		return
	}

	result, err := h.auth.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		var apiErr *apierror.APIError
		if errors.As(err, &apiErr) && apiErr.Code == "INVALID_CREDENTIALS" {
			writeLoginError(w, apiErr.Message)
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{
		Success:  true,
		Token:    result.Token,
		Username: result.Username,
		Roles:    result.Roles,
		AlumnoID: result.StudentID,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No autenticado.")
		return
	}

	writeJSON(w, http.StatusOK, model.MeResponse{
		Success:  true,
		UserID:   claims.UserID,
		Username: claims.Username,
		Roles:    claims.Roles.Names(),
		AlumnoID: claims.StudentID,
	})
}

func writeLoginError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, model.LoginErrorResponse{Success: false, Error: message})
}
