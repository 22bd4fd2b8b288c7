package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-school-records/internal/model"
)

type tokenValidator interface {
	ValidateToken(tokenString string) (*model.AuthClaims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

// AuthMiddleware holds an immutable reference to the token validator; the
// signing configuration is injected once at construction and never mutated.
type AuthMiddleware struct {
	validator tokenValidator
}

func NewAuthMiddleware(validator tokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth authenticates the request from the bearer token alone and
// attaches the identity context for downstream stages. No database access
// happens on this path.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeDenied(w, http.StatusUnauthorized, "No autenticado.")
			return
		}

		token := strings.TrimSpace(header[7:])
		claims, err := m.validator.ValidateToken(token)
		if err != nil {
			writeDenied(w, http.StatusUnauthorized, "Token inválido o expirado.")
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles allows the request iff the identity holds at least one of
// the permitted roles. Missing identity is a 401; a present identity with
// an empty intersection is a 403.
func (m *AuthMiddleware) RequireRoles(permitted ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeDenied(w, http.StatusUnauthorized, "Usuario no autenticado para autorización")
				return
			}

			for _, role := range permitted {
				if claims.Roles.Has(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeDenied(w, http.StatusForbidden, "Acceso denegado")
		})
	}
}

// RequireLinkedStudent guards "my own records" endpoints: the identity must
// hold the student role and carry a bound student id, so handlers know
// which student the caller is.
func (m *AuthMiddleware) RequireLinkedStudent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeDenied(w, http.StatusUnauthorized, "No autenticado.")
			return
		}

		if !claims.Roles.Has(model.RoleStudent) || claims.StudentID == nil {
			writeDenied(w, http.StatusForbidden,
				"Acceso denegado: se requiere un perfil de alumno vinculado para esta operación.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ClaimsFromContext(ctx context.Context) (*model.AuthClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.AuthClaims)
	return claims, ok
}

// ContextWithClaims is a test seam for exercising gated handlers without a
// real token.
func ContextWithClaims(ctx context.Context, claims *model.AuthClaims) context.Context {
	return context.WithValue(ctx, authClaimsContextKey, claims)
}

func writeDenied(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, model.ErrorResponse{Success: false, Message: message})
}
