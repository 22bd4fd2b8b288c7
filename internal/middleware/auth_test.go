package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"go-school-records/internal/model"
)

type stubValidator struct {
	claims *model.AuthClaims
	err    error
}

func (s *stubValidator) ValidateToken(string) (*model.AuthClaims, error) {
	return s.claims, s.err
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func decodeDenied(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()

	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.False(t, body.Success)
	return body
}

func TestRequireAuthMissingHeader(t *testing.T) {
	m := NewAuthMiddleware(&stubValidator{claims: &model.AuthClaims{UserID: 1}})

	var called bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/alumnos/7", nil)

	m.RequireAuth(okHandler(&called)).ServeHTTP(rec, req)

	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "No autenticado.", decodeDenied(t, rec).Message)
}

func TestRequireAuthWrongScheme(t *testing.T) {
	m := NewAuthMiddleware(&stubValidator{claims: &model.AuthClaims{UserID: 1}})

	var called bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/alumnos/7", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	m.RequireAuth(okHandler(&called)).ServeHTTP(rec, req)

	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	m := NewAuthMiddleware(&stubValidator{err: model.ErrUnauthenticated})

	var called bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/alumnos/7", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	m.RequireAuth(okHandler(&called)).ServeHTTP(rec, req)

	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Token inválido o expirado.", decodeDenied(t, rec).Message)
}

func TestRequireAuthAttachesClaims(t *testing.T) {
	want := &model.AuthClaims{UserID: 2, Username: "juan", Roles: model.NewRoleSet("alumno")}
	m := NewAuthMiddleware(&stubValidator{claims: want})

	var got *model.AuthClaims
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		got = claims
		w.WriteHeader(http.StatusOK)
	})
	m.RequireAuth(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, want, got)
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	m := NewAuthMiddleware(&stubValidator{})

	var called bool
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)

	m.RequireRoles(model.RoleAdmin)(okHandler(&called)).ServeHTTP(rec, req)

	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Usuario no autenticado para autorización", decodeDenied(t, rec).Message)
}

func TestRequireRolesIntersection(t *testing.T) {
	m := NewAuthMiddleware(&stubValidator{})

	cases := []struct {
		name      string
		held      []string
		permitted []string
		allowed   bool
	}{
		{"exact match", []string{"admin"}, []string{"admin"}, true},
		{"no overlap", []string{"alumno"}, []string{"admin"}, false},
		{"empty role set", nil, []string{"admin"}, false},
		{"one of several permitted", []string{"alumno"}, []string{"admin", "alumno"}, true},
		{"extra held role keeps access", []string{"admin", "alumno"}, []string{"admin"}, true},
		{"widening permitted keeps access", []string{"admin"}, []string{"admin", "alumno"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var called bool
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
			claims := &model.AuthClaims{UserID: 1, Roles: model.NewRoleSet(tc.held...)}
			req = req.WithContext(ContextWithClaims(req.Context(), claims))

			m.RequireRoles(tc.permitted...)(okHandler(&called)).ServeHTTP(rec, req)

			require.Equal(t, tc.allowed, called)
			if tc.allowed {
				require.Equal(t, http.StatusOK, rec.Code)
			} else {
				require.Equal(t, http.StatusForbidden, rec.Code)
				require.Equal(t, "Acceso denegado", decodeDenied(t, rec).Message)
			}
		})
	}
}

func TestRequireLinkedStudent(t *testing.T) {
	m := NewAuthMiddleware(&stubValidator{})
	seven := int64(7)

	cases := []struct {
		name       string
		claims     *model.AuthClaims
		wantStatus int
	}{
		{"no identity", nil, http.StatusUnauthorized},
		{"admin without link", &model.AuthClaims{Roles: model.NewRoleSet("admin")}, http.StatusForbidden},
		{"student without link", &model.AuthClaims{Roles: model.NewRoleSet("alumno")}, http.StatusForbidden},
		{"link without student role", &model.AuthClaims{Roles: model.NewRoleSet("admin"), StudentID: &seven}, http.StatusForbidden},
		{"linked student", &model.AuthClaims{Roles: model.NewRoleSet("alumno"), StudentID: &seven}, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var called bool
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/notas/consulta-alumno", nil)
			if tc.claims != nil {
				req = req.WithContext(ContextWithClaims(req.Context(), tc.claims))
			}

			m.RequireLinkedStudent(okHandler(&called)).ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			require.Equal(t, tc.wantStatus == http.StatusOK, called)
		})
	}
}
