package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"go-school-records/internal/model"
	"go-school-records/pkg/apierror"
)

type stubCredentialStore struct {
	users map[string]model.User
	roles map[int64][]string
	links map[int64]int64
}

func (s *stubCredentialStore) FindUserByUsername(_ context.Context, username string) (model.User, error) {
	user, ok := s.users[username]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (s *stubCredentialStore) FindRoleNamesByUserID(_ context.Context, userID int64) ([]string, error) {
	return s.roles[userID], nil
}

func (s *stubCredentialStore) FindStudentIDByUserID(_ context.Context, userID int64) (*int64, error) {
	id, ok := s.links[userID]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func newTestStore(t *testing.T) *stubCredentialStore {
	t.Helper()

	hash, err := HashPassword("Clave123")
	require.NoError(t, err)

	return &stubCredentialStore{
		users: map[string]model.User{
			"ana":    {ID: 1, Username: "ana", PasswordHash: hash, Active: true},
			"juan":   {ID: 2, Username: "juan", PasswordHash: hash, Active: true},
			"baja":   {ID: 3, Username: "baja", PasswordHash: hash, Active: false},
			"suelto": {ID: 4, Username: "suelto", PasswordHash: hash, Active: true},
		},
		roles: map[int64][]string{
			1: {"admin"},
			2: {"alumno"},
			4: {"alumno"},
		},
		links: map[int64]int64{2: 7},
	}
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	svc, err := NewAuthService("test-secret", 4*time.Hour, newTestStore(t))
	require.NoError(t, err)
	return svc
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	_, err := NewAuthService("", 4*time.Hour, newTestStore(t))
	require.Error(t, err)

	_, err = NewAuthService("   ", 4*time.Hour, newTestStore(t))
	require.Error(t, err)

	_, err = NewAuthService("secret", 0, newTestStore(t))
	require.Error(t, err)
}

func TestLoginAdminIssuesRoleSnapshot(t *testing.T) {
	svc := newTestAuthService(t)

	result, err := svc.Login(context.Background(), "ana", "Clave123")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "ana", result.Username)
	require.Equal(t, []string{"admin"}, result.Roles)
	require.Nil(t, result.StudentID)

	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.UserID)
	require.Equal(t, "ana", claims.Username)
	require.True(t, claims.Roles.Has("admin"))
	require.False(t, claims.Roles.Has("alumno"))
	require.Nil(t, claims.StudentID)
}

func TestLoginLinkedStudentCarriesStudentID(t *testing.T) {
	svc := newTestAuthService(t)

	result, err := svc.Login(context.Background(), "juan", "Clave123")
	require.NoError(t, err)
	require.Equal(t, []string{"alumno"}, result.Roles)
	require.NotNil(t, result.StudentID)
	require.Equal(t, int64(7), *result.StudentID)

	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	require.NotNil(t, claims.StudentID)
	require.Equal(t, int64(7), *claims.StudentID)
}

func TestLoginStudentWithoutLink(t *testing.T) {
	svc := newTestAuthService(t)

	result, err := svc.Login(context.Background(), "suelto", "Clave123")
	require.NoError(t, err)
	require.Nil(t, result.StudentID)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestAuthService(t)

	result, err := svc.Login(context.Background(), "nadie", "Clave123")
	require.Empty(t, result.Token)

	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	require.Equal(t, "Usuario inválido", apiErr.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	result, err := svc.Login(context.Background(), "ana", "Otra1234")
	require.Empty(t, result.Token)

	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	require.Equal(t, "Contraseña inválido", apiErr.Message)
}

func TestLoginWrongPasswordAndUnknownUserShareStatus(t *testing.T) {
	svc := newTestAuthService(t)

	_, unknownErr := svc.Login(context.Background(), "nadie", "Clave123")
	_, wrongErr := svc.Login(context.Background(), "ana", "Otra1234")

	var unknownAPI, wrongAPI *apierror.APIError
	require.ErrorAs(t, unknownErr, &unknownAPI)
	require.ErrorAs(t, wrongErr, &wrongAPI)
	require.Equal(t, unknownAPI.HTTPStatus, wrongAPI.HTTPStatus)
}

func TestLoginInactiveUser(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "baja", "Clave123")

	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc := newTestAuthService(t)

	result, err := svc.Login(context.Background(), "ana", "Clave123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(result.Token + "x")
	require.ErrorIs(t, err, model.ErrUnauthenticated)

	_, err = svc.ValidateToken("not-a-token")
	require.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	svc := newTestAuthService(t)

	other, err := NewAuthService("other-secret", 4*time.Hour, newTestStore(t))
	require.NoError(t, err)

	token, err := other.IssueToken(1, "ana", model.NewRoleSet("admin"), nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestAuthService(t)

	now := time.Now().UTC()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      int64(1),
		"username": "ana",
		"roles":    []string{"admin"},
		"iat":      now.Add(-5 * time.Hour).Unix(),
		"exp":      now.Add(-1 * time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	require.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestValidateTokenRejectsUnexpectedMethod(t *testing.T) {
	svc := newTestAuthService(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": int64(1),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestRepeatedLoginsYieldDistinctValidTokens(t *testing.T) {
	svc := newTestAuthService(t)

	first, err := svc.Login(context.Background(), "ana", "Clave123")
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), "ana", "Clave123")
	require.NoError(t, err)

	require.NotEqual(t, first.Token, second.Token)

	_, err = svc.ValidateToken(first.Token)
	require.NoError(t, err)
	_, err = svc.ValidateToken(second.Token)
	require.NoError(t, err)
}

func TestCanAccessStudent(t *testing.T) {
	seven := int64(7)

	cases := []struct {
		name    string
		claims  *model.AuthClaims
		target  int64
		allowed bool
	}{
		{"nil claims", nil, 7, false},
		{"admin any record", &model.AuthClaims{Roles: model.NewRoleSet("admin")}, 7, true},
		{"owning student", &model.AuthClaims{Roles: model.NewRoleSet("alumno"), StudentID: &seven}, 7, true},
		{"other student's record", &model.AuthClaims{Roles: model.NewRoleSet("alumno"), StudentID: &seven}, 9, false},
		{"student without link", &model.AuthClaims{Roles: model.NewRoleSet("alumno")}, 7, false},
		{"no roles", &model.AuthClaims{Roles: model.NewRoleSet(), StudentID: &seven}, 7, false},
		{"admin and student, other record", &model.AuthClaims{Roles: model.NewRoleSet("admin", "alumno"), StudentID: &seven}, 9, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.allowed, CanAccessStudent(tc.claims, tc.target))
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Clave123")
	require.NoError(t, err)

	require.True(t, VerifyPassword("Clave123", hash))
	require.False(t, VerifyPassword("clave123", hash))
	require.False(t, VerifyPassword("", hash))
	require.False(t, VerifyPassword("Clave123", "not-a-hash"))
}

func TestLoginPropagatesStoreErrors(t *testing.T) {
	store := newTestStore(t)
	svc, err := NewAuthService("test-secret", 4*time.Hour, &failingStore{inner: store})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ana", "Clave123")
	require.Error(t, err)

	var apiErr *apierror.APIError
	require.False(t, errors.As(err, &apiErr))
}

type failingStore struct {
	inner *stubCredentialStore
}

func (f *failingStore) FindUserByUsername(ctx context.Context, username string) (model.User, error) {
	return f.inner.FindUserByUsername(ctx, username)
}

func (f *failingStore) FindRoleNamesByUserID(context.Context, int64) ([]string, error) {
	return nil, errors.New("connection reset")
}

func (f *failingStore) FindStudentIDByUserID(context.Context, int64) (*int64, error) {
	return nil, errors.New("connection reset")
}
