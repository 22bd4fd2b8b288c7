package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-school-records/internal/model"
	"go-school-records/pkg/apierror"
)

const bcryptCost = 12

// CredentialStore is the read-only lookup surface the login flow needs. The
// concrete repositories implement it; the service never issues SQL itself.
type CredentialStore interface {
	FindUserByUsername(ctx context.Context, username string) (model.User, error)
	FindRoleNamesByUserID(ctx context.Context, userID int64) ([]string, error)
	FindStudentIDByUserID(ctx context.Context, userID int64) (*int64, error)
}

// LoginResult carries the freshly minted token and the denormalized identity
// view returned to the client alongside it.
type LoginResult struct {
	Token     string
	Username  string
	Roles     []string
	StudentID *int64
}

type AuthService struct {
	store     CredentialStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService fails when the signing secret is empty so the process
// refuses to start instead of issuing unverifiable tokens.
func NewAuthService(jwtSecret string, tokenTTL time.Duration, store CredentialStore) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if tokenTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &AuthService{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}, nil
}

// Login verifies credentials and mints a token. Unknown username and wrong
// password both come back as a 400; the status never reveals which one it
// was.
func (s *AuthService) Login(ctx context.Context, username string, password string) (LoginResult, error) {
	user, err := s.store.FindUserByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		return LoginResult{}, apierror.New("INVALID_CREDENTIALS", "Usuario inválido", http.StatusBadRequest)
	}
	if err != nil {
		return LoginResult{}, err
	}

	if !user.Active {
		return LoginResult{}, apierror.New("INVALID_CREDENTIALS", "Usuario inválido", http.StatusBadRequest)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return LoginResult{}, apierror.New("INVALID_CREDENTIALS", "Contraseña inválido", http.StatusBadRequest)
	}

	roleNames, err := s.store.FindRoleNamesByUserID(ctx, user.ID)
	if err != nil {
		return LoginResult{}, err
	}
	roles := model.NewRoleSet(roleNames...)

	var studentID *int64
	if roles.Has(model.RoleStudent) {
		studentID, err = s.store.FindStudentIDByUserID(ctx, user.ID)
		if err != nil {
			return LoginResult{}, err
		}
	}

	token, err := s.IssueToken(user.ID, user.Username, roles, studentID)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:     token,
		Username:  user.Username,
		Roles:     roles.Names(),
		StudentID: studentID,
	}, nil
}

// IssueToken mints a signed token whose claims are a snapshot of the role
// and student-link state at issuance. The snapshot is not revisited until
// the token expires.
func (s *AuthService) IssueToken(userID int64, username string, roles model.RoleSet, studentID *int64) (string, error) {
	now := time.Now().UTC()

	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"roles":    roles.Names(),
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	if studentID != nil {
		claims["alumno_id"] = *studentID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature and expiry and decodes the identity
// context. No database access happens here; the token alone decides.
func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrUnauthenticated
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrUnauthenticated
	}

	sub, ok := claimsMap["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, model.ErrUnauthenticated
	}

	claims := &model.AuthClaims{
		UserID: int64(sub),
		Roles:  model.RoleSet{},
	}
	claims.Username, _ = claimsMap["username"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)

	if rawRoles, ok := claimsMap["roles"].([]interface{}); ok {
		for _, raw := range rawRoles {
			if name, ok := raw.(string); ok {
				claims.Roles[name] = struct{}{}
			}
		}
	}

	if rawID, ok := claimsMap["alumno_id"].(float64); ok {
		id := int64(rawID)
		claims.StudentID = &id
	}

	return claims, nil
}

// CanAccessStudent decides whether an identity may read a specific student
// record: admins always, the owning student only for their own id.
func CanAccessStudent(claims *model.AuthClaims, targetStudentID int64) bool {
	if claims == nil {
		return false
	}
	if claims.Roles.Has(model.RoleAdmin) {
		return true
	}
	return claims.Roles.Has(model.RoleStudent) &&
		claims.StudentID != nil &&
		*claims.StudentID == targetStudentID
}

// VerifyPassword is a one-way comparison; a mismatch is a plain false,
// never an error.
func VerifyPassword(plaintext string, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
