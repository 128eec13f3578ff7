// Package usuario implements registration, login and profile retrieval for
// the clinic's credential records.
package usuario

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinica/clinica/internal/platform/auth"
	"github.com/clinica/clinica/internal/platform/jsonstore"
	"github.com/clinica/clinica/internal/platform/resource"
)

const collection = "usuarios"

var (
	// ErrUserExists signals a registration against an already-taken email.
	ErrUserExists = fmt.Errorf("%w: el usuario ya existe", resource.ErrConflict)
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	// ErrInvalidRole signals a role outside {admin, paciente}.
	ErrInvalidRole = errors.New("rol no válido")
)

// NewRepository returns the usuarios repository. IDs follow the same
// max(ids)+1 scheme as every other collection, so deleting a user never frees
// its id for reuse.
func NewRepository(store *jsonstore.Store) *resource.Repository {
	return resource.New(store, collection, "nombre", "email", "password", "rol")
}

type Service struct {
	repo       *resource.Repository
	tokens     *auth.TokenService
	bcryptCost int
}

func NewService(repo *resource.Repository, tokens *auth.TokenService, bcryptCost int) *Service {
	return &Service{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a credential record with a bcrypt-hashed password. Email
// uniqueness is an exact, case-sensitive match checked only here.
func (s *Service) Register(ctx context.Context, nombre, email, password, rol string) error {
	if rol != auth.RoleAdmin && rol != auth.RolePaciente {
		return ErrInvalidRole
	}
	if _, err := s.repo.FindBy(ctx, "email", email); err == nil {
		return ErrUserExists
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.repo.Create(ctx, jsonstore.Record{
		"nombre":   nombre,
		"email":    email,
		"password": hash,
		"rol":      rol,
	})
	return err
}

// Login verifies the credentials and issues a bearer token carrying the
// user's id and role.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	rec, err := s.repo.FindBy(ctx, "email", email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	hash, _ := rec["password"].(string)
	if !auth.CheckPassword(hash, password) {
		return "", ErrInvalidCredentials
	}

	rol, _ := rec["rol"].(string)
	return s.tokens.Issue(recordID(rec), rol)
}

func recordID(rec jsonstore.Record) int {
	switch v := rec["id"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
