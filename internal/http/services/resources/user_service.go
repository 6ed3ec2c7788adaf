package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	"github.com/dropDatabas3/hellocrud/internal/observability/logger"
	"github.com/dropDatabas3/hellocrud/internal/security/password"
)

// UserInput es el usuario tal como llega del cliente, con el password sin hashear.
// Password nil en un replace conserva el hash actual.
// IsActive nil se interpreta como true.
type UserInput struct {
	ID       int64
	Username string
	Email    string
	Password *string
	IsActive *bool
}

// PasswordError: el password no cumple la política o está en la blacklist.
// Envuelve repository.ErrInvalidInput.
type PasswordError struct {
	Reasons []string
}

func (e *PasswordError) Error() string {
	return "password rejected: " + strings.Join(e.Reasons, ", ")
}

func (e *PasswordError) Unwrap() error { return repository.ErrInvalidInput }

// UserService define las operaciones CRUD de users.
type UserService interface {
	Create(ctx context.Context, in UserInput) (repository.User, error)
	List(ctx context.Context, page repository.Page) ([]repository.User, int, error)
	Get(ctx context.Context, id int64) (repository.User, error)
	Replace(ctx context.Context, id int64, in UserInput) (repository.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	*crudService[repository.User]
	hasher    password.Hasher
	policy    password.Policy
	blacklist *password.Blacklist
}

// NewUserService crea el service de users. Policy vacía usa password.DefaultPolicy.
func NewUserService(d Deps) UserService {
	policy := d.Policy
	if policy.MinLength == 0 {
		policy = password.DefaultPolicy
	}
	return &userService{
		crudService: &crudService[repository.User]{store: d.Users, component: "resources.users"},
		hasher:      d.Hasher,
		policy:      policy,
		blacklist:   d.Blacklist,
	}
}

func (s *userService) hashPassword(plain string) (string, error) {
	if ok, reasons := s.policy.Validate(plain); !ok {
		return "", &PasswordError{Reasons: reasons}
	}
	if s.blacklist.Contains(plain) {
		return "", &PasswordError{Reasons: []string{"blacklisted"}}
	}
	phc, err := s.hasher.Hash(plain)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return phc, nil
}

func isActive(v *bool) bool {
	return v == nil || *v
}

func (s *userService) Create(ctx context.Context, in UserInput) (repository.User, error) {
	if in.Password == nil {
		return repository.User{}, &PasswordError{Reasons: []string{"required"}}
	}
	phc, err := s.hashPassword(*in.Password)
	if err != nil {
		return repository.User{}, err
	}

	return s.crudService.Create(ctx, repository.User{
		ID:             in.ID,
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: phc,
		IsActive:       isActive(in.IsActive),
	})
}

// Replace reemplaza el usuario completo. Sin password conserva el hash existente.
func (s *userService) Replace(ctx context.Context, id int64, in UserInput) (repository.User, error) {
	if in.ID != id {
		return repository.User{}, fmt.Errorf("replace %d with id %d: %w", id, in.ID, ErrIDMismatch)
	}

	var phc string
	if in.Password != nil {
		h, err := s.hashPassword(*in.Password)
		if err != nil {
			return repository.User{}, err
		}
		phc = h
	} else {
		current, err := s.store.Get(ctx, id)
		if err != nil {
			if !repository.IsNotFound(err) {
				logger.From(ctx).Error("failed to load user for replace",
					logger.Layer("service"),
					logger.Component(s.component),
					logger.Op("Replace"),
					logger.RecordID(id),
					logger.Err(err),
				)
			}
			return repository.User{}, err
		}
		phc = current.HashedPassword
	}

	return s.crudService.Replace(ctx, id, repository.User{
		ID:             id,
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: phc,
		IsActive:       isActive(in.IsActive),
	})
}
