package resources

import (
	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	httperrors "github.com/dropDatabas3/hellocrud/internal/http/errors"
	"github.com/dropDatabas3/hellocrud/internal/validation"
)

// UserRequest es el body de POST /users/, POST /register y PUT /users/{id}.
// Password viaja en texto plano; el servidor lo hashea.
type UserRequest struct {
	ID       *int64  `json:"id"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// Validate: en create (requireID) el password es obligatorio; en replace es opcional.
// La política de password (largo, blacklist) se aplica en el service.
func (r UserRequest) Validate(requireID bool) *httperrors.AppError {
	var c fieldCheck
	if requireID {
		c.require("id", r.ID != nil)
		c.require("password", r.Password != nil)
	}
	c.require("username", r.Username != nil)
	c.require("email", r.Email != nil)
	if r.Username != nil {
		c.check("username", validation.ValidUsername(*r.Username))
	}
	if r.Email != nil {
		c.check("email", validation.ValidEmail(*r.Email))
	}
	return c.err()
}

// UserResponse nunca incluye el hash del password.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func NewUserResponse(u repository.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}

func NewUserListResponse(users []repository.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
