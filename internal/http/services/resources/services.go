// Package resources provee los services CRUD de books, items y users.
package resources

import (
	"errors"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	"github.com/dropDatabas3/hellocrud/internal/security/password"
)

// ErrIDMismatch: el id del body difiere del id de la ruta en un replace.
var ErrIDMismatch = errors.New("body id does not match path id")

// Deps contiene las dependencias para crear los services de recursos.
type Deps struct {
	Books repository.BookRepository
	Items repository.ItemRepository
	Users repository.UserRepository

	Hasher    password.Hasher
	Policy    password.Policy
	Blacklist *password.Blacklist // nil = sin blacklist
}

// Services agrupa todos los services de recursos.
type Services struct {
	Books BookService
	Items ItemService
	Users UserService
}

// NewServices crea el agregador de services.
func NewServices(d Deps) Services {
	return Services{
		Books: NewBookService(d.Books),
		Items: NewItemService(d.Items),
		Users: NewUserService(d),
	}
}
