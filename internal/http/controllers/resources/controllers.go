// Package resources contiene los controllers CRUD de books, items y users.
package resources

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	httperrors "github.com/dropDatabas3/hellocrud/internal/http/errors"
	"github.com/dropDatabas3/hellocrud/internal/http/helpers"
	svc "github.com/dropDatabas3/hellocrud/internal/http/services/resources"
	"github.com/dropDatabas3/hellocrud/internal/observability/logger"
)

// Options ajusta límites de request compartidos por los controllers.
type Options struct {
	MaxBodyBytes int64 // <= 0 usa helpers.DefaultMaxBodyBytes
	MaxLimit     int   // <= 0 usa helpers.DefaultMaxLimit
}

// Controllers agrupa todos los controllers de recursos.
type Controllers struct {
	Books *BooksController
	Items *ItemsController
	Users *UsersController
}

// NewControllers crea el agregador de controllers.
func NewControllers(s svc.Services, opts Options) *Controllers {
	return &Controllers{
		Books: NewBooksController(s.Books, opts),
		Items: NewItemsController(s.Items, opts),
		Users: NewUsersController(s.Users, opts),
	}
}

// ─── Helpers ───

// pathID lee {id} de la ruta chi.
func pathID(r *http.Request) (int64, *httperrors.AppError) {
	return helpers.ParseID(chi.URLParam(r, "id"))
}

// writeTotal expone el tamaño de la colección en X-Total-Count.
func writeTotal(w http.ResponseWriter, total int) {
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
}

// mapError traduce errores de service/store al AppError de la respuesta.
// label es el nombre singular del recurso ("Book", "Item", "User").
func mapError(err error, label string) *httperrors.AppError {
	var appErr *httperrors.AppError
	var pwdErr *svc.PasswordError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, svc.ErrIDMismatch):
		return httperrors.ErrIDMismatch.WithDetail(err.Error())
	case errors.As(err, &pwdErr):
		return httperrors.ErrInvalidFormat.WithDetail(pwdErr.Error())
	case repository.IsDuplicateID(err):
		return httperrors.ErrDuplicateID.WithDetail(label + " with this ID already exists.")
	case repository.IsNotFound(err):
		return httperrors.ErrNotFound.WithDetail(label + " not found.")
	case repository.IsInvalidInput(err):
		return httperrors.ErrInvalidFormat.WithDetail(err.Error())
	default:
		return httperrors.ErrInternalServerError.WithCause(err)
	}
}

// writeServiceError escribe el error; los 5xx se loguean con la causa.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, label string) {
	appErr := mapError(err, label)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error("request failed", logger.Err(err))
	}
	httperrors.WriteError(w, appErr)
}
