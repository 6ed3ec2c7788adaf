package resources

import (
	"net/http"

	dto "github.com/dropDatabas3/hellocrud/internal/http/dto/resources"
	httperrors "github.com/dropDatabas3/hellocrud/internal/http/errors"
	"github.com/dropDatabas3/hellocrud/internal/http/helpers"
	svc "github.com/dropDatabas3/hellocrud/internal/http/services/resources"
	"github.com/dropDatabas3/hellocrud/internal/observability/logger"
)

const userLabel = "User"

// UsersController maneja las rutas /users y /register
type UsersController struct {
	service svc.UserService
	opts    Options
}

// NewUsersController crea un nuevo controller de users.
func NewUsersController(service svc.UserService, opts Options) *UsersController {
	return &UsersController{service: service, opts: opts}
}

func toUserInput(req dto.UserRequest, fallbackID int64) svc.UserInput {
	in := svc.UserInput{ID: fallbackID, Password: req.Password, IsActive: req.IsActive}
	if req.ID != nil {
		in.ID = *req.ID
	}
	if req.Username != nil {
		in.Username = *req.Username
	}
	if req.Email != nil {
		in.Email = *req.Email
	}
	return in
}

// Create maneja POST /users/ y POST /register
func (c *UsersController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("UsersController.Create"),
		logger.Resource("users"),
	)

	var req dto.UserRequest
	if appErr := helpers.ReadJSON(w, r, c.opts.MaxBodyBytes, &req); appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}
	if appErr := req.Validate(true); appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	user, err := c.service.Create(ctx, toUserInput(req, 0))
	if err != nil {
		writeServiceError(w, log, err, userLabel)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, dto.NewUserResponse(user))
}

// List maneja GET /users/
func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("UsersController.List"),
		logger.Resource("users"),
	)

	page, appErr := helpers.ParsePage(r, c.opts.MaxLimit)
	if appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	users, total, err := c.service.List(ctx, page)
	if err != nil {
		writeServiceError(w, log, err, userLabel)
		return
	}

	writeTotal(w, total)
	helpers.WriteJSON(w, http.StatusOK, dto.NewUserListResponse(users))
}

// Get maneja GET /users/{id}
func (c *UsersController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("UsersController.Get"),
		logger.Resource("users"),
	)

	id, appErr := pathID(r)
	if appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	user, err := c.service.Get(ctx, id)
	if err != nil {
		writeServiceError(w, log.With(logger.RecordID(id)), err, userLabel)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

// Replace maneja PUT /users/{id}. Sin password se conserva el actual.
func (c *UsersController) Replace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("UsersController.Replace"),
		logger.Resource("users"),
	)

	id, appErr := pathID(r)
	if appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	var req dto.UserRequest
	if appErr := helpers.ReadJSON(w, r, c.opts.MaxBodyBytes, &req); appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}
	if appErr := req.Validate(false); appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	user, err := c.service.Replace(ctx, id, toUserInput(req, id))
	if err != nil {
		writeServiceError(w, log.With(logger.RecordID(id)), err, userLabel)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

// Delete maneja DELETE /users/{id}
func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("UsersController.Delete"),
		logger.Resource("users"),
	)

	id, appErr := pathID(r)
	if appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	if err := c.service.Delete(ctx, id); err != nil {
		writeServiceError(w, log.With(logger.RecordID(id)), err, userLabel)
		return
	}

	helpers.WriteNoContent(w)
}
