package resources

import (
	"net/http"

	dto "github.com/dropDatabas3/hellocrud/internal/http/dto/resources"
	httperrors "github.com/dropDatabas3/hellocrud/internal/http/errors"
	"github.com/dropDatabas3/hellocrud/internal/http/helpers"
	svc "github.com/dropDatabas3/hellocrud/internal/http/services/resources"
	"github.com/dropDatabas3/hellocrud/internal/observability/logger"
)

const itemLabel = "Item"

// ItemsController maneja las rutas /items
type ItemsController struct {
	service svc.ItemService
	opts    Options
}

// NewItemsController crea un nuevo controller de items.
func NewItemsController(service svc.ItemService, opts Options) *ItemsController {
	return &ItemsController{service: service, opts: opts}
}

// Create maneja POST /items/
func (c *ItemsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("ItemsController.Create"),
		logger.Resource("items"),
	)

	var req dto.ItemRequest
	if appErr := helpers.ReadJSON(w, r, c.opts.MaxBodyBytes, &req); appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}
	if appErr := req.Validate(true); appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	item, err := c.service.Create(ctx, req.ToRecord(0))
	if err != nil {
		writeServiceError(w, log, err, itemLabel)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, dto.NewItemResponse(item))
}

// List maneja GET /items/
func (c *ItemsController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("ItemsController.List"),
		logger.Resource("items"),
	)

	page, appErr := helpers.ParsePage(r, c.opts.MaxLimit)
	if appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	items, total, err := c.service.List(ctx, page)
	if err != nil {
		writeServiceError(w, log, err, itemLabel)
		return
	}

	writeTotal(w, total)
	helpers.WriteJSON(w, http.StatusOK, dto.NewItemListResponse(items))
}

// Get maneja GET /items/{id}
func (c *ItemsController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("ItemsController.Get"),
		logger.Resource("items"),
	)

	id, appErr := pathID(r)
	if appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	item, err := c.service.Get(ctx, id)
	if err != nil {
		writeServiceError(w, log.With(logger.RecordID(id)), err, itemLabel)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.NewItemResponse(item))
}

// Replace maneja PUT /items/{id}
func (c *ItemsController) Replace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("ItemsController.Replace"),
		logger.Resource("items"),
	)

	id, appErr := pathID(r)
	if appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	var req dto.ItemRequest
	if appErr := helpers.ReadJSON(w, r, c.opts.MaxBodyBytes, &req); appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}
	if appErr := req.Validate(false); appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	item, err := c.service.Replace(ctx, id, req.ToRecord(id))
	if err != nil {
		writeServiceError(w, log.With(logger.RecordID(id)), err, itemLabel)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.NewItemResponse(item))
}

// Delete maneja DELETE /items/{id}
func (c *ItemsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("ItemsController.Delete"),
		logger.Resource("items"),
	)

	id, appErr := pathID(r)
	if appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	if err := c.service.Delete(ctx, id); err != nil {
		writeServiceError(w, log.With(logger.RecordID(id)), err, itemLabel)
		return
	}

	helpers.WriteNoContent(w)
}
