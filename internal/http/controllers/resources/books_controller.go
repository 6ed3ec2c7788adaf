package resources

import (
	"net/http"

	dto "github.com/dropDatabas3/hellocrud/internal/http/dto/resources"
	httperrors "github.com/dropDatabas3/hellocrud/internal/http/errors"
	"github.com/dropDatabas3/hellocrud/internal/http/helpers"
	svc "github.com/dropDatabas3/hellocrud/internal/http/services/resources"
	"github.com/dropDatabas3/hellocrud/internal/observability/logger"
)

const bookLabel = "Book"

// BooksController maneja las rutas /books
type BooksController struct {
	service svc.BookService
	opts    Options
}

// NewBooksController crea un nuevo controller de books.
func NewBooksController(service svc.BookService, opts Options) *BooksController {
	return &BooksController{service: service, opts: opts}
}

// Create maneja POST /books/
func (c *BooksController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("BooksController.Create"),
		logger.Resource("books"),
	)

	var req dto.BookRequest
	if appErr := helpers.ReadJSON(w, r, c.opts.MaxBodyBytes, &req); appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}
	if appErr := req.Validate(true); appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	book, err := c.service.Create(ctx, req.ToRecord(0))
	if err != nil {
		writeServiceError(w, log, err, bookLabel)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, dto.NewBookResponse(book))
}

// List maneja GET /books/
func (c *BooksController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("BooksController.List"),
		logger.Resource("books"),
	)

	page, appErr := helpers.ParsePage(r, c.opts.MaxLimit)
	if appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	books, total, err := c.service.List(ctx, page)
	if err != nil {
		writeServiceError(w, log, err, bookLabel)
		return
	}

	writeTotal(w, total)
	helpers.WriteJSON(w, http.StatusOK, dto.NewBookListResponse(books))
}

// Get maneja GET /books/{id}
func (c *BooksController) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("BooksController.Get"),
		logger.Resource("books"),
	)

	id, appErr := pathID(r)
	if appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	book, err := c.service.Get(ctx, id)
	if err != nil {
		writeServiceError(w, log.With(logger.RecordID(id)), err, bookLabel)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.NewBookResponse(book))
}

// Replace maneja PUT /books/{id}
func (c *BooksController) Replace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("BooksController.Replace"),
		logger.Resource("books"),
	)

	id, appErr := pathID(r)
	if appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	var req dto.BookRequest
	if appErr := helpers.ReadJSON(w, r, c.opts.MaxBodyBytes, &req); appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}
	if appErr := req.Validate(false); appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	book, err := c.service.Replace(ctx, id, req.ToRecord(id))
	if err != nil {
		writeServiceError(w, log.With(logger.RecordID(id)), err, bookLabel)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.NewBookResponse(book))
}

// Delete maneja DELETE /books/{id}
func (c *BooksController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("BooksController.Delete"),
		logger.Resource("books"),
	)

	id, appErr := pathID(r)
	if appErr != nil {
		httperrors.WriteError(w, appErr)
		return
	}

	if err := c.service.Delete(ctx, id); err != nil {
		writeServiceError(w, log.With(logger.RecordID(id)), err, bookLabel)
		return
	}

	helpers.WriteNoContent(w)
}
