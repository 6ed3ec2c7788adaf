package resources

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	"github.com/dropDatabas3/hellocrud/internal/observability/logger"
)

// BookService define las operaciones CRUD de books.
type BookService interface {
	Create(ctx context.Context, b repository.Book) (repository.Book, error)
	List(ctx context.Context, page repository.Page) ([]repository.Book, int, error)
	Get(ctx context.Context, id int64) (repository.Book, error)
	Replace(ctx context.Context, id int64, b repository.Book) (repository.Book, error)
	Delete(ctx context.Context, id int64) error
}

// ItemService define las operaciones CRUD de items.
type ItemService interface {
	Create(ctx context.Context, it repository.Item) (repository.Item, error)
	List(ctx context.Context, page repository.Page) ([]repository.Item, int, error)
	Get(ctx context.Context, id int64) (repository.Item, error)
	Replace(ctx context.Context, id int64, it repository.Item) (repository.Item, error)
	Delete(ctx context.Context, id int64) error
}

// crudService implementa el CRUD genérico sobre un ResourceStore.
type crudService[T repository.Record[T]] struct {
	store     repository.ResourceStore[T]
	component string
}

func NewBookService(store repository.BookRepository) BookService {
	return &crudService[repository.Book]{store: store, component: "resources.books"}
}

func NewItemService(store repository.ItemRepository) ItemService {
	return &crudService[repository.Item]{store: store, component: "resources.items"}
}

func (s *crudService[T]) Create(ctx context.Context, rec T) (T, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(s.component),
		logger.Op("Create"),
		logger.RecordID(rec.Key()),
	)

	out, err := s.store.Insert(ctx, rec)
	if err != nil {
		if !repository.IsDuplicateID(err) {
			log.Error("failed to create record", logger.Err(err))
		}
		return out, err
	}

	log.Info("record created")
	return out, nil
}

// List devuelve la página pedida y el total de la colección.
func (s *crudService[T]) List(ctx context.Context, page repository.Page) ([]T, int, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(s.component),
		logger.Op("List"),
	)

	list, err := s.store.List(ctx, page)
	if err != nil {
		log.Error("failed to list records", logger.Err(err))
		return nil, 0, err
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		log.Error("failed to count records", logger.Err(err))
		return nil, 0, err
	}

	log.Debug("records listed", logger.Count(len(list)))
	return list, total, nil
}

func (s *crudService[T]) Get(ctx context.Context, id int64) (T, error) {
	out, err := s.store.Get(ctx, id)
	if err != nil && !repository.IsNotFound(err) {
		logger.From(ctx).Error("failed to get record",
			logger.Layer("service"),
			logger.Component(s.component),
			logger.Op("Get"),
			logger.RecordID(id),
			logger.Err(err),
		)
	}
	return out, err
}

// Replace rechaza con ErrIDMismatch si el registro trae un id distinto al de la ruta.
func (s *crudService[T]) Replace(ctx context.Context, id int64, rec T) (T, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(s.component),
		logger.Op("Replace"),
		logger.RecordID(id),
	)

	if rec.Key() != id {
		var zero T
		return zero, fmt.Errorf("replace %d with id %d: %w", id, rec.Key(), ErrIDMismatch)
	}

	out, err := s.store.Replace(ctx, id, rec)
	if err != nil {
		if !repository.IsNotFound(err) {
			log.Error("failed to replace record", logger.Err(err))
		}
		return out, err
	}

	log.Info("record replaced")
	return out, nil
}

func (s *crudService[T]) Delete(ctx context.Context, id int64) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(s.component),
		logger.Op("Delete"),
		logger.RecordID(id),
	)

	if err := s.store.Delete(ctx, id); err != nil {
		if !repository.IsNotFound(err) {
			log.Error("failed to delete record", logger.Err(err))
		}
		return err
	}

	log.Info("record deleted")
	return nil
}
