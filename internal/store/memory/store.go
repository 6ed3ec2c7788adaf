// Package memory implementa repository.ResourceStore en memoria.
//
// Un único sync.RWMutex protege la colección: las lecturas se comparten,
// las escrituras son exclusivas. Todo valor que entra o sale es una copia.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
)

// Store es una colección ordenada por inserción, única por id.
type Store[T repository.Record[T]] struct {
	mu      sync.RWMutex
	records []T
}

// New crea un store vacío.
func New[T repository.Record[T]]() *Store[T] {
	return &Store[T]{}
}

var _ repository.ResourceStore[repository.Book] = (*Store[repository.Book])(nil)

// indexOf hace un scan lineal. Llamar con el lock tomado.
func (s *Store[T]) indexOf(id int64) int {
	for i := range s.records {
		if s.records[i].Key() == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) Insert(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(rec.Key()) >= 0 {
		return zero, fmt.Errorf("memory: insert id %d: %w", rec.Key(), repository.ErrDuplicateID)
	}
	s.records = append(s.records, rec.Clone())
	return rec.Clone(), nil
}

func (s *Store[T]) List(ctx context.Context, page repository.Page) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := page.Window(len(s.records))
	out := make([]T, 0, end-start)
	for _, r := range s.records[start:end] {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (s *Store[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("memory: get id %d: %w", id, repository.ErrNotFound)
	}
	return s.records[i].Clone(), nil
}

func (s *Store[T]) Replace(ctx context.Context, id int64, rec T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("memory: replace id %d: %w", id, repository.ErrNotFound)
	}
	// Un id distinto en el registro rompería la unicidad.
	if rec.Key() != id {
		if j := s.indexOf(rec.Key()); j >= 0 && j != i {
			return zero, fmt.Errorf("memory: replace id %d: %w", rec.Key(), repository.ErrDuplicateID)
		}
	}
	s.records[i] = rec.Clone()
	return rec.Clone(), nil
}

func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("memory: delete id %d: %w", id, repository.ErrNotFound)
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return nil
}

func (s *Store[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
