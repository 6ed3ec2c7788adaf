// Package storetest contiene la batería de pruebas compartida por todas las
// implementaciones de repository.ResourceStore.
package storetest

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
)

// BookFactory crea un store de libros vacío para cada subtest.
type BookFactory func(t *testing.T) repository.BookRepository

func strPtr(s string) *string { return &s }

func book(id int64, title string) repository.Book {
	return repository.Book{ID: id, Title: title, Author: "anon", PublishedYear: 2000}
}

// RunBookSuite ejecuta la batería completa sobre el store de libros.
func RunBookSuite(t *testing.T, newStore BookFactory) {
	ctx := context.Background()

	t.Run("insert then get returns equal record", func(t *testing.T) {
		s := newStore(t)
		in := repository.Book{ID: 7, Title: "Dune", Author: "Herbert", PublishedYear: 1965, Description: strPtr("spice")}

		created, err := s.Insert(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, in, created)

		got, err := s.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})

	t.Run("duplicate insert keeps first", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Insert(ctx, book(1, "first"))
		require.NoError(t, err)

		_, err = s.Insert(ctx, book(1, "second"))
		require.ErrorIs(t, err, repository.ErrDuplicateID)

		list, err := s.List(ctx, repository.Page{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "first", list[0].Title)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Get(ctx, 42)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = s.Replace(ctx, 42, book(42, "x"))
		assert.ErrorIs(t, err, repository.ErrNotFound)

		err = s.Delete(ctx, 42)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("replace keeps size and position", func(t *testing.T) {
		s := newStore(t)
		for i, title := range []string{"a", "b", "c"} {
			_, err := s.Insert(ctx, book(int64(i+1), title))
			require.NoError(t, err)
		}

		upd := repository.Book{ID: 2, Title: "B2", Author: "other", PublishedYear: 2020}
		out, err := s.Replace(ctx, 2, upd)
		require.NoError(t, err)
		assert.Equal(t, upd, out)

		got, err := s.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, upd, got)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		list, err := s.List(ctx, repository.Page{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"a", "B2", "c"}, titles(list))
	})

	t.Run("delete removes from list", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Insert(ctx, book(1, "A"))
		require.NoError(t, err)
		_, err = s.Insert(ctx, book(2, "B"))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, 1))

		list, err := s.List(ctx, repository.Page{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, int64(2), list[0].ID)
		assert.Equal(t, "B", list[0].Title)

		_, err = s.Get(ctx, 1)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		s := newStore(t)
		for _, id := range []int64{30, 10, 20} {
			_, err := s.Insert(ctx, book(id, "t"))
			require.NoError(t, err)
		}
		list, err := s.List(ctx, repository.Page{})
		require.NoError(t, err)
		assert.Equal(t, []int64{30, 10, 20}, ids(list))
	})

	t.Run("list page", func(t *testing.T) {
		s := newStore(t)
		for id := int64(1); id <= 5; id++ {
			_, err := s.Insert(ctx, book(id, "t"))
			require.NoError(t, err)
		}

		list, err := s.List(ctx, repository.Page{Offset: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 3}, ids(list))

		list, err = s.List(ctx, repository.Page{Offset: 4, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []int64{5}, ids(list))

		list, err = s.List(ctx, repository.Page{Offset: 9})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("list page with huge limit", func(t *testing.T) {
		s := newStore(t)
		for id := int64(1); id <= 3; id++ {
			_, err := s.Insert(ctx, book(id, "t"))
			require.NoError(t, err)
		}

		list, err := s.List(ctx, repository.Page{Offset: 1, Limit: math.MaxInt})
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 3}, ids(list))
	})

	t.Run("returned values are copies", func(t *testing.T) {
		s := newStore(t)
		in := repository.Book{ID: 1, Title: "A", Description: strPtr("orig")}
		_, err := s.Insert(ctx, in)
		require.NoError(t, err)

		*in.Description = "mutated"

		list, err := s.List(ctx, repository.Page{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.NotNil(t, list[0].Description)
		assert.Equal(t, "orig", *list[0].Description)

		// Una mutación posterior no afecta el snapshot ya devuelto.
		_, err = s.Replace(ctx, 1, repository.Book{ID: 1, Title: "Z"})
		require.NoError(t, err)
		assert.Equal(t, "A", list[0].Title)
	})

	t.Run("concurrent inserts keep ids unique", func(t *testing.T) {
		s := newStore(t)
		var wg sync.WaitGroup
		errs := make(chan error, 16)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Insert(ctx, book(99, "race"))
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		ok := 0
		for err := range errs {
			if err == nil {
				ok++
				continue
			}
			assert.ErrorIs(t, err, repository.ErrDuplicateID)
		}
		assert.Equal(t, 1, ok)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func ids(list []repository.Book) []int64 {
	out := make([]int64, 0, len(list))
	for _, b := range list {
		out = append(out, b.ID)
	}
	return out
}

func titles(list []repository.Book) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.Title)
	}
	return out
}
