package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	"github.com/dropDatabas3/hellocrud/internal/store/memory"
	"github.com/dropDatabas3/hellocrud/internal/store/storetest"
)

func TestBookStore(t *testing.T) {
	storetest.RunBookSuite(t, func(t *testing.T) repository.BookRepository {
		return memory.New[repository.Book]()
	})
}

func TestScenarioDeleteFirst(t *testing.T) {
	ctx := context.Background()
	s := memory.New[repository.Book]()

	_, err := s.Insert(ctx, repository.Book{ID: 1, Title: "A"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, repository.Book{ID: 2, Title: "B"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, 1))

	list, err := s.List(ctx, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, []repository.Book{{ID: 2, Title: "B"}}, list)

	_, err = s.Get(ctx, 1)
	assert.True(t, repository.IsNotFound(err))
}

func TestReplaceRejectsCollidingID(t *testing.T) {
	ctx := context.Background()
	s := memory.New[repository.Item]()

	_, err := s.Insert(ctx, repository.Item{ID: 1, Name: "a"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, repository.Item{ID: 2, Name: "b"})
	require.NoError(t, err)

	_, err = s.Replace(ctx, 1, repository.Item{ID: 2, Name: "clash"})
	assert.ErrorIs(t, err, repository.ErrDuplicateID)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := memory.New[repository.User]()
	_, err := s.Insert(ctx, repository.User{ID: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
