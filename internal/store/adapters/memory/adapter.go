// Package memory implementa el adapter en memoria (driver por defecto).
// Los datos viven mientras viva el proceso.
package memory

import (
	"context"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	store "github.com/dropDatabas3/hellocrud/internal/store"
	"github.com/dropDatabas3/hellocrud/internal/store/memory"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

func (a *memoryAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	return &memoryConnection{
		books: memory.New[repository.Book](),
		items: memory.New[repository.Item](),
		users: memory.New[repository.User](),
	}, nil
}

// memoryConnection mantiene un store por recurso.
type memoryConnection struct {
	books *memory.Store[repository.Book]
	items *memory.Store[repository.Item]
	users *memory.Store[repository.User]
}

func (c *memoryConnection) Name() string                   { return "memory" }
func (c *memoryConnection) Ping(ctx context.Context) error { return ctx.Err() }
func (c *memoryConnection) Close() error                   { return nil }

func (c *memoryConnection) Books() repository.BookRepository { return c.books }
func (c *memoryConnection) Items() repository.ItemRepository { return c.items }
func (c *memoryConnection) Users() repository.UserRepository { return c.users }
