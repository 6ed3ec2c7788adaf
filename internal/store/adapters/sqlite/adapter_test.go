package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	"github.com/dropDatabas3/hellocrud/internal/store"
	_ "github.com/dropDatabas3/hellocrud/internal/store/adapters/sqlite"
	"github.com/dropDatabas3/hellocrud/internal/store/storetest"
)

func open(t *testing.T) store.AdapterConnection {
	t.Helper()
	conn, err := store.OpenAdapter(context.Background(), store.AdapterConfig{
		Name:    "sqlite",
		DSN:     filepath.Join(t.TempDir(), "test.db"),
		Migrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestSQLiteAdapterRegistered(t *testing.T) {
	adapter, ok := store.GetAdapter("sqlite")
	require.True(t, ok)
	assert.Equal(t, "sqlite", adapter.Name())
}

func TestSQLiteAdapterConnectRequiresDSN(t *testing.T) {
	adapter, ok := store.GetAdapter("sqlite")
	require.True(t, ok)

	_, err := adapter.Connect(context.Background(), store.AdapterConfig{})
	assert.Error(t, err)
}

func TestSQLiteBookStore(t *testing.T) {
	storetest.RunBookSuite(t, func(t *testing.T) repository.BookRepository {
		return open(t).Books()
	})
}

func TestSQLiteMigrateIsIdempotent(t *testing.T) {
	conn := open(t)

	m, ok := conn.(store.MigratableConnection)
	require.True(t, ok)

	res, err := m.Migrate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Applied)
	assert.Equal(t, []int{1}, res.Skipped)
}

func TestSQLiteUsersAndItems(t *testing.T) {
	ctx := context.Background()
	conn := open(t)

	u := repository.User{ID: 1, Username: "ana", Email: "ana@example.com", HashedPassword: "$argon2id$x", IsActive: true}
	_, err := conn.Users().Insert(ctx, u)
	require.NoError(t, err)

	got, err := conn.Users().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = conn.Users().Insert(ctx, u)
	assert.ErrorIs(t, err, repository.ErrDuplicateID)

	it := repository.Item{ID: 5, Name: "pen", Price: 1.5, Quantity: 3}
	_, err = conn.Items().Insert(ctx, it)
	require.NoError(t, err)

	it.Quantity = 0
	_, err = conn.Items().Replace(ctx, 5, it)
	require.NoError(t, err)

	gotItem, err := conn.Items().Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, it, gotItem)
	assert.Nil(t, gotItem.Description)

	require.NoError(t, conn.Ping(ctx))
}
