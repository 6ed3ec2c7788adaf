package store_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	"github.com/dropDatabas3/hellocrud/internal/security/password"
	"github.com/dropDatabas3/hellocrud/internal/store"
	_ "github.com/dropDatabas3/hellocrud/internal/store/adapters/memory"
)

func TestOpenAdapterUnknown(t *testing.T) {
	_, err := store.OpenAdapter(context.Background(), store.AdapterConfig{Name: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestListAdaptersIncludesMemory(t *testing.T) {
	assert.Contains(t, store.ListAdapters(), "memory")
}

func TestParseMigrationsSorted(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0002_more.sql": {Data: []byte("CREATE TABLE b (id INT);")},
		"m/0001_init.sql": {Data: []byte("CREATE TABLE a (id INT);")},
		"m/README.md":     {Data: []byte("ignored")},
	}
	migs, err := store.NewMigrator(fsys, "m", "sqlite").ParseMigrations()
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, 1, migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, 2, migs[1].Version)
}

func TestParseMigrationsDuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0001_a.sql": {Data: []byte("SELECT 1;")},
		"m/1_b.sql":    {Data: []byte("SELECT 2;")},
	}
	_, err := store.NewMigrator(fsys, "m", "sqlite").ParseMigrations()
	assert.Error(t, err)
}

func TestSplitStatements(t *testing.T) {
	script := `-- header comment
CREATE TABLE a (id INT);

CREATE TABLE b (id INT);
-- trailing comment
`
	stmts := store.SplitStatements(script)
	require.Len(t, stmts, 2)
	assert.True(t, strings.HasSuffix(stmts[0], "CREATE TABLE a (id INT)"))
	assert.Equal(t, "CREATE TABLE b (id INT)", stmts[1])
}

func TestSeedApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
books:
  - {id: 1, title: Dune, author: Frank Herbert, published_year: 1965}
items:
  - {id: 1, name: pen, price: 1.5, quantity: 10}
users:
  - {id: 1, username: ana, email: ana@example.com, password: secret123}
  - {id: 2, username: bob, email: bob@example.com, password: secret456, is_active: false}
`), 0o600))

	seed, err := store.LoadSeed(path)
	require.NoError(t, err)

	conn, err := store.OpenAdapter(ctx, store.AdapterConfig{Name: "memory"})
	require.NoError(t, err)

	opts := store.SeedOptions{Hash: func(p string) (string, error) { return "h:" + p, nil }}

	res, err := seed.Apply(ctx, conn, opts)
	require.NoError(t, err)
	assert.Equal(t, store.SeedResult{Inserted: 4}, res)

	res, err = seed.Apply(ctx, conn, opts)
	require.NoError(t, err)
	assert.Equal(t, store.SeedResult{Skipped: 4}, res)

	u, err := conn.Users().Get(ctx, 2)
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.Equal(t, "h:secret456", u.HashedPassword)

	u, err = conn.Users().Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, u.IsActive)
}

func TestSeedApplyRejectsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	hash := func(p string) (string, error) { return "h:" + p, nil }

	tests := []struct {
		name string
		seed store.SeedFile
	}{
		{"short username", store.SeedFile{Users: []store.SeedUser{{ID: 1, Username: "ab", Email: "ab@example.com", Password: "secret123"}}}},
		{"bad email", store.SeedFile{Users: []store.SeedUser{{ID: 1, Username: "ana", Email: "not-an-email", Password: "secret123"}}}},
		{"short password", store.SeedFile{Users: []store.SeedUser{{ID: 1, Username: "ana", Email: "ana@example.com", Password: "short"}}}},
		{"negative price", store.SeedFile{Items: []store.SeedItem{{ID: 1, Name: "pen", Price: -1, Quantity: 1}}}},
		{"negative quantity", store.SeedFile{Items: []store.SeedItem{{ID: 1, Name: "pen", Price: 1, Quantity: -1}}}},
		{"book without title", store.SeedFile{Books: []store.SeedBook{{ID: 1, Author: "anon", PublishedYear: 2000}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := store.OpenAdapter(ctx, store.AdapterConfig{Name: "memory"})
			require.NoError(t, err)
			defer conn.Close()

			// el libro válido no debe quedar insertado si otro registro falla
			tt.seed.Books = append(tt.seed.Books, store.SeedBook{ID: 99, Title: "ok", Author: "ok", PublishedYear: 2000})

			_, err = tt.seed.Apply(ctx, conn, store.SeedOptions{Hash: hash})
			require.ErrorIs(t, err, repository.ErrInvalidInput)

			n, err := conn.Books().Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestSeedApplyRejectsBlacklistedPassword(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "blacklist.txt")
	require.NoError(t, os.WriteFile(path, []byte("password123\n"), 0o600))
	bl, err := password.LoadBlacklist(path)
	require.NoError(t, err)

	conn, err := store.OpenAdapter(ctx, store.AdapterConfig{Name: "memory"})
	require.NoError(t, err)
	defer conn.Close()

	seed := store.SeedFile{Users: []store.SeedUser{{ID: 1, Username: "ana", Email: "ana@example.com", Password: "password123"}}}
	_, err = seed.Apply(ctx, conn, store.SeedOptions{
		Hash:      func(p string) (string, error) { return "h:" + p, nil },
		Blacklist: bl,
	})
	require.ErrorIs(t, err, repository.ErrInvalidInput)
	assert.Contains(t, err.Error(), "blacklisted")
}

func TestLoadSeedMissingFile(t *testing.T) {
	_, err := store.LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
