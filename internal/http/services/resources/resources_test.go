package resources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	"github.com/dropDatabas3/hellocrud/internal/security/password"
	"github.com/dropDatabas3/hellocrud/internal/store/memory"
)

// fastHasher evita el costo de los parámetros de producción en tests.
var fastHasher = password.Hasher{Params: password.Params{Memory: 1024, Time: 1, Parallelism: 1, KeyLen: 16}}

func newServices(t *testing.T, bl *password.Blacklist) Services {
	t.Helper()
	return NewServices(Deps{
		Books:     memory.New[repository.Book](),
		Items:     memory.New[repository.Item](),
		Users:     memory.New[repository.User](),
		Hasher:    fastHasher,
		Blacklist: bl,
	})
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestBookServiceCRUD(t *testing.T) {
	ctx := context.Background()
	s := newServices(t, nil).Books

	_, err := s.Create(ctx, repository.Book{ID: 1, Title: "A"})
	require.NoError(t, err)
	_, err = s.Create(ctx, repository.Book{ID: 2, Title: "B"})
	require.NoError(t, err)

	_, err = s.Create(ctx, repository.Book{ID: 1, Title: "again"})
	assert.ErrorIs(t, err, repository.ErrDuplicateID)

	list, total, err := s.List(ctx, repository.Page{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []repository.Book{{ID: 1, Title: "A"}}, list)

	_, err = s.Replace(ctx, 1, repository.Book{ID: 9, Title: "X"})
	assert.ErrorIs(t, err, ErrIDMismatch)

	got, err := s.Replace(ctx, 1, repository.Book{ID: 1, Title: "A2"})
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)

	require.NoError(t, s.Delete(ctx, 1))
	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 1), repository.ErrNotFound)
}

func TestItemServiceReplaceMissing(t *testing.T) {
	ctx := context.Background()
	s := newServices(t, nil).Items

	_, err := s.Replace(ctx, 5, repository.Item{ID: 5, Name: "ghost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	ctx := context.Background()
	s := newServices(t, nil).Users

	u, err := s.Create(ctx, UserInput{ID: 1, Username: "ana", Email: "ana@example.com", Password: strPtr("secret123")})
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret123", u.HashedPassword)
	assert.True(t, password.Verify("secret123", u.HashedPassword))

	u2, err := s.Create(ctx, UserInput{ID: 2, Username: "bob", Email: "bob@example.com", Password: strPtr("secret123"), IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, u2.IsActive)
}

func TestUserServicePasswordPolicy(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "blacklist.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comunes\npassword123\n"), 0o600))
	bl, err := password.LoadBlacklist(path)
	require.NoError(t, err)

	s := newServices(t, bl).Users

	_, err = s.Create(ctx, UserInput{ID: 1, Username: "ana", Email: "ana@example.com", Password: strPtr("short")})
	var pe *PasswordError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"too_short"}, pe.Reasons)
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = s.Create(ctx, UserInput{ID: 1, Username: "ana", Email: "ana@example.com", Password: strPtr("Password123")})
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"blacklisted"}, pe.Reasons)

	_, err = s.Create(ctx, UserInput{ID: 1, Username: "ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestUserServiceReplaceKeepsHash(t *testing.T) {
	ctx := context.Background()
	s := newServices(t, nil).Users

	created, err := s.Create(ctx, UserInput{ID: 1, Username: "ana", Email: "ana@example.com", Password: strPtr("secret123")})
	require.NoError(t, err)

	kept, err := s.Replace(ctx, 1, UserInput{ID: 1, Username: "ana2", Email: "ana2@example.com"})
	require.NoError(t, err)
	assert.Equal(t, created.HashedPassword, kept.HashedPassword)
	assert.Equal(t, "ana2", kept.Username)

	changed, err := s.Replace(ctx, 1, UserInput{ID: 1, Username: "ana2", Email: "ana2@example.com", Password: strPtr("another-secret")})
	require.NoError(t, err)
	assert.True(t, password.Verify("another-secret", changed.HashedPassword))

	_, err = s.Replace(ctx, 1, UserInput{ID: 3, Username: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrIDMismatch)

	_, err = s.Replace(ctx, 42, UserInput{ID: 42, Username: "ghost", Email: "g@example.com"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, total, err := s.List(ctx, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)
}
