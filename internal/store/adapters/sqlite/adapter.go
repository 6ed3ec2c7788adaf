// Package sqlite implementa el adapter SQLite para el store DAL.
// Usa database/sql con modernc.org/sqlite (sin cgo).
//
// DSN: path al archivo de base de datos (ej: data/hellocrud.db).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	store "github.com/dropDatabas3/hellocrud/internal/store"
	"github.com/dropDatabas3/hellocrud/internal/store/adapters/sqldb"
	migrations "github.com/dropDatabas3/hellocrud/migrations/sqlite"
)

func init() {
	store.RegisterAdapter(&sqliteAdapter{})
}

type sqliteAdapter struct{}

func (a *sqliteAdapter) Name() string { return "sqlite" }

func (a *sqliteAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	path := strings.TrimSpace(cfg.DSN)
	if path == "" {
		return nil, fmt.Errorf("sqlite: storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// SQLite admite un único escritor; serializamos en una conexión.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping failed: %w", err)
	}

	return &sqliteConnection{db: db}, nil
}

type sqliteConnection struct {
	db *sql.DB
}

func (c *sqliteConnection) Name() string { return "sqlite" }

func (c *sqliteConnection) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *sqliteConnection) Close() error {
	return c.db.Close()
}

func (c *sqliteConnection) Books() repository.BookRepository {
	return sqldb.NewRepo(c.db, "sqlite", sqldb.BookTable, isUniqueViolation)
}

func (c *sqliteConnection) Items() repository.ItemRepository {
	return sqldb.NewRepo(c.db, "sqlite", sqldb.ItemTable, isUniqueViolation)
}

func (c *sqliteConnection) Users() repository.UserRepository {
	return sqldb.NewRepo(c.db, "sqlite", sqldb.UserTable, isUniqueViolation)
}

// Migrate implementa store.MigratableConnection.
func (c *sqliteConnection) Migrate(ctx context.Context) (*store.MigrationResult, error) {
	return store.NewMigrator(migrations.FS, migrations.Dir, "sqlite").Run(ctx, c.db)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
