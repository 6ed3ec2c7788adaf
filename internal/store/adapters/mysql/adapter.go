// Package mysql implementa el adapter MySQL para el store DAL.
// Usa database/sql con github.com/go-sql-driver/mysql.
//
// Requisitos:
//   - MySQL 8.0+
//   - DSN format: user:password@tcp(host:port)/database
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/dropDatabas3/hellocrud/internal/domain/repository"
	store "github.com/dropDatabas3/hellocrud/internal/store"
	"github.com/dropDatabas3/hellocrud/internal/store/adapters/sqldb"
	migrations "github.com/dropDatabas3/hellocrud/migrations/mysql"
)

// erDupEntry es el código de MySQL para violación de clave única.
const erDupEntry = 1062

func init() {
	store.RegisterAdapter(&mysqlAdapter{})
}

// mysqlAdapter implementa store.Adapter para MySQL.
type mysqlAdapter struct{}

func (a *mysqlAdapter) Name() string { return "mysql" }

func (a *mysqlAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("mysql: DSN is required")
	}

	dsn, err := normalizeDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}

	// Configurar pool de conexiones
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	} else {
		db.SetMaxOpenConns(10)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	} else {
		db.SetMaxIdleConns(2)
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// Verificar conectividad
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping failed: %w", err)
	}

	return &mysqlConnection{db: db}, nil
}

// normalizeDSN fuerza ClientFoundRows para que un UPDATE sin cambios
// reporte la fila encontrada y no se confunda con NotFound.
func normalizeDSN(raw string) (string, error) {
	c, err := gomysql.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("mysql: parse DSN: %w", err)
	}
	c.ClientFoundRows = true
	return c.FormatDSN(), nil
}

// mysqlConnection representa una conexión activa a MySQL.
// Implementa store.AdapterConnection.
type mysqlConnection struct {
	db *sql.DB
}

func (c *mysqlConnection) Name() string { return "mysql" }

func (c *mysqlConnection) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *mysqlConnection) Close() error {
	return c.db.Close()
}

func (c *mysqlConnection) Books() repository.BookRepository {
	return sqldb.NewRepo(c.db, "mysql", sqldb.BookTable, isDuplicateEntry)
}

func (c *mysqlConnection) Items() repository.ItemRepository {
	return sqldb.NewRepo(c.db, "mysql", sqldb.ItemTable, isDuplicateEntry)
}

func (c *mysqlConnection) Users() repository.UserRepository {
	return sqldb.NewRepo(c.db, "mysql", sqldb.UserTable, isDuplicateEntry)
}

// Migrate implementa store.MigratableConnection.
func (c *mysqlConnection) Migrate(ctx context.Context) (*store.MigrationResult, error) {
	return store.NewMigrator(migrations.FS, migrations.Dir, "mysql").Run(ctx, c.db)
}

func isDuplicateEntry(err error) bool {
	var myErr *gomysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == erDupEntry
}
